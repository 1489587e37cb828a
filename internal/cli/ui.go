package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives user-facing notifications. Logs go to stderr.
var stdout io.Writer = os.Stdout

// notice is the kind of a user-facing notification. A flatten run produces
// at most one error, one warning per skipped layer and one summary.
type notice int

const (
	noticeError notice = iota
	noticeWarning
	noticeSummary
)

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")

	// StyleHighlight marks layer and composition names inside a notification.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorTeal)

	styleDim  = lipgloss.NewStyle().Foreground(colorDim)
	stylePath = lipgloss.NewStyle().Foreground(colorWhite)
)

var notices = map[notice]struct {
	icon  string
	style lipgloss.Style
	body  bool // style the message too, not only the icon
}{
	noticeError:   {"✗", lipgloss.NewStyle().Foreground(colorRed), false},
	noticeWarning: {"!", lipgloss.NewStyle().Foreground(colorAmber), true},
	noticeSummary: {"✓", lipgloss.NewStyle().Foreground(colorGreen), false},
}

const iconArrow = "→"

func notify(kind notice, format string, args ...any) {
	n := notices[kind]
	msg := fmt.Sprintf(format, args...)
	if n.body {
		msg = n.style.Render(msg)
	}
	fmt.Fprintln(stdout, n.style.Render(n.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { notify(noticeSummary, format, args...) }
func printWarning(format string, args ...any) { notify(noticeWarning, format, args...) }
func printError(format string, args ...any)   { notify(noticeError, format, args...) }

// printDetail prints an indented line under the last notification.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+styleDim.Render(iconArrow)+" "+stylePath.Render(path))
}

// plural returns "1 layer" or "3 layers".
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
