package cli

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/unprecompose/pkg/errors"
)

// completions maps each supported shell to its cobra generator. Descriptions
// are included so --placement values show their meaning.
var completions = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

func shells() []string {
	names := make([]string, 0, len(completions))
	for name := range completions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [" + strings.Join(shells(), "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Completion prints a completion script for project paths, composition flags
and placement values. Source it from your shell, for example:

  source <(unprecompose completion bash)
  unprecompose completion fish | source
  unprecompose completion zsh > "${fpath[1]}/_unprecompose"`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells(),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], stdout)
		},
	}
}

// writeCompletion generates the completion script for shell.
func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	gen, ok := completions[shell]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unsupported shell %q (must be one of: %s)", shell, strings.Join(shells(), ", "))
	}
	return gen(root, w)
}
