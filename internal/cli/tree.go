package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/io"
	"github.com/matzehuels/unprecompose/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	format   string // dot or svg
	output   string // output file (default: stdout)
	detailed bool   // list layers inside each composition
}

// treeCommand creates the tree command for visualizing composition nesting.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "tree <project>",
		Short: "Render the composition nesting of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateTreeFormat(opts.format); err != nil {
				return err
			}
			return c.runTree(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list the layers of each composition")

	return cmd
}

// validateTreeFormat checks the --format flag.
func validateTreeFormat(format string) error {
	if format != formatDOT && format != formatSVG {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'dot' or 'svg')", format)
	}
	return nil
}

func (c *CLI) runTree(ctx context.Context, path string, opts treeOpts) error {
	p, err := io.Import(path)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	data := []byte(nodelink.ToDOT(p.Doc.Compositions(), nodelink.Options{
		Active:   p.Active,
		Detailed: opts.detailed,
	}))
	if opts.format == formatSVG {
		if data, err = nodelink.RenderSVG(ctx, string(data)); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
	}
	prog.done("rendered tree", "format", opts.format, "bytes", len(data))

	if opts.output == "" {
		_, err := fmt.Fprint(stdout, string(data))
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	printSuccess("Rendered %s", plural(len(p.Doc.CompositionIDs()), "composition"))
	printFile(opts.output)
	return nil
}
