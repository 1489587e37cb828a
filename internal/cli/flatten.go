package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/flatten"
	"github.com/matzehuels/unprecompose/pkg/history"
	"github.com/matzehuels/unprecompose/pkg/io"
	"github.com/matzehuels/unprecompose/pkg/scene"
)

// flattenOpts holds the command-line flags for the flatten command.
type flattenOpts struct {
	comp               string   // active composition override
	selection          []string // layer IDs or names overriding the saved selection
	placement          string   // top or in-place
	trim               bool     // clamp duplicates to the precomposition's visible range
	dropInnerParenting bool     // discard parent links between inner layers
	output             string   // output path (default: overwrite the input)
	noHistory          bool     // skip the undo snapshot
}

// flattenCommand creates the flatten command.
//
// Flags left unset fall back to the [flatten] section of the config file.
func (c *CLI) flattenCommand() *cobra.Command {
	var opts flattenOpts

	cmd := &cobra.Command{
		Use:   "flatten <project>",
		Short: "Flatten selected precompositions into the active composition",
		Long: `Flatten replaces each selected precomposition layer with copies of its inner layers.

The active composition and the selection come from the project file and can be
overridden with --comp and --select. Selected layers that are not
precompositions are skipped with a warning.`,
		Example: `  unprecompose flatten project.json
  unprecompose flatten project.toml --comp main --select "Logo" --select intro-pre
  unprecompose flatten project.json --placement in-place --trim -o flat.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fopts, err := c.flattenOptions(cmd, opts)
			if err != nil {
				return err
			}
			return c.runFlatten(cmd.Context(), args[0], opts, fopts)
		},
	}

	cmd.Flags().StringVar(&opts.comp, "comp", "", "active composition ID (default: from project)")
	cmd.Flags().StringSliceVarP(&opts.selection, "select", "s", nil, "layer ID or name to flatten (repeatable, default: from project)")
	cmd.Flags().StringVar(&opts.placement, "placement", "", "where duplicates are stacked: top (default), in-place")
	cmd.Flags().BoolVar(&opts.trim, "trim", false, "trim duplicates to the precomposition's in and out points")
	cmd.Flags().BoolVar(&opts.dropInnerParenting, "drop-inner-parenting", false, "parent every duplicate to the precomposition's parent")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overwrite the project)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not keep an undo snapshot")

	_ = cmd.RegisterFlagCompletionFunc("placement", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(flatten.PlaceTop), string(flatten.PlaceInPlace)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// flattenOptions merges config defaults with explicitly set flags.
func (c *CLI) flattenOptions(cmd *cobra.Command, opts flattenOpts) (flatten.Options, error) {
	placement := c.cfg.Flatten.Placement
	if cmd.Flags().Changed("placement") {
		placement = opts.placement
	}
	p, err := flatten.ParsePlacement(placement)
	if err != nil {
		return flatten.Options{}, err
	}

	fopts := flatten.Options{
		Placement:          p,
		Trim:               c.cfg.Flatten.Trim,
		DropInnerParenting: c.cfg.Flatten.DropInnerParenting,
		Logger:             c.Logger,
	}
	if cmd.Flags().Changed("trim") {
		fopts.Trim = opts.trim
	}
	if cmd.Flags().Changed("drop-inner-parenting") {
		fopts.DropInnerParenting = opts.dropInnerParenting
	}
	return fopts, nil
}

func (c *CLI) runFlatten(ctx context.Context, path string, opts flattenOpts, fopts flatten.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	p, err := io.Import(path)
	if err != nil {
		return err
	}
	logger.Debug("project loaded", "path", path, "compositions", len(p.Doc.CompositionIDs()), "layers", p.Doc.LayerCount())

	output := opts.output
	if output == "" {
		output = path
	}
	if err := errors.ValidateProjectPath(output); err != nil {
		return err
	}

	fc, err := flattenContext(p, opts)
	if err != nil {
		return err
	}

	fopts.Notifier = flatten.NotifierFunc(func(s flatten.Skip) {
		printWarning("%s", errors.UserMessage(s.Err()))
	})

	report, err := flatten.Flatten(ctx, fc, fopts)
	if report == nil {
		return err
	}
	if err != nil && !errors.Is(err, errors.ErrCodeHost) {
		return err
	}
	runErr := err
	prog.done("flatten finished", "flattened", report.Flattened, "skipped", len(report.Skipped))

	if report.Flattened == 0 && runErr == nil {
		logger.Debug("nothing flattened; project left unchanged")
		return nil
	}

	hist, err := c.newHistory(ctx, opts.noHistory)
	if err != nil {
		return err
	}
	defer hist.Close()

	snap, err := snapshotOf(output)
	if err != nil {
		return err
	}
	if err := hist.Save(ctx, output, snap); err != nil {
		return err
	}

	p.Active = fc.Comp
	p.Selection = flattenedIDs(report)
	if err := io.Export(p, output); err != nil {
		return err
	}

	if runErr != nil {
		printWarning("project partially flattened; run `%s undo %s` to revert", appName, output)
		printFile(output)
		return runErr
	}

	printSuccess("Flattened %s", plural(report.Flattened, "precomposition"))
	for _, res := range report.Results {
		printDetail("%s %s %s", StyleHighlight.Render(res.Name), iconArrow, plural(len(res.Layers), "layer"))
		for _, fl := range res.Layers {
			logger.Debug("placed layer", "precomp", res.Name, "layer", fl.Name, "index", fl.Index, "start", fl.Start)
		}
	}
	printFile(output)
	return nil
}

// snapshotOf captures what path holds before it is overwritten, in the format
// of path itself.
func snapshotOf(path string) (*history.Snapshot, error) {
	format, err := io.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	snap := &history.Snapshot{Label: flatten.DefaultUndoLabel, Format: string(format)}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		snap.Absent = true
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	default:
		snap.Project = data
	}
	return snap, nil
}

// flattenContext resolves the active composition and selection, letting
// flags override what the project saved.
func flattenContext(p *io.Project, opts flattenOpts) (flatten.Context, error) {
	fc := flatten.Context{Scene: p.Doc, Comp: p.Active}
	if opts.comp != "" {
		if err := errors.ValidateID(opts.comp); err != nil {
			return fc, errors.Wrap(errors.ErrCodeInvalidInput, err, "--comp")
		}
		fc.Comp = scene.CompID(opts.comp)
	}

	refs := p.Selection
	if len(opts.selection) > 0 {
		refs = opts.selection
	}
	if fc.Comp == "" || len(refs) == 0 {
		return fc, nil
	}

	ids, err := io.ResolveSelection(p.Doc, fc.Comp, refs)
	if err != nil {
		return fc, err
	}
	fc.Selection = ids
	return fc, nil
}

// flattenedIDs lists the duplicates created by a run; they become the saved
// selection of the written project.
func flattenedIDs(report *flatten.Report) []string {
	var ids []string
	for _, res := range report.Results {
		for _, fl := range res.Layers {
			ids = append(ids, string(fl.ID))
		}
	}
	return ids
}
