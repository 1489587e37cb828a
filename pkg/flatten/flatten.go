package flatten

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/observability"
	"github.com/matzehuels/unprecompose/pkg/scene"
)

// DefaultUndoLabel names the undo scope wrapping a run.
const DefaultUndoLabel = "Un-Precompose"

// Placement decides where the block of duplicates lands in the containing
// composition's stack.
type Placement string

const (
	// PlaceTop stacks the duplicates above every other layer.
	PlaceTop Placement = "top"
	// PlaceInPlace stacks the duplicates at the removed precomposition's index.
	PlaceInPlace Placement = "in-place"
)

// ValidPlacements is the set of supported placements.
var ValidPlacements = map[Placement]bool{
	PlaceTop:     true,
	PlaceInPlace: true,
}

// ParsePlacement converts a flag or config value into a Placement.
// An empty string yields PlaceTop.
func ParsePlacement(s string) (Placement, error) {
	if s == "" {
		return PlaceTop, nil
	}
	p := Placement(s)
	if !ValidPlacements[p] {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid placement: %q (must be one of: top, in-place)", s)
	}
	return p, nil
}

// Context is the host context of a run: the document, the active
// composition and the current selection, in selection order.
type Context struct {
	Scene     scene.SceneGraph
	Comp      scene.CompID
	Selection []scene.LayerID
}

// Options configures a run. The zero value is ready to use.
type Options struct {
	// Placement of the duplicates (default PlaceTop).
	Placement Placement

	// Trim clamps each duplicate's in and out points to the
	// precomposition's visible range.
	Trim bool

	// DropInnerParenting gives every duplicate the precomposition's parent
	// and a fully composed transform, discarding parent links between
	// inner layers.
	DropInnerParenting bool

	// UndoLabel names the undo scope (default DefaultUndoLabel).
	UndoLabel string

	// Notifier receives skip warnings as they happen (optional).
	Notifier Notifier

	// Logger receives debug tracing (default discards).
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Placement == "" {
		o.Placement = PlaceTop
	}
	if o.UndoLabel == "" {
		o.UndoLabel = DefaultUndoLabel
	}
	if o.Notifier == nil {
		o.Notifier = NotifierFunc(func(Skip) {})
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Notifier receives non-fatal per-layer warnings.
type Notifier interface {
	Skipped(s Skip)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Skip)

// Skipped calls f(s).
func (f NotifierFunc) Skipped(s Skip) { f(s) }

// Skip describes a selected layer that was not a precomposition.
type Skip struct {
	Layer scene.LayerID
	Name  string
}

// Err returns the NOT_A_PRECOMPOSITION warning for the skip.
func (s Skip) Err() error {
	return errors.New(errors.ErrCodeNotAPrecomposition, "layer %q is not a precomposition and was skipped", s.Name)
}

// FlatLayer is one duplicate produced by flattening.
type FlatLayer struct {
	ID         scene.LayerID
	Name       string
	Start      float64 // Re-based start time
	InnerIndex int     // Stacking index inside the inner composition
	Index      int     // Final stacking index in the containing composition
}

// Result describes one flattened precomposition. Layers are listed in final
// top-to-bottom order.
type Result struct {
	Precomp scene.LayerID
	Name    string
	Source  scene.CompID
	Layers  []FlatLayer
}

// Report summarises a run.
type Report struct {
	Comp      scene.CompID
	Flattened int
	Skipped   []Skip
	Results   []Result
}

// Flatten replaces every selected precomposition layer with flattened copies
// of its inner composition's layers.
//
// It returns NO_ACTIVE_CONTEXT when fc has no scene or composition and
// EMPTY_SELECTION when nothing is selected; in both cases nothing is mutated.
// Any scene-graph failure, including a selected layer that lives outside
// fc.Comp, aborts the run with UNEXPECTED_HOST_ERROR, and
// cancellation of ctx aborts it with ctx.Err(). In every case the undo scope
// opened for the run is closed before returning, and the returned report
// describes the work done so far.
func Flatten(ctx context.Context, fc Context, opts Options) (*Report, error) {
	opts.setDefaults()
	logger := opts.Logger

	if fc.Scene == nil || fc.Comp == "" {
		return nil, errors.New(errors.ErrCodeNoActiveContext, "no active composition; open a composition first")
	}
	if _, err := fc.Scene.Composition(fc.Comp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoActiveContext, err, "no active composition %q", fc.Comp)
	}
	if len(fc.Selection) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySelection, "select at least one precomposition to flatten")
	}

	scope, err := fc.Scene.BeginUndo(opts.UndoLabel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeHost, err, "open undo scope")
	}
	defer scope.End()

	hooks := observability.Flatten()
	hooks.OnFlattenStart(ctx, string(fc.Comp), len(fc.Selection))
	start := time.Now()

	report := &Report{Comp: fc.Comp}
	err = run(ctx, fc, opts, report)
	hooks.OnFlattenComplete(ctx, string(fc.Comp), report.Flattened, time.Since(start), err)
	if err != nil {
		logger.Debug("flatten aborted", "flattened", report.Flattened, "err", err)
		return report, err
	}
	logger.Debug("flatten complete", "flattened", report.Flattened, "skipped", len(report.Skipped))
	return report, nil
}

func run(ctx context.Context, fc Context, opts Options, report *Report) error {
	for _, id := range fc.Selection {
		if err := ctx.Err(); err != nil {
			return err
		}

		layer, err := fc.Scene.Layer(id)
		if err != nil {
			return errors.Wrap(errors.ErrCodeHost, err, "read selected layer %s", id)
		}
		if layer.Comp != fc.Comp {
			return errors.New(errors.ErrCodeHost, "selected layer %s belongs to composition %s, not %s", layer.Name, layer.Comp, fc.Comp)
		}
		if !layer.IsPrecomp() {
			skip := Skip{Layer: layer.ID, Name: layer.Name}
			report.Skipped = append(report.Skipped, skip)
			opts.Notifier.Skipped(skip)
			observability.Flatten().OnLayerSkipped(ctx, string(layer.ID))
			opts.Logger.Debug("skipping layer", "layer", layer.Name, "reason", "not a precomposition")
			continue
		}

		began := time.Now()
		res, err := flattenOne(ctx, fc.Scene, layer, opts)
		if err != nil {
			return err
		}
		report.Results = append(report.Results, res)
		report.Flattened++
		observability.Flatten().OnPrecompFlattened(ctx, string(layer.ID), len(res.Layers), time.Since(began))
	}
	return nil
}
