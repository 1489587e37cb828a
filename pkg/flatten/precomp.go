package flatten

import (
	"cmp"
	"context"
	"slices"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/scene"
)

// captured holds the precomposition layer's state, read once before any
// mutation.
type captured struct {
	id        scene.LayerID
	comp      scene.CompID
	index     int
	start     float64
	in        float64
	out       float64
	transform scene.Transform
	parent    scene.LayerID
}

// entry tracks one duplicate through the reordering step.
type entry struct {
	dup         scene.LayerID
	name        string
	start       float64
	innerIndex  int
	innerParent scene.LayerID
	inherited   bool
}

// flattenOne replaces a single precomposition layer with its inner layers.
func flattenOne(ctx context.Context, sg scene.SceneGraph, layer scene.Layer, opts Options) (Result, error) {
	pre := captured{
		id:        layer.ID,
		comp:      layer.Comp,
		index:     layer.Index,
		start:     layer.StartTime,
		in:        layer.InPoint,
		out:       layer.OutPoint,
		transform: layer.Transform.Clone(),
		parent:    layer.Parent,
	}
	logger := opts.Logger.With("precomp", layer.Name)

	inner, err := sg.Layers(layer.Source)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeHost, err, "list layers of %s", layer.Source)
	}
	isInner := make(map[scene.LayerID]bool, len(inner))
	for _, id := range inner {
		isInner[id] = true
	}

	entries := make([]entry, 0, len(inner))
	dupOf := make(map[scene.LayerID]scene.LayerID, len(inner))
	for j, innerID := range inner {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		e, err := duplicateInto(sg, pre, innerID, isInner, opts)
		if err != nil {
			return Result{}, err
		}
		e.innerIndex = j + 1
		dupOf[innerID] = e.dup
		entries = append(entries, e)
		logger.Debug("duplicated layer", "layer", e.name, "start", e.start)
	}

	for _, e := range entries {
		parent := pre.parent
		if e.inherited {
			parent = dupOf[e.innerParent]
		}
		if parent == "" {
			continue
		}
		if err := sg.SetParent(e.dup, parent); err != nil {
			return Result{}, errors.Wrap(errors.ErrCodeHost, err, "parent %s", e.name)
		}
	}

	if err := sg.Remove(pre.id); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeHost, err, "remove precomposition %s", layer.Name)
	}

	slices.SortStableFunc(entries, func(a, b entry) int { return cmp.Compare(a.start, b.start) })

	base, err := restack(sg, pre, entries, opts.Placement)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Precomp: pre.id,
		Name:    layer.Name,
		Source:  layer.Source,
		Layers:  make([]FlatLayer, len(entries)),
	}
	for i, e := range entries {
		res.Layers[i] = FlatLayer{
			ID:         e.dup,
			Name:       e.name,
			Start:      e.start,
			InnerIndex: e.innerIndex,
			Index:      base + i + 1,
		}
	}
	logger.Debug("flattened precomposition", "layers", len(entries))
	return res, nil
}

// duplicateInto copies one inner layer into the containing composition and
// rewrites its timing and transform.
func duplicateInto(sg scene.SceneGraph, pre captured, innerID scene.LayerID, isInner map[scene.LayerID]bool, opts Options) (entry, error) {
	src, err := sg.Layer(innerID)
	if err != nil {
		return entry{}, errors.Wrap(errors.ErrCodeHost, err, "read inner layer %s", innerID)
	}
	dupID, err := sg.Duplicate(innerID, pre.comp)
	if err != nil {
		return entry{}, errors.Wrap(errors.ErrCodeHost, err, "duplicate %s", src.Name)
	}

	start := RebaseTime(src.StartTime, pre.in)
	if err := sg.SetStartTime(dupID, start); err != nil {
		return entry{}, errors.Wrap(errors.ErrCodeHost, err, "set start time of %s", src.Name)
	}

	dup, err := sg.Layer(dupID)
	if err != nil {
		return entry{}, errors.Wrap(errors.ErrCodeHost, err, "read duplicate of %s", src.Name)
	}
	inherited := !opts.DropInnerParenting && src.Parent != "" && isInner[src.Parent]
	if err := sg.SetTransform(dupID, composeTransform(dup.Transform, pre.transform, inherited)); err != nil {
		return entry{}, errors.Wrap(errors.ErrCodeHost, err, "set transform of %s", src.Name)
	}

	if opts.Trim {
		in := max(dup.InPoint, pre.in)
		out := max(min(dup.OutPoint, pre.out), in)
		if err := sg.SetInOut(dupID, in, out); err != nil {
			return entry{}, errors.Wrap(errors.ErrCodeHost, err, "trim %s", src.Name)
		}
	}

	return entry{
		dup:         dupID,
		name:        src.Name,
		start:       start,
		innerParent: src.Parent,
		inherited:   inherited,
	}, nil
}

// restack assigns the final stacking order in one reassignment. Duplicates
// keep the order of entries, which is already sorted by start time. It
// returns the number of layers stacked above the block.
func restack(sg scene.SceneGraph, pre captured, entries []entry, placement Placement) (int, error) {
	current, err := sg.Layers(pre.comp)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeHost, err, "list layers of %s", pre.comp)
	}

	isDup := make(map[scene.LayerID]bool, len(entries))
	block := make([]scene.LayerID, len(entries))
	for i, e := range entries {
		isDup[e.dup] = true
		block[i] = e.dup
	}
	rest := slices.DeleteFunc(current, func(id scene.LayerID) bool { return isDup[id] })

	base := 0
	if placement == PlaceInPlace {
		base = min(max(pre.index-1, 0), len(rest))
	}
	order := slices.Concat(rest[:base], block, rest[base:])

	if err := sg.Reorder(pre.comp, order); err != nil {
		return 0, errors.Wrap(errors.ErrCodeHost, err, "reorder %s", pre.comp)
	}
	return base, nil
}
