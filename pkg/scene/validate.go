package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSource is returned by [Document.Validate] when a
	// precomposition layer references a composition that does not exist.
	ErrMissingSource = errors.New("precomposition source does not exist")

	// ErrForeignParent is returned by [Document.Validate] when a layer is
	// parented to a layer outside its own composition.
	ErrForeignParent = errors.New("parent must be in the same composition")

	// ErrParentCycle is returned by [Document.Validate] when a parenting
	// chain loops back to its start.
	ErrParentCycle = errors.New("parenting chain contains a cycle")

	// ErrNestingCycle is returned by [Document.Validate] when a composition
	// contains itself through a chain of precomposition layers.
	ErrNestingCycle = errors.New("composition nesting contains a cycle")
)

// Validate checks the structural invariants of the document: every
// precomposition source exists, every parent lives in the same composition,
// and composition nesting is acyclic. Cycles are detected using depth-first
// search with white/gray/black coloring.
func (d *Document) Validate() error {
	for _, id := range d.order {
		for _, lid := range d.comps[id].stack {
			l := d.layers[lid]
			if l.Source != "" {
				if _, ok := d.comps[l.Source]; !ok {
					return fmt.Errorf("layer %s: %w: %s", lid, ErrMissingSource, l.Source)
				}
			}
			if l.Parent != "" {
				p, ok := d.layers[l.Parent]
				if !ok || p.Comp != l.Comp {
					return fmt.Errorf("layer %s: %w", lid, ErrForeignParent)
				}
				steps := 0
				for cur := p; cur != nil; cur = d.layers[cur.Parent] {
					if cur.ID == lid || steps > len(d.layers) {
						return fmt.Errorf("layer %s: %w", lid, ErrParentCycle)
					}
					steps++
				}
			}
		}
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[CompID]int, len(d.comps))
	var visit func(id CompID) error
	visit = func(id CompID) error {
		color[id] = gray
		for _, lid := range d.comps[id].stack {
			src := d.layers[lid].Source
			if src == "" {
				continue
			}
			switch color[src] {
			case gray:
				return fmt.Errorf("%w: %s -> %s", ErrNestingCycle, id, src)
			case white:
				if err := visit(src); err != nil {
					return err
				}
			}
		}
		color[id] = black
		return nil
	}
	for _, id := range d.order {
		if color[id] == white {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}
