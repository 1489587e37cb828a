package scene

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Document is an in-memory composition tree implementing [SceneGraph].
//
// The zero value is not usable - use NewDocument.
// Document is not safe for concurrent use without external synchronization.
type Document struct {
	comps  map[CompID]*compEntry
	order  []CompID // Insertion order, used for deterministic export
	layers map[LayerID]*Layer

	open *state // Snapshot taken by the currently open undo scope
	undo *state // Snapshot of the last closed undo scope

	newID func() LayerID
}

// compEntry stores composition settings and its stack of layer IDs.
type compEntry struct {
	id        CompID
	name      string
	duration  float64
	frameRate float64
	stack     []LayerID
}

// state is a deep copy of the mutable parts of a Document.
type state struct {
	comps  map[CompID]*compEntry
	order  []CompID
	layers map[LayerID]*Layer
	label  string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		comps:  make(map[CompID]*compEntry),
		layers: make(map[LayerID]*Layer),
		newID:  func() LayerID { return LayerID(uuid.NewString()) },
	}
}

// NewLayerID returns a fresh random layer identifier.
func NewLayerID() LayerID { return LayerID(uuid.NewString()) }

// AddComposition registers an empty composition. Any layers in c are added
// in order, as if by [Document.AddLayer].
func (d *Document) AddComposition(c Composition) error {
	if c.ID == "" {
		return fmt.Errorf("composition: %w", ErrUnknownComposition)
	}
	if _, exists := d.comps[c.ID]; exists {
		return fmt.Errorf("composition %s: %w", c.ID, ErrDuplicateID)
	}
	d.comps[c.ID] = &compEntry{
		id:        c.ID,
		name:      c.Name,
		duration:  c.Duration,
		frameRate: c.FrameRate,
	}
	d.order = append(d.order, c.ID)
	for _, l := range c.Layers {
		if err := d.AddLayer(c.ID, l); err != nil {
			return err
		}
	}
	return nil
}

// AddLayer appends a layer at the bottom of the composition's stack.
// A missing ID is replaced with a fresh UUID.
func (d *Document) AddLayer(comp CompID, l Layer) error {
	c, ok := d.comps[comp]
	if !ok {
		return fmt.Errorf("composition %s: %w", comp, ErrUnknownComposition)
	}
	if l.ID == "" {
		l.ID = d.newID()
	}
	if _, exists := d.layers[l.ID]; exists {
		return fmt.Errorf("layer %s: %w", l.ID, ErrDuplicateID)
	}
	l = l.Clone()
	l.Comp = comp
	d.layers[l.ID] = &l
	c.stack = append(c.stack, l.ID)
	d.reindex(c)
	return nil
}

// CompositionIDs returns all composition IDs in insertion order.
func (d *Document) CompositionIDs() []CompID {
	return slices.Clone(d.order)
}

// Compositions returns snapshots of every composition in insertion order.
func (d *Document) Compositions() []Composition {
	out := make([]Composition, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.snapshot(d.comps[id]))
	}
	return out
}

// Composition returns a snapshot of the composition, including its layers.
func (d *Document) Composition(id CompID) (Composition, error) {
	c, ok := d.comps[id]
	if !ok {
		return Composition{}, fmt.Errorf("composition %s: %w", id, ErrUnknownComposition)
	}
	return d.snapshot(c), nil
}

// Layers returns the composition's layer IDs in stacking order.
func (d *Document) Layers(comp CompID) ([]LayerID, error) {
	c, ok := d.comps[comp]
	if !ok {
		return nil, fmt.Errorf("composition %s: %w", comp, ErrUnknownComposition)
	}
	return slices.Clone(c.stack), nil
}

// Layer returns a snapshot of the layer.
func (d *Document) Layer(id LayerID) (Layer, error) {
	l, ok := d.layers[id]
	if !ok {
		return Layer{}, fmt.Errorf("layer %s: %w", id, ErrUnknownLayer)
	}
	return l.Clone(), nil
}

// LayerCount returns the number of layers across all compositions.
func (d *Document) LayerCount() int { return len(d.layers) }

// Duplicate copies a layer to the top of the target composition.
// The copy keeps its parent only when the parent lives in the target
// composition; otherwise it is unparented.
func (d *Document) Duplicate(id LayerID, into CompID) (LayerID, error) {
	src, ok := d.layers[id]
	if !ok {
		return "", fmt.Errorf("layer %s: %w", id, ErrUnknownLayer)
	}
	c, ok := d.comps[into]
	if !ok {
		return "", fmt.Errorf("composition %s: %w", into, ErrUnknownComposition)
	}

	dup := src.Clone()
	dup.ID = d.newID()
	dup.Comp = into
	if dup.Parent != "" {
		if p, ok := d.layers[dup.Parent]; !ok || p.Comp != into {
			dup.Parent = ""
		}
	}
	d.layers[dup.ID] = &dup
	c.stack = slices.Insert(c.stack, 0, dup.ID)
	d.reindex(c)
	return dup.ID, nil
}

// SetStartTime moves the layer in time, shifting in and out points by the
// same delta.
func (d *Document) SetStartTime(id LayerID, t float64) error {
	l, ok := d.layers[id]
	if !ok {
		return fmt.Errorf("layer %s: %w", id, ErrUnknownLayer)
	}
	delta := t - l.StartTime
	l.StartTime = t
	l.InPoint += delta
	l.OutPoint += delta
	return nil
}

// SetInOut sets the layer's in and out points.
func (d *Document) SetInOut(id LayerID, in, out float64) error {
	l, ok := d.layers[id]
	if !ok {
		return fmt.Errorf("layer %s: %w", id, ErrUnknownLayer)
	}
	if out < in {
		return fmt.Errorf("layer %s: out point %g before in point %g", id, out, in)
	}
	l.InPoint = in
	l.OutPoint = out
	return nil
}

// SetTransform replaces the layer's transform.
func (d *Document) SetTransform(id LayerID, t Transform) error {
	l, ok := d.layers[id]
	if !ok {
		return fmt.Errorf("layer %s: %w", id, ErrUnknownLayer)
	}
	l.Transform = t.Clone()
	return nil
}

// SetParent assigns the layer's parent. The parent must live in the same
// composition and must not be the layer itself or one of its descendants.
func (d *Document) SetParent(id LayerID, parent LayerID) error {
	l, ok := d.layers[id]
	if !ok {
		return fmt.Errorf("layer %s: %w", id, ErrUnknownLayer)
	}
	if parent == "" {
		l.Parent = ""
		return nil
	}
	p, ok := d.layers[parent]
	if !ok {
		return fmt.Errorf("parent %s: %w", parent, ErrUnknownLayer)
	}
	if p.Comp != l.Comp {
		return fmt.Errorf("parent %s is not in composition %s", parent, l.Comp)
	}
	for cur := p; cur != nil; cur = d.layers[cur.Parent] {
		if cur.ID == id {
			return fmt.Errorf("parenting %s to %s would create a cycle", id, parent)
		}
	}
	l.Parent = parent
	return nil
}

// Reorder assigns stacking indices following order.
func (d *Document) Reorder(comp CompID, order []LayerID) error {
	c, ok := d.comps[comp]
	if !ok {
		return fmt.Errorf("composition %s: %w", comp, ErrUnknownComposition)
	}
	if len(order) != len(c.stack) {
		return fmt.Errorf("composition %s: %w", comp, ErrInvalidOrder)
	}
	seen := make(map[LayerID]bool, len(order))
	for _, id := range order {
		l, ok := d.layers[id]
		if !ok || l.Comp != comp || seen[id] {
			return fmt.Errorf("composition %s: %w", comp, ErrInvalidOrder)
		}
		seen[id] = true
	}
	c.stack = slices.Clone(order)
	d.reindex(c)
	return nil
}

// Remove deletes the layer and unparents its children.
func (d *Document) Remove(id LayerID) error {
	l, ok := d.layers[id]
	if !ok {
		return fmt.Errorf("layer %s: %w", id, ErrUnknownLayer)
	}
	c := d.comps[l.Comp]
	c.stack = slices.DeleteFunc(c.stack, func(s LayerID) bool { return s == id })
	delete(d.layers, id)
	for _, other := range d.layers {
		if other.Parent == id {
			other.Parent = ""
		}
	}
	d.reindex(c)
	return nil
}

// snapshot builds a Composition value from an entry.
func (d *Document) snapshot(c *compEntry) Composition {
	out := Composition{
		ID:        c.id,
		Name:      c.name,
		Duration:  c.duration,
		FrameRate: c.frameRate,
		Layers:    make([]Layer, len(c.stack)),
	}
	for i, id := range c.stack {
		out.Layers[i] = d.layers[id].Clone()
	}
	return out
}

// reindex restores dense 1..N stacking indices for c.
func (d *Document) reindex(c *compEntry) {
	for i, id := range c.stack {
		d.layers[id].Index = i + 1
	}
}
