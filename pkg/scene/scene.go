package scene

import (
	"errors"
	"slices"
)

var (
	// ErrUnknownComposition is returned when a composition ID does not exist.
	ErrUnknownComposition = errors.New("unknown composition")

	// ErrUnknownLayer is returned when a layer ID does not exist.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrDuplicateID is returned when adding a composition or layer whose ID
	// is already in use.
	ErrDuplicateID = errors.New("duplicate ID")

	// ErrInvalidOrder is returned by [SceneGraph.Reorder] when the requested
	// order is not a permutation of the composition's layers.
	ErrInvalidOrder = errors.New("order must be a permutation of the composition's layers")

	// ErrUndoInProgress is returned by BeginUndo when a scope is already open.
	ErrUndoInProgress = errors.New("undo scope already open")

	// ErrNothingToUndo is returned by [Document.Undo] when no closed scope exists.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// CompID identifies a composition within a document.
type CompID string

// LayerID identifies a layer across the whole document.
type LayerID string

// Composition is a timeline holding an ordered stack of layers.
type Composition struct {
	ID        CompID
	Name      string
	Duration  float64 // Seconds
	FrameRate float64 // Frames per second
	Layers    []Layer // Stacking order, index 0 is topmost (stacking index 1)
}

// Layer is a positioned, time-bounded element of a composition.
//
// The zero value is not usable - ID must be set before adding to a Document.
type Layer struct {
	ID    LayerID
	Name  string
	Comp  CompID // Containing composition, maintained by the document
	Index int    // 1-based stacking index, maintained by the document

	// Source names the inner composition for precomposition layers.
	// Empty for solids, footage and every other layer kind.
	Source CompID

	StartTime float64
	InPoint   float64
	OutPoint  float64

	Transform Transform

	// Parent is the layer this one is parented to, or empty.
	Parent LayerID
}

// IsPrecomp reports whether the layer's content source is a composition.
func (l Layer) IsPrecomp() bool { return l.Source != "" }

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	l.Transform = l.Transform.Clone()
	return l
}

// Transform holds a layer's 2D/3D transform properties.
type Transform struct {
	AnchorPoint Vector
	Position    Vector

	// SeparateDimensions reports that the position is stored as independent
	// per-axis values rather than one combined vector.
	SeparateDimensions bool

	Scale    Vector  // Percent per axis
	Rotation float64 // Degrees, not normalized
	Opacity  float64 // Percent, 0..100
}

// Clone returns a deep copy of the transform.
func (t Transform) Clone() Transform {
	t.AnchorPoint = t.AnchorPoint.Clone()
	t.Position = t.Position.Clone()
	t.Scale = t.Scale.Clone()
	return t
}

// DefaultTransform returns the host's default transform for a new 2D layer.
func DefaultTransform() Transform {
	return Transform{
		AnchorPoint: Vector{0, 0},
		Position:    Vector{0, 0},
		Scale:       Vector{100, 100},
		Opacity:     100,
	}
}

// Vector is a 2 or 3 component property value.
type Vector []float64

// At returns component i, or def when the vector has fewer components.
func (v Vector) At(i int, def float64) float64 {
	if i < len(v) {
		return v[i]
	}
	return def
}

// Dims returns the number of components.
func (v Vector) Dims() int { return len(v) }

// Clone returns a copy that shares no storage with v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	return slices.Clone(v)
}

// Equal reports whether both vectors have the same components.
func (v Vector) Equal(o Vector) bool { return slices.Equal(v, o) }

// UndoScope is an open transactional boundary. End must be called exactly
// once on every exit path; the usual pattern is:
//
//	scope, err := sg.BeginUndo("Un-Precompose")
//	if err != nil {
//	    return err
//	}
//	defer scope.End()
type UndoScope interface {
	End()
}

// SceneGraph is the set of document capabilities flattening relies on.
//
// Implementations wrap a live host document or, like [Document], hold the
// composition tree in memory. Errors returned by any method are treated as
// unexpected host failures by callers.
type SceneGraph interface {
	// Composition returns a snapshot of the composition, including its layers.
	Composition(id CompID) (Composition, error)

	// Layers returns the composition's layer IDs in stacking order (index 1 first).
	Layers(comp CompID) ([]LayerID, error)

	// Layer returns a snapshot of the layer.
	Layer(id LayerID) (Layer, error)

	// Duplicate copies a layer into the target composition. The copy lands at
	// stacking index 1 and receives a new ID, which is returned.
	Duplicate(id LayerID, into CompID) (LayerID, error)

	// SetStartTime moves the layer in time; in and out points shift with it.
	SetStartTime(id LayerID, t float64) error

	// SetInOut trims the layer's visible range.
	SetInOut(id LayerID, in, out float64) error

	// SetTransform replaces the layer's transform.
	SetTransform(id LayerID, t Transform) error

	// SetParent assigns the layer's parent; an empty ID clears it.
	SetParent(id LayerID, parent LayerID) error

	// Reorder assigns stacking indices 1..N following order, which must be a
	// permutation of the composition's current layers.
	Reorder(comp CompID, order []LayerID) error

	// Remove deletes the layer from its composition. Layers parented to it
	// are unparented.
	Remove(id LayerID) error

	// BeginUndo opens an undo scope grouping every following mutation.
	BeginUndo(label string) (UndoScope, error)
}
