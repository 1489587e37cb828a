package scene

import "maps"

// docScope is the UndoScope returned by Document.BeginUndo.
type docScope struct {
	d     *Document
	ended bool
}

// End closes the scope. Calling End more than once has no effect.
func (s *docScope) End() {
	if s.ended {
		return
	}
	s.ended = true
	s.d.undo = s.d.open
	s.d.open = nil
}

// BeginUndo snapshots the document and opens an undo scope. Scopes do not
// nest; a second BeginUndo before End returns ErrUndoInProgress.
func (d *Document) BeginUndo(label string) (UndoScope, error) {
	if d.open != nil {
		return nil, ErrUndoInProgress
	}
	d.open = d.capture()
	d.open.label = label
	return &docScope{d: d}, nil
}

// CanUndo reports whether a closed undo scope is available.
func (d *Document) CanUndo() bool { return d.undo != nil }

// UndoLabel returns the label of the last closed undo scope, or "".
func (d *Document) UndoLabel() string {
	if d.undo == nil {
		return ""
	}
	return d.undo.label
}

// Undo reverts every mutation made inside the last closed undo scope in one
// step. Only one step of history is kept.
func (d *Document) Undo() error {
	if d.open != nil {
		return ErrUndoInProgress
	}
	if d.undo == nil {
		return ErrNothingToUndo
	}
	d.restore(d.undo)
	d.undo = nil
	return nil
}

// Clone returns a deep copy of the document without undo history.
func (d *Document) Clone() *Document {
	st := d.capture()
	out := &Document{newID: d.newID}
	out.restore(st)
	return out
}

func (d *Document) capture() *state {
	st := &state{
		comps:  make(map[CompID]*compEntry, len(d.comps)),
		order:  append([]CompID(nil), d.order...),
		layers: make(map[LayerID]*Layer, len(d.layers)),
	}
	for id, c := range d.comps {
		cp := *c
		cp.stack = append([]LayerID(nil), c.stack...)
		st.comps[id] = &cp
	}
	for id, l := range d.layers {
		cp := l.Clone()
		st.layers[id] = &cp
	}
	return st
}

func (d *Document) restore(st *state) {
	d.comps = maps.Clone(st.comps)
	d.order = append([]CompID(nil), st.order...)
	d.layers = maps.Clone(st.layers)
}
