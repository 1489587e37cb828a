package scene

import (
	"errors"
	"fmt"
	"testing"
)

// seqIDs makes duplicate IDs predictable: dup-1, dup-2, ...
func seqIDs(d *Document) {
	n := 0
	d.newID = func() LayerID {
		n++
		return LayerID(fmt.Sprintf("dup-%d", n))
	}
}

func buildDoc(t *testing.T) *Document {
	t.Helper()
	d := NewDocument()
	seqIDs(d)
	if err := d.AddComposition(Composition{ID: "main", Name: "Main", Duration: 10, FrameRate: 30}); err != nil {
		t.Fatalf("AddComposition: %v", err)
	}
	if err := d.AddComposition(Composition{ID: "inner", Name: "Inner"}); err != nil {
		t.Fatalf("AddComposition: %v", err)
	}
	for _, l := range []Layer{
		{ID: "title", Name: "Title", Transform: DefaultTransform()},
		{ID: "pre", Name: "Pre", Source: "inner", Transform: DefaultTransform()},
		{ID: "bg", Name: "Background", Transform: DefaultTransform()},
	} {
		if err := d.AddLayer("main", l); err != nil {
			t.Fatalf("AddLayer: %v", err)
		}
	}
	if err := d.AddLayer("inner", Layer{ID: "a", Name: "A", StartTime: 1, InPoint: 1, OutPoint: 4}); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	return d
}

func assertStack(t *testing.T, d *Document, comp CompID, want ...LayerID) {
	t.Helper()
	got, err := d.Layers(comp)
	if err != nil {
		t.Fatalf("Layers(%s): %v", comp, err)
	}
	if len(got) != len(want) {
		t.Fatalf("Layers(%s) = %v, want %v", comp, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Layers(%s) = %v, want %v", comp, got, want)
		}
		l, _ := d.Layer(got[i])
		if l.Index != i+1 {
			t.Errorf("layer %s index = %d, want %d", got[i], l.Index, i+1)
		}
	}
}

func TestAddLayerAssignsDenseIndices(t *testing.T) {
	d := buildDoc(t)
	assertStack(t, d, "main", "title", "pre", "bg")

	if err := d.AddLayer("main", Layer{ID: "bg"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("AddLayer duplicate error = %v, want ErrDuplicateID", err)
	}
	if err := d.AddLayer("nope", Layer{ID: "x"}); !errors.Is(err, ErrUnknownComposition) {
		t.Errorf("AddLayer unknown comp error = %v, want ErrUnknownComposition", err)
	}
}

func TestAddLayerGeneratesID(t *testing.T) {
	d := buildDoc(t)
	if err := d.AddLayer("main", Layer{Name: "anon"}); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	assertStack(t, d, "main", "title", "pre", "bg", "dup-1")
}

func TestDuplicateLandsOnTop(t *testing.T) {
	d := buildDoc(t)
	id, err := d.Duplicate("a", "main")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if id != "dup-1" {
		t.Errorf("Duplicate id = %s, want dup-1", id)
	}
	assertStack(t, d, "main", "dup-1", "title", "pre", "bg")
	assertStack(t, d, "inner", "a")

	dup, _ := d.Layer(id)
	if dup.Comp != "main" || dup.Name != "A" || dup.StartTime != 1 {
		t.Errorf("duplicate = %+v, want copy of A in main", dup)
	}
}

func TestDuplicateDropsForeignParent(t *testing.T) {
	d := buildDoc(t)
	if err := d.AddLayer("inner", Layer{ID: "b", Parent: "a"}); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	id, err := d.Duplicate("b", "main")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	dup, _ := d.Layer(id)
	if dup.Parent != "" {
		t.Errorf("duplicate parent = %q, want empty", dup.Parent)
	}
}

func TestDuplicateIsIndependent(t *testing.T) {
	d := buildDoc(t)
	if err := d.SetTransform("a", Transform{Position: Vector{1, 2}}); err != nil {
		t.Fatal(err)
	}
	id, _ := d.Duplicate("a", "main")
	tr := Transform{Position: Vector{9, 9}}
	if err := d.SetTransform(id, tr); err != nil {
		t.Fatal(err)
	}
	tr.Position[0] = 100

	src, _ := d.Layer("a")
	dup, _ := d.Layer(id)
	if !src.Transform.Position.Equal(Vector{1, 2}) {
		t.Errorf("source position = %v, want [1 2]", src.Transform.Position)
	}
	if !dup.Transform.Position.Equal(Vector{9, 9}) {
		t.Errorf("duplicate position = %v, want [9 9]", dup.Transform.Position)
	}
}

func TestSetStartTimeShiftsInOut(t *testing.T) {
	d := buildDoc(t)
	if err := d.SetStartTime("a", 3); err != nil {
		t.Fatal(err)
	}
	l, _ := d.Layer("a")
	if l.StartTime != 3 || l.InPoint != 3 || l.OutPoint != 6 {
		t.Errorf("times = (%g, %g, %g), want (3, 3, 6)", l.StartTime, l.InPoint, l.OutPoint)
	}
}

func TestSetInOut(t *testing.T) {
	d := buildDoc(t)
	if err := d.SetInOut("a", 2, 3); err != nil {
		t.Fatal(err)
	}
	if err := d.SetInOut("a", 3, 2); err == nil {
		t.Error("SetInOut with out < in should fail")
	}
}

func TestSetParent(t *testing.T) {
	d := buildDoc(t)
	if err := d.SetParent("title", "bg"); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if err := d.SetParent("bg", "title"); err == nil {
		t.Error("SetParent cycle should fail")
	}
	if err := d.SetParent("title", "a"); err == nil {
		t.Error("SetParent across compositions should fail")
	}
	if err := d.SetParent("title", ""); err != nil {
		t.Errorf("clear parent: %v", err)
	}
}

func TestReorder(t *testing.T) {
	d := buildDoc(t)
	if err := d.Reorder("main", []LayerID{"bg", "title", "pre"}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	assertStack(t, d, "main", "bg", "title", "pre")

	bad := [][]LayerID{
		{"bg", "title"},
		{"bg", "title", "title"},
		{"bg", "title", "a"},
	}
	for _, order := range bad {
		if err := d.Reorder("main", order); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("Reorder(%v) error = %v, want ErrInvalidOrder", order, err)
		}
	}
}

func TestRemoveUnparentsChildren(t *testing.T) {
	d := buildDoc(t)
	if err := d.SetParent("title", "pre"); err != nil {
		t.Fatal(err)
	}
	if err := d.Remove("pre"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	assertStack(t, d, "main", "title", "bg")
	title, _ := d.Layer("title")
	if title.Parent != "" {
		t.Errorf("child parent = %q, want empty", title.Parent)
	}
	if _, err := d.Layer("pre"); !errors.Is(err, ErrUnknownLayer) {
		t.Errorf("Layer(pre) error = %v, want ErrUnknownLayer", err)
	}
	if _, err := d.Composition("inner"); err != nil {
		t.Errorf("inner composition must survive: %v", err)
	}
}

func TestUndoRestoresScope(t *testing.T) {
	d := buildDoc(t)
	scope, err := d.BeginUndo("Un-Precompose")
	if err != nil {
		t.Fatalf("BeginUndo: %v", err)
	}
	if _, err := d.BeginUndo("again"); !errors.Is(err, ErrUndoInProgress) {
		t.Errorf("nested BeginUndo error = %v, want ErrUndoInProgress", err)
	}
	_, _ = d.Duplicate("a", "main")
	_ = d.Remove("pre")
	scope.End()
	scope.End()

	if !d.CanUndo() || d.UndoLabel() != "Un-Precompose" {
		t.Fatalf("CanUndo = %v label = %q", d.CanUndo(), d.UndoLabel())
	}
	if err := d.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	assertStack(t, d, "main", "title", "pre", "bg")
	if err := d.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("second Undo error = %v, want ErrNothingToUndo", err)
	}
}

func TestClone(t *testing.T) {
	d := buildDoc(t)
	c := d.Clone()
	_ = c.Remove("bg")
	assertStack(t, d, "main", "title", "pre", "bg")
	assertStack(t, c, "main", "title", "pre")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *Document)
		want  error
	}{
		{"valid", func(d *Document) {}, nil},
		{"missing source", func(d *Document) {
			_ = d.AddLayer("main", Layer{ID: "ghost", Source: "nowhere"})
		}, ErrMissingSource},
		{"foreign parent", func(d *Document) {
			_ = d.AddLayer("main", Layer{ID: "orphan", Parent: "a"})
		}, ErrForeignParent},
		{"parent cycle", func(d *Document) {
			_ = d.AddLayer("main", Layer{ID: "p1", Parent: "p2"})
			_ = d.AddLayer("main", Layer{ID: "p2", Parent: "p1"})
		}, ErrParentCycle},
		{"nesting cycle", func(d *Document) {
			_ = d.AddLayer("inner", Layer{ID: "loop", Source: "main"})
		}, ErrNestingCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buildDoc(t)
			tt.setup(d)
			err := d.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVectorAt(t *testing.T) {
	v := Vector{1, 2}
	if v.At(1, 0) != 2 || v.At(2, 7) != 7 {
		t.Errorf("At() = %g, %g", v.At(1, 0), v.At(2, 7))
	}
	if Vector(nil).Clone() != nil {
		t.Error("Clone(nil) should be nil")
	}
}
