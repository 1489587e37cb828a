package flatten

import (
	"testing"

	"github.com/matzehuels/unprecompose/pkg/scene"
)

func TestComposePosition(t *testing.T) {
	tests := []struct {
		name               string
		inner, pos, anchor scene.Vector
		want               scene.Vector
	}{
		{"2d", scene.Vector{10, 20}, scene.Vector{100, 50}, scene.Vector{5, 5}, scene.Vector{105, 65}},
		{"3d", scene.Vector{0, 0, 0}, scene.Vector{100, 100, 0}, scene.Vector{0, 0, 0}, scene.Vector{100, 100, 0}},
		{"2d inner 3d precomp", scene.Vector{1, 2}, scene.Vector{10, 20, 30}, scene.Vector{1, 1, 1}, scene.Vector{10, 21}},
		{"3d inner 2d precomp", scene.Vector{1, 2, 3}, scene.Vector{10, 20}, scene.Vector{0, 0}, scene.Vector{11, 22, 3}},
		{"negative anchor", scene.Vector{0, 0}, scene.Vector{0, 0}, scene.Vector{-960, -540}, scene.Vector{960, 540}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposePosition(tt.inner, tt.pos, tt.anchor)
			if !got.Equal(tt.want) {
				t.Errorf("ComposePosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposePositionIsPure(t *testing.T) {
	inner := scene.Vector{3, 4}
	pos := scene.Vector{10, 10}
	anchor := scene.Vector{2, 2}

	first := ComposePosition(inner, pos, anchor)
	second := ComposePosition(inner, pos, anchor)
	if !first.Equal(second) {
		t.Errorf("ComposePosition not deterministic: %v vs %v", first, second)
	}
	if !inner.Equal(scene.Vector{3, 4}) || !pos.Equal(scene.Vector{10, 10}) || !anchor.Equal(scene.Vector{2, 2}) {
		t.Error("ComposePosition mutated its inputs")
	}
}

func TestComposeScale(t *testing.T) {
	tests := []struct {
		name           string
		inner, precomp scene.Vector
		want           scene.Vector
	}{
		{"halve", scene.Vector{200, 200, 100}, scene.Vector{50, 50, 50}, scene.Vector{100, 100, 50}},
		{"identity", scene.Vector{37, 81}, scene.Vector{100, 100, 100}, scene.Vector{37, 81}},
		{"missing axis", scene.Vector{10, 10, 10}, scene.Vector{200, 200}, scene.Vector{20, 20, 10}},
		{"flip", scene.Vector{100, 100}, scene.Vector{-100, 100}, scene.Vector{-100, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeScale(tt.inner, tt.precomp)
			if !got.Equal(tt.want) {
				t.Errorf("ComposeScale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeOpacity(t *testing.T) {
	tests := []struct {
		inner, precomp, want float64
	}{
		{100, 100, 100},
		{80, 100, 80},
		{50, 50, 25},
		{0, 100, 0},
		{100, 0, 0},
		{150, 100, 100},
		{-10, 100, 0},
	}

	for _, tt := range tests {
		if got := ComposeOpacity(tt.inner, tt.precomp); got != tt.want {
			t.Errorf("ComposeOpacity(%g, %g) = %g, want %g", tt.inner, tt.precomp, got, tt.want)
		}
	}
}

func TestComposeRotationDoesNotWrap(t *testing.T) {
	if got := ComposeRotation(270, 180); got != 450 {
		t.Errorf("ComposeRotation(270, 180) = %g, want 450", got)
	}
	if got := ComposeRotation(-30, 10); got != -20 {
		t.Errorf("ComposeRotation(-30, 10) = %g, want -20", got)
	}
}

func TestRebaseTime(t *testing.T) {
	for i, in := range []float64{0, 10, 5} {
		want := []float64{2, 12, 7}[i]
		if got := RebaseTime(in, 2); got != want {
			t.Errorf("RebaseTime(%g, 2) = %g, want %g", in, got, want)
		}
	}
}

func TestComposeTransform(t *testing.T) {
	pre := scene.Transform{
		AnchorPoint: scene.Vector{10, 10},
		Position:    scene.Vector{110, 60},
		Scale:       scene.Vector{50, 50},
		Rotation:    45,
		Opacity:     50,
	}
	dup := scene.Transform{
		AnchorPoint: scene.Vector{0, 0},
		Position:    scene.Vector{5, 5},
		Scale:       scene.Vector{100, 200},
		Rotation:    10,
		Opacity:     80,
	}

	t.Run("combined", func(t *testing.T) {
		got := composeTransform(dup, pre, false)
		if !got.Position.Equal(scene.Vector{105, 55}) {
			t.Errorf("Position = %v", got.Position)
		}
		if !got.Scale.Equal(scene.Vector{50, 100}) {
			t.Errorf("Scale = %v", got.Scale)
		}
		if got.Rotation != 55 || got.Opacity != 40 {
			t.Errorf("Rotation = %g Opacity = %g", got.Rotation, got.Opacity)
		}
		if !dup.Position.Equal(scene.Vector{5, 5}) {
			t.Error("composeTransform mutated its input")
		}
	})

	t.Run("separate dimensions", func(t *testing.T) {
		sep := dup.Clone()
		sep.SeparateDimensions = true
		got := composeTransform(sep, pre, false)
		if !got.SeparateDimensions || !got.Position.Equal(scene.Vector{105, 55}) {
			t.Errorf("separate Position = %v (separate=%v)", got.Position, got.SeparateDimensions)
		}
	})

	t.Run("inherited", func(t *testing.T) {
		got := composeTransform(dup, pre, true)
		if !got.Position.Equal(dup.Position) || !got.Scale.Equal(dup.Scale) || got.Rotation != dup.Rotation {
			t.Errorf("inherited transform changed spatial fields: %+v", got)
		}
		if got.Opacity != 40 {
			t.Errorf("inherited Opacity = %g, want 40", got.Opacity)
		}
	})
}
