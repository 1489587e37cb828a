package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/scene"
)

// Format identifies a project document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath derives the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported project format %q (must be .json or .toml)", filepath.Ext(path))
}

// Project is a decoded project document.
type Project struct {
	Doc       *scene.Document
	Active    scene.CompID // Active composition, empty if none is open
	Selection []string     // Selected layers by ID or name, in selection order
}

type project struct {
	Active       string        `json:"active,omitempty" toml:"active,omitempty"`
	Selection    []string      `json:"selection,omitempty" toml:"selection,omitempty"`
	Compositions []composition `json:"compositions" toml:"compositions"`
}

type composition struct {
	ID        string  `json:"id" toml:"id"`
	Name      string  `json:"name,omitempty" toml:"name,omitempty"`
	Duration  float64 `json:"duration,omitempty" toml:"duration,omitempty"`
	FrameRate float64 `json:"frame_rate,omitempty" toml:"frame_rate,omitempty"`
	Layers    []layer `json:"layers" toml:"layers"`
}

type layer struct {
	ID        string     `json:"id,omitempty" toml:"id,omitempty"`
	Name      string     `json:"name,omitempty" toml:"name,omitempty"`
	Source    string     `json:"source,omitempty" toml:"source,omitempty"`
	StartTime float64    `json:"start_time" toml:"start_time"`
	InPoint   float64    `json:"in_point" toml:"in_point"`
	OutPoint  float64    `json:"out_point" toml:"out_point"`
	Parent    string     `json:"parent,omitempty" toml:"parent,omitempty"`
	Transform *transform `json:"transform,omitempty" toml:"transform,omitempty"`
}

type transform struct {
	AnchorPoint        []float64 `json:"anchor_point,omitempty" toml:"anchor_point,omitempty"`
	Position           []float64 `json:"position,omitempty" toml:"position,omitempty"`
	SeparateDimensions bool      `json:"separate_dimensions,omitempty" toml:"separate_dimensions,omitempty"`
	Scale              []float64 `json:"scale,omitempty" toml:"scale,omitempty"`
	Rotation           float64   `json:"rotation" toml:"rotation"`
	Opacity            *float64  `json:"opacity,omitempty" toml:"opacity,omitempty"`
}

// toScene fills in host defaults for missing transform fields.
func (t *transform) toScene() scene.Transform {
	out := scene.DefaultTransform()
	if t == nil {
		return out
	}
	if t.Position != nil {
		out.Position = scene.Vector(t.Position).Clone()
	}
	dims := out.Position.Dims()
	out.AnchorPoint = filled(t.AnchorPoint, dims, 0)
	out.Scale = filled(t.Scale, dims, 100)
	out.SeparateDimensions = t.SeparateDimensions
	out.Rotation = t.Rotation
	if t.Opacity != nil {
		out.Opacity = *t.Opacity
	}
	return out
}

func fromSceneTransform(t scene.Transform) *transform {
	opacity := t.Opacity
	return &transform{
		AnchorPoint:        t.AnchorPoint.Clone(),
		Position:           t.Position.Clone(),
		SeparateDimensions: t.SeparateDimensions,
		Scale:              t.Scale.Clone(),
		Rotation:           t.Rotation,
		Opacity:            &opacity,
	}
}

// filled returns v, or a vector of dims components set to def when v is empty.
func filled(v []float64, dims int, def float64) scene.Vector {
	if len(v) > 0 {
		return scene.Vector(v).Clone()
	}
	out := make(scene.Vector, dims)
	for i := range out {
		out[i] = def
	}
	return out
}
