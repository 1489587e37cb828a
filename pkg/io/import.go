package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/scene"
)

// ReadJSON decodes a JSON project document from r.
//
// The returned document is validated: identifiers must be well-formed, every
// precomposition source must exist, parents must live in the same composition
// and neither parenting nor composition nesting may form a cycle. ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (*Project, error) {
	var data project
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return build(data)
}

// ReadTOML decodes a TOML project document from r, with the same validation
// as [ReadJSON].
func ReadTOML(r io.Reader) (*Project, error) {
	var data project
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	return build(data)
}

// Read decodes a project document of the given format from r.
func Read(r io.Reader, format Format) (*Project, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported project format %q", format)
}

// Unmarshal decodes a project document held in memory.
func Unmarshal(data []byte, format Format) (*Project, error) {
	return Read(bytes.NewReader(data), format)
}

// Import reads the project document at path. The format follows the file
// extension.
func Import(path string) (*Project, error) {
	if err := errors.ValidateProjectPath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "project %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

func build(data project) (*Project, error) {
	doc := scene.NewDocument()

	for ci, c := range data.Compositions {
		if err := errors.ValidateID(c.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "composition %d", ci+1)
		}
		comp := scene.Composition{
			ID:        scene.CompID(c.ID),
			Name:      c.Name,
			Duration:  c.Duration,
			FrameRate: c.FrameRate,
		}
		if err := doc.AddComposition(comp); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "composition %s", c.ID)
		}

		for li, l := range c.Layers {
			if err := validateLayer(l); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "composition %s: layer %d", c.ID, li+1)
			}
			sl := scene.Layer{
				ID:        scene.LayerID(l.ID),
				Name:      l.Name,
				Source:    scene.CompID(l.Source),
				StartTime: l.StartTime,
				InPoint:   l.InPoint,
				OutPoint:  l.OutPoint,
				Parent:    scene.LayerID(l.Parent),
				Transform: l.Transform.toScene(),
			}
			if err := doc.AddLayer(comp.ID, sl); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "composition %s: layer %d", c.ID, li+1)
			}
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "invalid project")
	}

	if data.Active != "" {
		if err := errors.ValidateID(data.Active); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProject, err, "active composition")
		}
	}

	return &Project{
		Doc:       doc,
		Active:    scene.CompID(data.Active),
		Selection: data.Selection,
	}, nil
}

func validateLayer(l layer) error {
	for _, id := range []string{l.ID, l.Source, l.Parent} {
		if id == "" {
			continue
		}
		if err := errors.ValidateID(id); err != nil {
			return err
		}
	}
	if err := errors.ValidateLayerName(l.Name); err != nil {
		return err
	}
	if l.OutPoint < l.InPoint {
		return errors.New(errors.ErrCodeInvalidProject, "out point %g before in point %g", l.OutPoint, l.InPoint)
	}
	return nil
}
