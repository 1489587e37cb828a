package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/unprecompose/pkg/errors"
)

// WriteJSON encodes a project as indented JSON and writes it to w.
// Compositions keep their insertion order and layers their stacking order,
// so the output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(p *Project, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encode(p)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteTOML encodes a project as TOML and writes it to w.
func WriteTOML(p *Project, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(encode(p)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
	}
	return nil
}

// Write encodes a project in the given format.
func Write(p *Project, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(p, w)
	case FormatTOML:
		return WriteTOML(p, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported project format %q", format)
}

// Marshal encodes a project into memory.
func Marshal(p *Project, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(p, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes a project to path in the format given by its extension.
func Export(p *Project, path string) error {
	if err := errors.ValidateProjectPath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(p, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func encode(p *Project) project {
	out := project{
		Active:    string(p.Active),
		Selection: p.Selection,
	}
	for _, c := range p.Doc.Compositions() {
		oc := composition{
			ID:        string(c.ID),
			Name:      c.Name,
			Duration:  c.Duration,
			FrameRate: c.FrameRate,
			Layers:    make([]layer, len(c.Layers)),
		}
		for i, l := range c.Layers {
			oc.Layers[i] = layer{
				ID:        string(l.ID),
				Name:      l.Name,
				Source:    string(l.Source),
				StartTime: l.StartTime,
				InPoint:   l.InPoint,
				OutPoint:  l.OutPoint,
				Parent:    string(l.Parent),
				Transform: fromSceneTransform(l.Transform),
			}
		}
		out.Compositions = append(out.Compositions, oc)
	}
	return out
}
