package io

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/scene"
)

// maxSuggestDistance bounds the edit distance of "did you mean" suggestions.
const maxSuggestDistance = 3

// ResolveSelection maps selection entries to layer IDs in comp.
//
// An entry matches a layer ID first and a display name second; a name shared
// by several layers selects all of them in stacking order. The result keeps
// selection order and lists each layer once. Unknown entries fail with
// INVALID_INPUT, suggesting the closest layer name or ID when one is near.
func ResolveSelection(sg scene.SceneGraph, comp scene.CompID, refs []string) ([]scene.LayerID, error) {
	c, err := sg.Composition(comp)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoActiveContext, err, "no active composition %q", comp)
	}

	var out []scene.LayerID
	add := func(id scene.LayerID) {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if i := slices.IndexFunc(c.Layers, func(l scene.Layer) bool { return string(l.ID) == ref }); i >= 0 {
			add(c.Layers[i].ID)
			continue
		}
		found := false
		for _, l := range c.Layers {
			if l.Name == ref {
				add(l.ID)
				found = true
			}
		}
		if found {
			continue
		}
		if s := suggest(ref, c.Layers); s != "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no layer %q in composition %s (did you mean %q?)", ref, comp, s)
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "no layer %q in composition %s", ref, comp)
	}
	return out, nil
}

// suggest returns the layer name or ID closest to ref, or "" when nothing is
// within maxSuggestDistance edits.
func suggest(ref string, layers []scene.Layer) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	lower := strings.ToLower(ref)
	for _, l := range layers {
		for _, cand := range []string{l.Name, string(l.ID)} {
			if cand == "" {
				continue
			}
			if d := levenshtein.ComputeDistance(lower, strings.ToLower(cand)); d < bestDist {
				bestDist = d
				best = cand
			}
		}
	}
	return best
}
