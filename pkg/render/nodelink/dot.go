package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/unprecompose/pkg/scene"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Active is drawn with a bold outline.
	Active scene.CompID

	// Detailed lists each composition's layers in its label, top to bottom.
	// When false, only the name and layer count are shown.
	Detailed bool
}

// ToDOT converts compositions to Graphviz DOT format. Precomposition layers
// become edges from the containing composition to their source.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(comps []scene.Composition, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, c := range comps {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, opts.Detailed))}
		if c.ID == opts.Active {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range comps {
		for _, l := range c.Layers {
			if l.IsPrecomp() {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", c.ID, l.Source, layerName(l))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c scene.Composition, detailed bool) string {
	name := c.Name
	if name == "" {
		name = string(c.ID)
	}
	if !detailed {
		return fmt.Sprintf("%s\n%d layers", name, len(c.Layers))
	}

	lines := []string{name}
	for _, l := range c.Layers {
		marker := ""
		if l.IsPrecomp() {
			marker = " [pre]"
		}
		lines = append(lines, fmt.Sprintf("%d. %s%s", l.Index, layerName(l), marker))
	}
	return strings.Join(lines, "\n")
}

func layerName(l scene.Layer) string {
	if l.Name != "" {
		return l.Name
	}
	return string(l.ID)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so the diagram scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
