// Package nodelink renders composition nesting as a node-link diagram.
//
// # Overview
//
// Every composition of a project is drawn as a box. A precomposition layer
// becomes an arrow from the composition that contains it to the composition
// it renders, labelled with the layer name. The diagram shows at a glance
// which precompositions a flatten would remove and what lies beneath them.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc.Compositions(), nodelink.Options{Active: "main"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Active: composition drawn with a bold outline
//   - Detailed: list every layer of a composition inside its box
//
// # DOT Format
//
// [ToDOT] produces plain Graphviz DOT source that can be rendered with
// [RenderSVG], which uses the embedded Graphviz from goccy/go-graphviz, or
// piped to any external Graphviz tool.
package nodelink
