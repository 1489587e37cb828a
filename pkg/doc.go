// Package pkg provides the core libraries of unprecompose.
//
// # Overview
//
// A precomposition is a layer that renders a whole composition as a single
// element of another. Unprecompose removes one level of that nesting: each
// selected precomposition layer is replaced with copies of its inner layers,
// with timing and transforms rewritten so the picture stays the same.
//
// The pkg directory is organized as follows:
//
//  1. [scene] - The scene graph abstraction and an in-memory document
//  2. [flatten] - The flattening transformer
//  3. [io] - JSON and TOML project documents
//  4. [history] - Undo snapshots across CLI runs (file, Redis)
//  5. [config] - Configuration from file and environment
//  6. [render/nodelink] - Composition nesting diagrams
//  7. [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// The typical data flow of a flatten:
//
//	project.json
//	     ↓
//	[io] Import (validate, resolve selection)
//	     ↓
//	[flatten] Flatten inside one undo scope of the [scene] document
//	     ↓
//	[history] Save pre-flatten snapshot
//	     ↓
//	[io] Export
//
// # Quick Start
//
//	p, err := io.Import("project.json")
//	if err != nil {
//	    return err
//	}
//	ids, err := io.ResolveSelection(p.Doc, p.Active, p.Selection)
//	if err != nil {
//	    return err
//	}
//	report, err := flatten.Flatten(ctx, flatten.Context{
//	    Scene:     p.Doc,
//	    Comp:      p.Active,
//	    Selection: ids,
//	}, flatten.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("flattened %d precompositions\n", report.Flattened)
//	return io.Export(p, "project.json")
//
// [scene]: github.com/matzehuels/unprecompose/pkg/scene
// [flatten]: github.com/matzehuels/unprecompose/pkg/flatten
// [io]: github.com/matzehuels/unprecompose/pkg/io
// [history]: github.com/matzehuels/unprecompose/pkg/history
// [config]: github.com/matzehuels/unprecompose/pkg/config
// [render/nodelink]: github.com/matzehuels/unprecompose/pkg/render/nodelink
// [errors]: github.com/matzehuels/unprecompose/pkg/errors
// [observability]: github.com/matzehuels/unprecompose/pkg/observability
// [buildinfo]: github.com/matzehuels/unprecompose/pkg/buildinfo
package pkg
