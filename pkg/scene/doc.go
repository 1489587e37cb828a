// Package scene models the composition tree a flattening operation works on.
//
// # Overview
//
// A motion-graphics project is a set of compositions. Each [Composition] holds
// an ordered stack of [Layer] values; stacking index 1 is the topmost layer.
// A layer whose Source names another composition is a precomposition layer:
// it renders the inner composition as a single element of the outer one.
//
// The host application owns the live document. This package abstracts the
// capabilities the flattening algorithm needs behind the [SceneGraph]
// interface:
//
//   - list the layers of a composition in stacking order
//   - duplicate a layer into a target composition (the copy lands on top)
//   - mutate timing, transform and parent fields
//   - reorder a composition's stack in one positional reassignment
//   - remove a layer
//   - open an undo scope covering a whole operation
//
// # In-memory Document
//
// [Document] is a complete in-memory implementation of [SceneGraph]. It backs
// the command-line host and serves as the test double for the flattening
// package. Duplicated layers receive fresh UUID identifiers.
//
//	doc := scene.NewDocument()
//	_ = doc.AddComposition(scene.Composition{ID: "main", Name: "Main"})
//	_ = doc.AddLayer("main", scene.Layer{ID: "bg", Name: "Background"})
//
// # Invariants
//
// Stacking indices are always dense (1..N). Every mutating call on [Document]
// re-indexes the affected composition before returning. Moving a layer's start
// time shifts its in and out points by the same amount, matching host
// semantics.
//
// # Concurrency
//
// [Document] is not safe for concurrent use. Flattening assumes exclusive,
// uncontended access to the document for its whole duration.
package scene
