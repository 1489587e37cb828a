// Package flatten removes one level of composition nesting.
//
// # Overview
//
// A precomposition layer renders an inner composition as a single element of
// its containing composition. [Flatten] replaces each selected precomposition
// layer with copies of the inner composition's layers, rewriting their timing
// and transform so the combined picture stays the same:
//
//   - start time is re-based: inner start + precomposition in-point
//   - position is offset: inner + precomposition position - precomposition anchor
//   - scale multiplies per axis as percentages
//   - rotation adds
//   - opacity multiplies as a percentage, clamped to [0, 100]
//
// The original precomposition layer is removed; the inner composition itself
// is never modified. The copies are then stacked so that the earliest-starting
// layer is topmost among them.
//
// # Selection Handling
//
// Selected layers that are not precompositions are skipped. Each skip is
// recorded in the [Report] and passed to the [Notifier]; processing continues
// with the next selection. Missing context or an empty selection abort the
// run before anything is touched.
//
// # Parenting
//
// Inner layers parented to other inner layers are re-parented to the matching
// copies and keep their local transform, which they inherit through the new
// parent. Inner layers without an inner parent take the precomposition's own
// parent. Set [Options.DropInnerParenting] to give every copy the
// precomposition's parent and a fully composed transform instead.
//
// # Undo
//
// The whole run executes inside a single [scene.UndoScope] that is closed on
// every exit path. A failure in the middle of a precomposition can leave it
// partially flattened; reverting the scope restores the document in one step.
//
// # Usage
//
//	report, err := flatten.Flatten(ctx, flatten.Context{
//	    Scene:     doc,
//	    Comp:      "main",
//	    Selection: []scene.LayerID{"logo-pre"},
//	}, flatten.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Flattened)
package flatten
