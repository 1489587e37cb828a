package scene_test

import (
	"fmt"

	"github.com/matzehuels/unprecompose/pkg/scene"
)

func ExampleDocument() {
	// A main composition holding a title and a precomposition of a logo animation
	doc := scene.NewDocument()
	_ = doc.AddComposition(scene.Composition{ID: "main", Name: "Main"})
	_ = doc.AddComposition(scene.Composition{ID: "logo", Name: "Logo Anim"})
	_ = doc.AddLayer("main", scene.Layer{ID: "title", Name: "Title"})
	_ = doc.AddLayer("main", scene.Layer{ID: "logo-pre", Name: "Logo", Source: "logo"})

	comp, _ := doc.Composition("main")
	for _, l := range comp.Layers {
		fmt.Printf("%d %s precomp=%v\n", l.Index, l.Name, l.IsPrecomp())
	}
	// Output:
	// 1 Title precomp=false
	// 2 Logo precomp=true
}

func ExampleDocument_Undo() {
	doc := scene.NewDocument()
	_ = doc.AddComposition(scene.Composition{ID: "main"})
	_ = doc.AddLayer("main", scene.Layer{ID: "a"})
	_ = doc.AddLayer("main", scene.Layer{ID: "b"})

	scope, _ := doc.BeginUndo("Reverse")
	_ = doc.Reorder("main", []scene.LayerID{"b", "a"})
	scope.End()

	ids, _ := doc.Layers("main")
	fmt.Println("After:", ids)

	_ = doc.Undo()
	ids, _ = doc.Layers("main")
	fmt.Println("Undone:", ids)
	// Output:
	// After: [b a]
	// Undone: [a b]
}
