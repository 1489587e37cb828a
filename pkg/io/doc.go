// Package io provides JSON and TOML import and export for project documents.
//
// # Overview
//
// A project document carries a set of compositions, the active composition
// and the saved layer selection. It is the file-based stand-in for a host
// application's open project: [Import] turns it into a [scene.Document] that
// the flattening transformer can work on, and [Export] writes the result back.
//
// # JSON Format
//
//	{
//	  "active": "main",
//	  "selection": ["logo-pre"],
//	  "compositions": [
//	    {
//	      "id": "main",
//	      "name": "Main",
//	      "duration": 10,
//	      "frame_rate": 30,
//	      "layers": [
//	        {
//	          "id": "logo-pre",
//	          "name": "Logo",
//	          "source": "logo",
//	          "start_time": 0,
//	          "in_point": 2,
//	          "out_point": 8,
//	          "transform": {
//	            "anchor_point": [0, 0],
//	            "position": [960, 540],
//	            "scale": [100, 100],
//	            "rotation": 0,
//	            "opacity": 100
//	          }
//	        }
//	      ]
//	    }
//	  ]
//	}
//
// Layers are listed in stacking order: the first layer has index 1 and is
// the topmost. A layer with a "source" is a precomposition of that
// composition. Layers without an "id" are assigned a random UUID on import.
// A missing transform, or missing transform fields, take the host defaults
// (zero anchor and position, 100% scale, 100% opacity).
//
// TOML documents use the same keys, with compositions and layers as arrays
// of tables. The format is chosen from the file extension.
//
// # Selection
//
// Selection entries may name a layer by ID or by display name. Use
// [ResolveSelection] to turn them into layer IDs of a composition; unknown
// entries fail with INVALID_INPUT and a suggestion for the closest match.
//
// # Validation
//
// Import rejects malformed identifiers, unknown precomposition sources,
// parents outside the layer's composition, parent cycles and nesting cycles.
// All such failures carry the INVALID_PROJECT code from [errors].
package io
