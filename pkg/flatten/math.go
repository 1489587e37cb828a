package flatten

import "github.com/matzehuels/unprecompose/pkg/scene"

// RebaseTime maps an inner-composition time into the containing
// composition's time space.
func RebaseTime(inner, precompIn float64) float64 {
	return inner + precompIn
}

// ComposeAxis offsets one position axis by the precomposition's position
// minus its anchor point.
func ComposeAxis(value, precompPos, precompAnchor float64) float64 {
	return value + precompPos - precompAnchor
}

// ComposePosition applies [ComposeAxis] component-wise. The result has the
// same dimensionality as inner; missing precomposition components count as 0.
func ComposePosition(inner, precompPos, precompAnchor scene.Vector) scene.Vector {
	out := make(scene.Vector, len(inner))
	for i, v := range inner {
		out[i] = ComposeAxis(v, precompPos.At(i, 0), precompAnchor.At(i, 0))
	}
	return out
}

// ComposeScale multiplies percent scales per axis. The result has the same
// dimensionality as inner; missing precomposition components count as 100.
func ComposeScale(inner, precomp scene.Vector) scene.Vector {
	out := make(scene.Vector, len(inner))
	for i, v := range inner {
		out[i] = v * precomp.At(i, 100) / 100
	}
	return out
}

// ComposeRotation sums rotations in degrees without wrapping.
func ComposeRotation(inner, precomp float64) float64 {
	return inner + precomp
}

// ComposeOpacity multiplies percent opacities, clamped to [0, 100].
func ComposeOpacity(inner, precomp float64) float64 {
	return min(max(inner*precomp/100, 0), 100)
}

// composeTransform combines a duplicate's transform with the precomposition's.
// When inherited is true the duplicate is parented to another duplicate and
// receives the spatial part through its parent; only opacity, which parenting
// does not propagate, is composed.
func composeTransform(dup, pre scene.Transform, inherited bool) scene.Transform {
	out := dup.Clone()
	out.Opacity = ComposeOpacity(dup.Opacity, pre.Opacity)
	if inherited {
		return out
	}

	if dup.SeparateDimensions {
		for i, v := range dup.Position {
			out.Position[i] = ComposeAxis(v, pre.Position.At(i, 0), pre.AnchorPoint.At(i, 0))
		}
	} else {
		out.Position = ComposePosition(dup.Position, pre.Position, pre.AnchorPoint)
	}
	out.Scale = ComposeScale(dup.Scale, pre.Scale)
	out.Rotation = ComposeRotation(dup.Rotation, pre.Rotation)
	return out
}
