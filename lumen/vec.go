package lumen

import "golang.org/x/exp/constraints"

// Vec3 is a 3-component position vector.
type Vec3[T constraints.Float] [3]T

type Vec3f = Vec3[float32]

// XYZ returns the vector components.
func (v Vec3[T]) XYZ() (x, y, z T) {
	return v[0], v[1], v[2]
}

// TriangleVertices is the fixed geometry the harness draws: one triangle
// in clip space, uploaded once at startup.
var TriangleVertices = []Vec3f{
	{-0.5, -0.5, 0.0},
	{0.5, -0.5, 0.0},
	{0.0, 0.5, 0.0},
}
