// Package geom provides immutable 3D value types: free vectors, affine
// points, and the primitives built from them (sphere, plane, triangle,
// axis-aligned box, line segment). Every primitive validates itself at
// construction, so a value obtained from a constructor is always well formed.
package geom
