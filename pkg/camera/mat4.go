package camera

import (
	"math"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
)

// Mat4 is a 4×4 matrix stored row-major.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// At returns the element in row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[r*4+c]
}

// MulPoint transforms p as the homogeneous point (x, y, z, 1).
func (m Mat4) MulPoint(p geom.Point3D) (x, y, z, w float64) {
	x = m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y = m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z = m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w = m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	return x, y, z, w
}

// LookAt builds a right-handed view matrix from a camera basis: the camera
// sits at eye and looks down its local −Z axis.
func LookAt(eye geom.Point3D, right, up, forward geom.Vector3D) Mat4 {
	e := eye.ToVector()
	return Mat4{
		right.X, right.Y, right.Z, -right.Dot(e),
		up.X, up.Y, up.Z, -up.Dot(e),
		-forward.X, -forward.Y, -forward.Z, forward.Dot(e),
		0, 0, 0, 1,
	}
}

// PerspectiveMatrix is the OpenGL-style frustum projection. fovY is in
// radians.
func PerspectiveMatrix(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	}
}

// OrthographicMatrix maps a width×height view volume between near and far
// onto the NDC cube.
func OrthographicMatrix(width, height, near, far float64) Mat4 {
	return Mat4{
		2 / width, 0, 0, 0,
		0, 2 / height, 0, 0,
		0, 0, -2 / (far - near), -(far + near) / (far - near),
		0, 0, 0, 1,
	}
}
