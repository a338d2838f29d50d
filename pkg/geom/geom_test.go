package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertPointNear(t *testing.T, want, got Point3D) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func assertVectorNear(t *testing.T, want, got Vector3D) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}
