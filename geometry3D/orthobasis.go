package geometry3D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// OrthoBasis completes v1 into a right handed orthogonal basis (v1, v2, v3).
// v2 is unit length, v3 = v1 x v2 carries the length of v1.
// The rotation plane is chosen from the larger of |v1.X| and |v1.Y| so v2 is
// never built from a near zero pair of components.
// v1 must have a positive length, callers guard against the zero vector.
func OrthoBasis(v1 r3.Vec) (v2, v3 r3.Vec) {
	var (
		invLen float64
	)
	if math.Abs(v1.X) > math.Abs(v1.Y) {
		invLen = 1. / math.Sqrt(v1.X*v1.X+v1.Z*v1.Z)
		v2 = r3.Vec{X: -v1.Z * invLen, Y: 0, Z: v1.X * invLen}
	} else {
		invLen = 1. / math.Sqrt(v1.Y*v1.Y+v1.Z*v1.Z)
		v2 = r3.Vec{X: 0, Y: v1.Z * invLen, Z: -v1.Y * invLen}
	}
	v3 = r3.Cross(v1, v2)
	return
}

// OrthoBasisChecked is OrthoBasis for callers that have not already excluded
// the zero vector.
func OrthoBasisChecked(v1 r3.Vec) (v2, v3 r3.Vec, err error) {
	if r3.Norm(v1) == 0 {
		err = fmt.Errorf("orthogonal basis from %v: %w", v1, ErrDomain)
		return
	}
	v2, v3 = OrthoBasis(v1)
	return
}
