package geometry3D

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDomain is returned where a direction is required and a zero length
// vector was supplied.
var ErrDomain = errors.New("zero length vector where a direction is required")

func Dot(a, b r3.Vec) float64 { return r3.Dot(a, b) }

func Cross(a, b r3.Vec) r3.Vec { return r3.Cross(a, b) }

func Scale(f float64, a r3.Vec) r3.Vec { return r3.Scale(f, a) }

func Add(a, b r3.Vec) r3.Vec { return r3.Add(a, b) }

func Sub(a, b r3.Vec) r3.Vec { return r3.Sub(a, b) }

// Copy writes src into dst and returns the copied value
func Copy(dst *r3.Vec, src r3.Vec) r3.Vec {
	*dst = src
	return src
}

func Length(a r3.Vec) float64 { return r3.Norm(a) }

// Equal is exact, component by component, no tolerance
func Equal(a, b r3.Vec) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}

func Distance(a, b r3.Vec) float64 { return r3.Norm(r3.Sub(a, b)) }

// ProjectOnto returns the projection of u onto v. A zero length v projects
// everything to the zero vector.
func ProjectOnto(u, v r3.Vec) (p r3.Vec) {
	var (
		vv = r3.Dot(v, v)
	)
	if vv == 0 {
		return
	}
	p = r3.Scale(r3.Dot(u, v)/vv, v)
	return
}

// ProjectOntoPlane removes the component of v along the plane normal n
func ProjectOntoPlane(v, n r3.Vec) r3.Vec {
	return r3.Sub(v, ProjectOnto(v, n))
}

func Normalize(a r3.Vec) (u r3.Vec, err error) {
	var (
		l = r3.Norm(a)
	)
	if l == 0 || math.IsNaN(l) {
		err = fmt.Errorf("normalize %v: %w", a, ErrDomain)
		return
	}
	u = r3.Scale(1./l, a)
	return
}

func Midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

// Centroid is the arithmetic mean of the points, each weighted 1/len(pts)
func Centroid(pts ...r3.Vec) (c r3.Vec) {
	if len(pts) == 0 {
		return
	}
	var (
		w = 1. / float64(len(pts))
	)
	for _, p := range pts {
		c = r3.Add(c, r3.Scale(w, p))
	}
	return
}

// MulElem and DivElem operate component by component. Division by a zero
// component propagates as ±Inf or NaN.
func MulElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func DivElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X / b.X, Y: a.Y / b.Y, Z: a.Z / b.Z}
}

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}
