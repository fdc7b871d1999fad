package metricfield

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/anisometric/geometry3D"
)

const (
	// RadiusGuard is the radius below which the radial fields use DefaultDirection
	RadiusGuard = 1e-13

	StretchFactor = 3.0

	SinkSlope, SinkOffset   = 2.0, 0.8
	SwirlSlope, SwirlOffset = 5.0, 1.0

	SineAmplitude = 1.8
	SinePeriod    = 6.0
	SineScale     = 2.1

	CenterBase, CenterGain, CenterSoftening = 0.7, 3.0, 0.4
	PerimeterOffset                         = 0.2
	RightOffset                             = 1.0
	StrainScaleMax                          = 1000.0
)

var DefaultDirection = r3.Vec{X: 1, Y: 0, Z: 0}

// StrainSampler returns the strain magnitude at a point in physical space
type StrainSampler func(p r3.Vec) float64

func ConstantStrain(value float64) StrainSampler {
	return func(r3.Vec) float64 { return value }
}

// fieldFunc evaluates one catalog entry. pn is normalized into the domain
// frame, raw is the physical point.
type fieldFunc func(pn, raw r3.Vec, strain StrainSampler) geometry3D.Tensor

var fieldTable = [numFieldTypes]fieldFunc{
	FieldNone:      func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return NoneField(pn) },
	FieldStretchX:  func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return StretchXField(pn) },
	FieldStretchY:  func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return StretchYField(pn) },
	FieldSink:      func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return SinkField(pn) },
	FieldSwirl:     func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return SwirlField(pn) },
	FieldSine:      func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return SineField(pn) },
	FieldCenter:    func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return CenterField(pn) },
	FieldPerimeter: func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return PerimeterField(pn) },
	FieldRight:     func(pn, _ r3.Vec, _ StrainSampler) geometry3D.Tensor { return RightField(pn) },
	FieldStrain:    func(_, raw r3.Vec, s StrainSampler) geometry3D.Tensor { return StrainField(raw, s) },
}

func NoneField(r3.Vec) geometry3D.Tensor { return geometry3D.Identity() }

func StretchXField(r3.Vec) geometry3D.Tensor { return geometry3D.Diagonal(StretchFactor, 1, 1) }

func StretchYField(r3.Vec) geometry3D.Tensor { return geometry3D.Diagonal(1, StretchFactor, 1) }

// radialDirection returns p and its length, substituting DefaultDirection
// near the origin so the basis builder never sees a zero vector.
func radialDirection(p r3.Vec) (dir r3.Vec, r float64) {
	r = r3.Norm(p)
	if r < RadiusGuard {
		return DefaultDirection, r
	}
	return p, r
}

func SinkScale(r float64) float64 {
	return math.Min(SinkSlope*r, 1.) + SinkOffset
}

func SwirlScale(r float64) float64 {
	return math.Min(SwirlSlope*r, 1.) + SwirlOffset
}

// SinkField leaves the radial direction unscaled and compresses the two
// directions orthogonal to it.
func SinkField(p r3.Vec) geometry3D.Tensor {
	var (
		v1, r  = radialDirection(p)
		v2, v3 = geometry3D.OrthoBasis(v1)
		s      = SinkScale(r)
	)
	return geometry3D.FromEigen(v1, v2, v3, 1, s, s)
}

// SwirlField expands the radial direction
func SwirlField(p r3.Vec) geometry3D.Tensor {
	var (
		v1, r  = radialDirection(p)
		v2, v3 = geometry3D.OrthoBasis(v1)
		s      = SwirlScale(r)
	)
	return geometry3D.FromEigen(v1, v2, v3, s, 1, 1)
}

// SineTangent is the unit tangent of y = A sin(ωx) at x
func SineTangent(x float64) r3.Vec {
	t := r3.Vec{X: 1, Y: SineAmplitude * SinePeriod * math.Cos(SinePeriod*x)}
	return r3.Scale(1./r3.Norm(t), t)
}

func SineField(p r3.Vec) geometry3D.Tensor {
	var (
		v1     = SineTangent(p.X)
		v2, v3 = geometry3D.OrthoBasis(v1)
	)
	return geometry3D.FromEigen(v1, v2, v3, 1./SineScale, 1, 1)
}

func CenterScale(r float64) float64 {
	return CenterBase + CenterGain/(r+CenterSoftening)
}

func CenterField(p r3.Vec) geometry3D.Tensor {
	return geometry3D.Isotropic(CenterScale(r3.Norm(p)))
}

func PerimeterField(p r3.Vec) geometry3D.Tensor {
	return geometry3D.Isotropic(r3.Norm(p) + PerimeterOffset)
}

func RightScale(x float64) float64 {
	return math.Max(x+RightOffset, 1.)
}

func RightField(p r3.Vec) geometry3D.Tensor {
	return geometry3D.Isotropic(RightScale(p.X))
}

func StrainScale(strain float64) float64 {
	return math.Min(1./math.Sqrt(strain), StrainScaleMax)
}

// StrainField samples the external strain at the physical point p
func StrainField(p r3.Vec, strain StrainSampler) geometry3D.Tensor {
	return geometry3D.Isotropic(StrainScale(strain(p)))
}
