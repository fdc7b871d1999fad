package metricfield

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/anisometric/geometry3D"
)

// DeformTensor evaluates the configured field pair at the physical point p
// and blends them, weight on the primary field. The strain field is the one
// entry that sees p unnormalized.
func (c Configuration) DeformTensor(p r3.Vec) geometry3D.Tensor {
	var (
		pn = c.frame.Normalize(p)
		E  = c.evaluate(c.primary, pn, p)
		Eb = c.evaluate(c.secondary, pn, p)
	)
	return geometry3D.Blend(E, Eb, c.weight)
}

func (c Configuration) evaluate(f FieldType, pn, raw r3.Vec) geometry3D.Tensor {
	return fieldTable[f](pn, raw, c.strain)
}

// TransformPoint maps p into the locally isotropic space of the field at p
func (c Configuration) TransformPoint(p r3.Vec) r3.Vec {
	return geometry3D.Transform(p, c.DeformTensor(p))
}
