package metricfield

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/anisometric/geometry3D"
)

// DomainFrame maps physical coordinates into the frame the analytic fields
// are defined in: pn = (p - Center) / Range, component by component.
type DomainFrame struct {
	Center r3.Vec
	Range  r3.Vec
}

// UnitFrame leaves coordinates unchanged
var UnitFrame = DomainFrame{Range: r3.Vec{X: 1, Y: 1, Z: 1}}

// NewDomainFrame centers the frame on a bounding box and scales each axis by
// its half extent, so the box maps onto [-1,1]³.
func NewDomainFrame(min, max r3.Vec) DomainFrame {
	return DomainFrame{
		Center: geometry3D.Midpoint(min, max),
		Range:  r3.Scale(0.5, r3.Sub(max, min)),
	}
}

// Normalize does not guard zero Range components, they propagate as ±Inf
func (f DomainFrame) Normalize(p r3.Vec) r3.Vec {
	return geometry3D.DivElem(r3.Sub(p, f.Center), f.Range)
}

// Configuration is the immutable field selection for an optimization run.
// Build it with NewConfiguration, the zero value samples the identity field
// through a degenerate frame.
type Configuration struct {
	primary, secondary FieldType
	weight             float64
	frame              DomainFrame
	strain             StrainSampler
}

type Option func(c *Configuration)

// WithStrain supplies the external strain sampler required by FieldStrain
func WithStrain(s StrainSampler) Option {
	return func(c *Configuration) { c.strain = s }
}

// NewConfiguration validates the field selectors once. Weights outside [0,1]
// are accepted and extrapolate between the two fields.
func NewConfiguration(primary, secondary FieldType, weight float64, frame DomainFrame,
	opts ...Option) (cfg Configuration, err error) {
	cfg = Configuration{
		primary:   primary,
		secondary: secondary,
		weight:    weight,
		frame:     frame,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, slot := range []struct {
		name string
		f    FieldType
	}{{"primary", primary}, {"secondary", secondary}} {
		if !slot.f.Valid() {
			err = &ConfigurationError{Field: slot.name, Reason: fmt.Sprintf("unknown field type %d", uint8(slot.f))}
			return Configuration{}, err
		}
		if slot.f == FieldStrain && cfg.strain == nil {
			err = &ConfigurationError{Field: slot.name, Reason: "strain field selected without a strain sampler"}
			return Configuration{}, err
		}
	}
	return
}

func (c Configuration) Primary() FieldType   { return c.primary }
func (c Configuration) Secondary() FieldType { return c.secondary }
func (c Configuration) Weight() float64      { return c.weight }
func (c Configuration) Frame() DomainFrame   { return c.frame }

// WithFrame returns a copy using a different domain frame, the receiver is
// left untouched.
func (c Configuration) WithFrame(frame DomainFrame) Configuration {
	c.frame = frame
	return c
}

func (c Configuration) String() string {
	return fmt.Sprintf("primary=%s secondary=%s weight=%g center=%v range=%v",
		c.primary, c.secondary, c.weight, c.frame.Center, c.frame.Range)
}
