package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/anisometric/metricfield"
)

// Parameters obtained from the YAML input file
type FieldParameters struct {
	Title          string    `json:"Title"`
	PrimaryField   string    `json:"PrimaryField"`
	SecondaryField string    `json:"SecondaryField"`
	BlendWeight    *float64  `json:"BlendWeight,omitempty"` // Defaults to 1, the primary field only
	FrameCenter    []float64 `json:"FrameCenter,omitempty"`
	FrameRange     []float64 `json:"FrameRange,omitempty"` // Half extent per axis, both or neither
	StrainValue    *float64  `json:"StrainValue,omitempty"` // Constant strain for the strain field
	Parallelism    int       `json:"Parallelism,omitempty"` // Goroutines used for sampling, 0 is NumCPU
}

func (ip *FieldParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *FieldParameters) Weight() float64 {
	if ip.BlendWeight == nil {
		return 1
	}
	return *ip.BlendWeight
}

// HasFrame reports whether the file sets the domain frame explicitly
func (ip *FieldParameters) HasFrame() bool {
	return len(ip.FrameCenter) != 0 || len(ip.FrameRange) != 0
}

func (ip *FieldParameters) frame() (f metricfield.DomainFrame, err error) {
	var (
		toVec = func(name string, x []float64) (v r3.Vec, err error) {
			if len(x) != 3 {
				return v, &metricfield.ConfigurationError{Field: name,
					Reason: fmt.Sprintf("expected 3 components, got %d", len(x))}
			}
			return r3.Vec{X: x[0], Y: x[1], Z: x[2]}, nil
		}
	)
	if f.Center, err = toVec("FrameCenter", ip.FrameCenter); err != nil {
		return
	}
	f.Range, err = toVec("FrameRange", ip.FrameRange)
	return
}

// Configuration builds the validated field configuration. The default frame
// is used unless the file sets its own.
func (ip *FieldParameters) Configuration(defaultFrame metricfield.DomainFrame) (c metricfield.Configuration, err error) {
	var (
		primary   metricfield.FieldType
		secondary = metricfield.FieldNone
		frame     = defaultFrame
		opts      []metricfield.Option
	)
	if primary, err = metricfield.NewFieldType(ip.PrimaryField); err != nil {
		return
	}
	if ip.SecondaryField != "" {
		if secondary, err = metricfield.NewFieldType(ip.SecondaryField); err != nil {
			return
		}
	}
	if ip.HasFrame() {
		if frame, err = ip.frame(); err != nil {
			return
		}
	}
	if ip.StrainValue != nil {
		opts = append(opts, metricfield.WithStrain(metricfield.ConstantStrain(*ip.StrainValue)))
	}
	return metricfield.NewConfiguration(primary, secondary, ip.Weight(), frame, opts...)
}

func (ip *FieldParameters) Print(w io.Writer) {
	secondary := ip.SecondaryField
	if secondary == "" {
		secondary = "none"
	}
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t\t= Primary Field\n", ip.PrimaryField)
	fmt.Fprintf(w, "[%s]\t\t\t= Secondary Field\n", secondary)
	fmt.Fprintf(w, "%8.5f\t\t= Blend Weight\n", ip.Weight())
	if ip.HasFrame() {
		fmt.Fprintf(w, "%v\t= Frame Center\n", ip.FrameCenter)
		fmt.Fprintf(w, "%v\t= Frame Range\n", ip.FrameRange)
	}
	if ip.StrainValue != nil {
		fmt.Fprintf(w, "%8.5f\t\t= Strain\n", *ip.StrainValue)
	}
	if ip.Parallelism != 0 {
		fmt.Fprintf(w, "[%d]\t\t\t\t= Parallelism\n", ip.Parallelism)
	}
}
