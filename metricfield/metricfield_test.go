package metricfield

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/anisometric/geometry3D"
)

func mustConfig(t *testing.T, primary, secondary FieldType, w float64, frame DomainFrame, opts ...Option) Configuration {
	cfg, err := NewConfiguration(primary, secondary, w, frame, opts...)
	require.NoError(t, err)
	return cfg
}

// assertEigen checks E·u = λu for a direction u
func assertEigen(t *testing.T, E geometry3D.Tensor, u r3.Vec, lambda float64) {
	u = r3.Scale(1/r3.Norm(u), u)
	got := geometry3D.Transform(u, E)
	assert.True(t, geometry3D.EqualWithin(got, r3.Scale(lambda, u), 1e-12),
		"E·u = %v, want %v", got, r3.Scale(lambda, u))
}

func TestFieldTypeNames(t *testing.T) {
	for i, name := range FieldNames() {
		f, err := NewFieldType(name)
		require.NoError(t, err)
		assert.Equal(t, FieldType(i), f)
		assert.Equal(t, name, f.String())
		assert.NotEmpty(t, f.Description())
	}
	f, err := NewFieldType("  StretchY ")
	require.NoError(t, err)
	assert.Equal(t, FieldStretchY, f)

	_, err = NewFieldType("vortex")
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, err.Error(), "vortex")
	assert.False(t, numFieldTypes.Valid())
	assert.Equal(t, "FieldType(200)", FieldType(200).String())
	assert.Contains(t, FieldAliases(), "isotropic")
}

func TestNewConfiguration(t *testing.T) {
	_, err := NewConfiguration(FieldType(42), FieldNone, 1, UnitFrame)
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "primary", cerr.Field)

	_, err = NewConfiguration(FieldNone, FieldStrain, 1, UnitFrame)
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "secondary", cerr.Field)

	// out of range weight is not an error
	cfg := mustConfig(t, FieldStretchX, FieldNone, 1.5, UnitFrame)
	assert.Equal(t, 1.5, cfg.Weight())
	assert.Equal(t, FieldStretchX, cfg.Primary())
	assert.Equal(t, FieldNone, cfg.Secondary())
	E := cfg.DeformTensor(r3.Vec{X: 0.3})
	assert.True(t, E.EqualWithin(geometry3D.Diagonal(4, 1, 1), 1e-15), "%v", E)

	moved := cfg.WithFrame(DomainFrame{Center: r3.Vec{X: 1}, Range: r3.Vec{X: 2, Y: 2, Z: 2}})
	assert.Equal(t, UnitFrame, cfg.Frame())
	assert.Equal(t, r3.Vec{X: 1}, moved.Frame().Center)
	assert.Contains(t, cfg.String(), "stretchX")
}

func TestDomainFrame(t *testing.T) {
	f := NewDomainFrame(r3.Vec{}, r3.Vec{X: 2, Y: 4, Z: 6})
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, f.Center)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, f.Range)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, f.Normalize(r3.Vec{X: 2, Y: 4, Z: 6}))
	assert.Equal(t, r3.Vec{X: -1, Y: -1, Z: -1}, f.Normalize(r3.Vec{}))

	// zero range propagates as infinity
	flat := DomainFrame{Range: r3.Vec{X: 1, Y: 1, Z: 0}}
	pn := flat.Normalize(r3.Vec{X: 1, Y: 1, Z: 1})
	assert.True(t, math.IsInf(pn.Z, 1))
}

func TestAxisFields(t *testing.T) {
	p := r3.Vec{X: 0.2, Y: -0.4, Z: 0.9}
	assert.Equal(t, geometry3D.Identity(), NoneField(p))
	assert.Equal(t, geometry3D.Diagonal(3, 1, 1), StretchXField(p))
	assert.Equal(t, geometry3D.Diagonal(1, 3, 1), StretchYField(p))
}

func TestSinkField(t *testing.T) {
	for _, r := range []float64{0, 1e-14, RadiusGuard} {
		p := r3.Vec{X: r}
		E := SinkField(p)
		s := SinkScale(r)
		assert.InDelta(t, 0.8, s, 1e-12)
		for _, v := range E {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "r=%g E=%v", r, E)
		}
		assertEigen(t, E, DefaultDirection, 1)
		assertEigen(t, E, r3.Vec{Y: 1}, s)
		assertEigen(t, E, r3.Vec{Z: 1}, s)
	}
	// radial direction is left alone, orthogonal plane compressed
	p := r3.Vec{X: 0.1, Y: 0.2, Z: -0.2}
	r := r3.Norm(p)
	E := SinkField(p)
	assert.InDelta(t, 2*r+0.8, SinkScale(r), 1e-15)
	assertEigen(t, E, p, 1)
	v2, v3 := geometry3D.OrthoBasis(p)
	assertEigen(t, E, v2, SinkScale(r))
	assertEigen(t, E, v3, SinkScale(r))
	// clamped beyond r = 0.5
	assert.Equal(t, 1.8, SinkScale(3))
}

func TestSwirlField(t *testing.T) {
	p := r3.Vec{Y: 0.1}
	E := SwirlField(p)
	assert.InDelta(t, 1.5, SwirlScale(0.1), 1e-15)
	assertEigen(t, E, p, 1.5)
	assertEigen(t, E, r3.Vec{X: 1}, 1)
	assertEigen(t, E, r3.Vec{Z: 1}, 1)
	assert.Equal(t, 2., SwirlScale(10))

	E = SwirlField(r3.Vec{})
	assertEigen(t, E, DefaultDirection, 1)
	assert.True(t, E.IsSymmetric(0))
}

func TestSineField(t *testing.T) {
	tan := SineTangent(0)
	assert.InDelta(t, 1/math.Sqrt(1+10.8*10.8), tan.X, 1e-15)
	E := SineField(r3.Vec{X: 0, Y: 5, Z: -1})
	assertEigen(t, E, tan, 1/2.1)
	assertEigen(t, E, r3.Vec{Z: 1}, 1)
	// at a crest the tangent is the X axis
	x := math.Pi / (2 * SinePeriod)
	E = SineField(r3.Vec{X: x})
	assertEigen(t, E, r3.Vec{X: 1}, 1/SineScale)
	assertEigen(t, E, r3.Vec{Y: 1}, 1)
}

func TestIsotropicFields(t *testing.T) {
	assert.InDelta(t, 8.2, CenterScale(0), 1e-12)
	assert.InDelta(t, 0.7, CenterScale(1e12), 1e-11)
	prev := CenterScale(0)
	for r := 0.1; r < 10; r += 0.1 {
		s := CenterScale(r)
		assert.Less(t, s, prev)
		prev = s
	}
	assert.Equal(t, geometry3D.Isotropic(CenterScale(5)), CenterField(r3.Vec{Z: 5}))
	assert.InDelta(t, 5.2, PerimeterField(r3.Vec{X: 3, Y: 4})[4], 1e-15)
	assert.Equal(t, geometry3D.Isotropic(1), RightField(r3.Vec{X: -3}))
	assert.Equal(t, geometry3D.Isotropic(3), RightField(r3.Vec{X: 2}))

	assert.Equal(t, geometry3D.Isotropic(0.5), StrainField(r3.Vec{}, ConstantStrain(4)))
	assert.Equal(t, geometry3D.Isotropic(StrainScaleMax), StrainField(r3.Vec{}, ConstantStrain(0)))
	assert.Equal(t, StrainScaleMax, StrainScale(1e-12))
}

func TestDeformTensorSinkAtOrigin(t *testing.T) {
	cfg := mustConfig(t, FieldSink, FieldNone, 1, DomainFrame{Range: r3.Vec{X: 1, Y: 1, Z: 1}})
	E := cfg.DeformTensor(r3.Vec{})
	assert.Equal(t, geometry3D.Diagonal(1, 0.8, 0.8), E)
	vals, _, err := E.Eigen()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, vals[0], 1e-15)
	assert.InDelta(t, 0.8, vals[1], 1e-15)
	assert.InDelta(t, 1, vals[2], 1e-15)
}

func TestDeformTensorBlendAndFrame(t *testing.T) {
	frame := DomainFrame{Center: r3.Vec{X: 10, Y: 10, Z: 10}, Range: r3.Vec{X: 4, Y: 4, Z: 4}}
	cfg := mustConfig(t, FieldPerimeter, FieldCenter, 0.25, frame)
	p := r3.Vec{X: 14, Y: 10, Z: 10} // normalizes to (1,0,0)
	E := cfg.DeformTensor(p)
	want := 0.25*(1+PerimeterOffset) + 0.75*CenterScale(1)
	assert.True(t, E.EqualWithin(geometry3D.Isotropic(want), 1e-14), "%v", E)

	// the transform applies the sampled tensor to the point itself
	q := cfg.TransformPoint(p)
	assert.True(t, geometry3D.EqualWithin(q, r3.Scale(want, p), 1e-12))
}

func TestStretchYSecondary(t *testing.T) {
	// stretchY in the secondary slot must not pick up the sink field
	cfg := mustConfig(t, FieldNone, FieldStretchY, 0, UnitFrame)
	for _, p := range []r3.Vec{{}, {X: 0.3, Y: 0.1}, {Z: 2}} {
		assert.Equal(t, geometry3D.Diagonal(1, 3, 1), cfg.DeformTensor(p))
	}
}

func TestStrainUsesPhysicalPoint(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []r3.Vec
	)
	sampler := func(p r3.Vec) float64 {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
		return 0.25
	}
	frame := DomainFrame{Center: r3.Vec{X: 100}, Range: r3.Vec{X: 50, Y: 50, Z: 50}}
	cfg := mustConfig(t, FieldStrain, FieldNone, 1, frame, WithStrain(sampler))
	p := r3.Vec{X: 150, Y: 7, Z: -3}
	E := cfg.DeformTensor(p)
	assert.Equal(t, geometry3D.Isotropic(2), E)
	require.Len(t, seen, 1)
	assert.Equal(t, p, seen[0])
}

type listLookup []r3.Vec

func (l listLookup) Coordinate(h int) r3.Vec { return l[h] }

func TestEntitySamplers(t *testing.T) {
	verts := listLookup{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 0, Y: 2, Z: 0},
		{X: 0, Y: 0, Z: 2},
	}
	tet := [4]int{0, 1, 2, 3}
	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, TetBarycenter(verts, tet))
	assert.Equal(t, r3.Vec{X: 1, Y: 1}, EdgeMidpoint(verts, [2]int{1, 2}))

	cfg := mustConfig(t, FieldSink, FieldSwirl, 0.6, UnitFrame)
	assert.Equal(t, cfg.DeformTensor(r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}), cfg.TetTensor(verts, tet))
	assert.Equal(t, cfg.DeformTensor(r3.Vec{X: 1, Y: 1}), cfg.EdgeTensor(verts, [2]int{1, 2}))

	// a function adapter resolves the same way
	fn := CoordinateFunc(func(h int) r3.Vec { return verts[h] })
	assert.Equal(t, cfg.TetTensor(verts, tet), cfg.TetTensor(fn, tet))
}

func TestSampleParallel(t *testing.T) {
	var (
		verts listLookup
		tets  [][4]int
		edges [][2]int
	)
	for i := 0; i < 40; i++ {
		x := float64(i) * 0.05
		verts = append(verts, r3.Vec{X: x, Y: math.Sin(x), Z: 0.1 * x * x})
	}
	for i := 0; i+3 < len(verts); i++ {
		tets = append(tets, [4]int{i, i + 1, i + 2, i + 3})
		edges = append(edges, [2]int{i, i + 3})
	}
	cfg := mustConfig(t, FieldSine, FieldCenter, 0.7, NewDomainFrame(r3.Vec{}, r3.Vec{X: 2, Y: 1, Z: 1}))
	for _, NP := range []int{1, 3, 8, 64} {
		T := cfg.SampleTets(verts, tets, NP)
		require.Len(t, T, len(tets))
		for k := range tets {
			assert.Equal(t, cfg.TetTensor(verts, tets[k]), T[k])
		}
		TE := cfg.SampleEdges(verts, edges, NP)
		for k := range edges {
			assert.Equal(t, cfg.EdgeTensor(verts, edges[k]), TE[k])
		}
	}
	assert.Empty(t, cfg.SampleTets(verts, nil, 4))
}

type tetList struct {
	listLookup
	tets [][4]int
}

func (m tetList) VertexCount() int { return len(m.listLookup) }
func (m tetList) Tets() [][4]int   { return m.tets }

func TestVertexTensors(t *testing.T) {
	m := tetList{
		listLookup: listLookup{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
			{X: 1, Y: 1, Z: 1},
			{X: 5, Y: 5, Z: 5}, // not referenced by any tet
		},
		tets: [][4]int{{0, 1, 2, 3}, {1, 2, 3, 4}},
	}
	cfg := mustConfig(t, FieldSwirl, FieldRight, 0.5, UnitFrame)
	VT := cfg.VertexTensors(m, 2)
	require.Len(t, VT, 6)
	T0 := cfg.TetTensor(m, m.tets[0])
	T1 := cfg.TetTensor(m, m.tets[1])
	assert.True(t, VT[0].EqualWithin(T0, 1e-14))
	assert.True(t, VT[4].EqualWithin(T1, 1e-14))
	assert.True(t, VT[2].EqualWithin(geometry3D.Blend(T0, T1, 0.5), 1e-14))
	assert.Equal(t, cfg.DeformTensor(r3.Vec{X: 5, Y: 5, Z: 5}), VT[5])
}

func TestSummarize(t *testing.T) {
	T := []geometry3D.Tensor{
		geometry3D.Diagonal(1, 2, 4),
		geometry3D.Diagonal(1, 1, 1),
	}
	s := Summarize(T)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 0, s.Failed)
	assert.InDelta(t, 2.5, s.MaxEigen.Mean, 1e-12)
	assert.InDelta(t, 1, s.MinEigen.Min, 1e-12)
	assert.InDelta(t, 4, s.Anisotropy.Max, 1e-12)
	assert.InDelta(t, 8, s.Determinant.Max, 1e-12)

	one := Summarize(T[:1])
	assert.Equal(t, 0., one.Determinant.StdDev)
	assert.Equal(t, Summary{}, Summarize(nil))
}
