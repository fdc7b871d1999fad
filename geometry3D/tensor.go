package geometry3D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tensor is a 3x3 deformation tensor stored row major. It is a value type,
// copies are independent.
type Tensor [9]float64

func Identity() Tensor {
	return Diagonal(1, 1, 1)
}

func Diagonal(s1, s2, s3 float64) Tensor {
	return Tensor{
		s1, 0, 0,
		0, s2, 0,
		0, 0, s3,
	}
}

// Isotropic scales all directions by s
func Isotropic(s float64) Tensor {
	return Diagonal(s, s, s)
}

// FromEigen builds E = e1 v̂1v̂1ᵀ + e2 v̂2v̂2ᵀ + e3 v̂3v̂3ᵀ, the symmetric tensor
// whose eigenvectors are the normalized basis vectors and whose eigenvalues
// are e1, e2, e3. The basis must be orthogonal with no zero length member.
func FromEigen(v1, v2, v3 r3.Vec, e1, e2, e3 float64) (E Tensor) {
	var (
		basis = [3]r3.Vec{v1, v2, v3}
		eig   = [3]float64{e1, e2, e3}
	)
	for n := 0; n < 3; n++ {
		v := r3.Scale(1./r3.Norm(basis[n]), basis[n])
		c := [3]float64{v.X, v.Y, v.Z}
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				E[3*i+j] += eig[n] * c[i] * c[j]
			}
		}
	}
	// mirror so the result is exactly symmetric
	E[3], E[6], E[7] = E[1], E[2], E[5]
	return
}

// Blend returns w*E + (1-w)*Eb. Weights outside [0,1] extrapolate.
func Blend(E, Eb Tensor, w float64) (R Tensor) {
	for i := range R {
		R[i] = w*E[i] + (1-w)*Eb[i]
	}
	return
}

// Transform returns E·p
func Transform(p r3.Vec, E Tensor) r3.Vec {
	return r3.Vec{
		X: E[0]*p.X + E[1]*p.Y + E[2]*p.Z,
		Y: E[3]*p.X + E[4]*p.Y + E[5]*p.Z,
		Z: E[6]*p.X + E[7]*p.Y + E[8]*p.Z,
	}
}

// TransformTo writes E·p into out. out may point at the storage p was read
// from, the input is copied before any component of out is written.
func TransformTo(out *r3.Vec, p *r3.Vec, E Tensor) {
	in := *p
	out.X = E[0]*in.X + E[1]*in.Y + E[2]*in.Z
	out.Y = E[3]*in.X + E[4]*in.Y + E[5]*in.Z
	out.Z = E[6]*in.X + E[7]*in.Y + E[8]*in.Z
}

func (E Tensor) At(i, j int) float64 { return E[3*i+j] }

func (E Tensor) T() (R Tensor) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[3*j+i] = E[3*i+j]
		}
	}
	return
}

func (E Tensor) Det() float64 {
	return E[0]*(E[4]*E[8]-E[5]*E[7]) -
		E[1]*(E[3]*E[8]-E[5]*E[6]) +
		E[2]*(E[3]*E[7]-E[4]*E[6])
}

func (E Tensor) IsSymmetric(tol float64) bool {
	return math.Abs(E[1]-E[3]) <= tol &&
		math.Abs(E[2]-E[6]) <= tol &&
		math.Abs(E[5]-E[7]) <= tol
}

// IsFinite is false if any component is NaN or infinite
func (E Tensor) IsFinite() bool {
	for _, e := range E {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return false
		}
	}
	return true
}

func (E Tensor) EqualWithin(F Tensor, tol float64) bool {
	for i := range E {
		if math.Abs(E[i]-F[i]) > tol {
			return false
		}
	}
	return true
}

// Dense returns a gonum copy of the tensor
func (E Tensor) Dense() *mat.Dense {
	data := make([]float64, 9)
	copy(data, E[:])
	return mat.NewDense(3, 3, data)
}

// Sym returns the symmetric part of the tensor as a gonum SymDense
func (E Tensor) Sym() *mat.SymDense {
	S := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			S.SetSym(i, j, 0.5*(E[3*i+j]+E[3*j+i]))
		}
	}
	return S
}

// Eigen decomposes the symmetric part of the tensor. Values are ascending,
// Vectors[i] is the unit eigenvector for Values[i].
func (E Tensor) Eigen() (Values [3]float64, Vectors [3]r3.Vec, err error) {
	var (
		eig mat.EigenSym
		VV  = mat.NewDense(3, 3, nil)
	)
	if ok := eig.Factorize(E.Sym(), true); !ok {
		err = fmt.Errorf("eigen decomposition failed for tensor %v", E)
		return
	}
	vals := eig.Values(nil)
	eig.VectorsTo(VV)
	for i := 0; i < 3; i++ {
		Values[i] = vals[i]
		Vectors[i] = r3.Vec{X: VV.At(0, i), Y: VV.At(1, i), Z: VV.At(2, i)}
	}
	return
}

func (E Tensor) String() string {
	return fmt.Sprintf("[%8.5f %8.5f %8.5f; %8.5f %8.5f %8.5f; %8.5f %8.5f %8.5f]",
		E[0], E[1], E[2], E[3], E[4], E[5], E[6], E[7], E[8])
}
