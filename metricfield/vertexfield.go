package metricfield

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/anisometric/geometry3D"
)

// TetMesh is the read only view of a tetrahedral mesh the vertex field needs
type TetMesh interface {
	CoordinateLookup
	VertexCount() int
	Tets() [][4]int
}

// VertexTensors gives each vertex the mean of the tensors sampled at the
// barycenters of its incident tets. The average is formed as a sparse
// vertex-to-tet incidence product with the per tet tensor components.
// Vertices without an incident tet are sampled at their own coordinate.
func (c Configuration) VertexTensors(m TetMesh, NP int) (VT []geometry3D.Tensor) {
	var (
		Nv    = m.VertexCount()
		tets  = m.Tets()
		K     = len(tets)
		count = make([]float64, Nv)
	)
	VT = make([]geometry3D.Tensor, Nv)
	if K != 0 {
		TT := c.SampleTets(m, tets, NP)
		elem := mat.NewDense(K, 9, nil)
		for k := range TT {
			elem.SetRow(k, TT[k][:])
		}
		IncTmp := sparse.NewDOK(Nv, K)
		for k, tet := range tets {
			for _, v := range tet {
				IncTmp.Set(v, k, IncTmp.At(v, k)+1)
				count[v]++
			}
		}
		Sum := sparse.NewCSR(Nv, 9, nil, nil, nil)
		Sum.Mul(IncTmp.ToCSR(), elem)
		for v := 0; v < Nv; v++ {
			if count[v] == 0 {
				continue
			}
			for j := 0; j < 9; j++ {
				VT[v][j] = Sum.At(v, j) / count[v]
			}
		}
	}
	parallelRange(Nv, NP, func(vMin, vMax int) {
		for v := vMin; v < vMax; v++ {
			if count[v] == 0 {
				VT[v] = c.DeformTensor(m.Coordinate(v))
			}
		}
	})
	return
}
