package metricfield

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/anisometric/geometry3D"
	"github.com/notargets/anisometric/utils"
)

// CoordinateLookup resolves a vertex handle to its coordinate. It is only
// read from, implementations must allow concurrent reads.
type CoordinateLookup interface {
	Coordinate(handle int) r3.Vec
}

// CoordinateFunc adapts a plain function to CoordinateLookup
type CoordinateFunc func(handle int) r3.Vec

func (f CoordinateFunc) Coordinate(handle int) r3.Vec { return f(handle) }

func TetBarycenter(lookup CoordinateLookup, tet [4]int) r3.Vec {
	return geometry3D.Centroid(
		lookup.Coordinate(tet[0]),
		lookup.Coordinate(tet[1]),
		lookup.Coordinate(tet[2]),
		lookup.Coordinate(tet[3]),
	)
}

func EdgeMidpoint(lookup CoordinateLookup, edge [2]int) r3.Vec {
	return geometry3D.Midpoint(lookup.Coordinate(edge[0]), lookup.Coordinate(edge[1]))
}

// TetTensor samples the field at the tetrahedron barycenter
func (c Configuration) TetTensor(lookup CoordinateLookup, tet [4]int) geometry3D.Tensor {
	return c.DeformTensor(TetBarycenter(lookup, tet))
}

// EdgeTensor samples the field at the edge midpoint
func (c Configuration) EdgeTensor(lookup CoordinateLookup, edge [2]int) geometry3D.Tensor {
	return c.DeformTensor(EdgeMidpoint(lookup, edge))
}

// SampleTets evaluates every tet over NP goroutines. Each goroutine owns a
// contiguous slice of the output so no locking is needed.
func (c Configuration) SampleTets(lookup CoordinateLookup, tets [][4]int, NP int) (T []geometry3D.Tensor) {
	T = make([]geometry3D.Tensor, len(tets))
	parallelRange(len(tets), NP, func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			T[k] = c.TetTensor(lookup, tets[k])
		}
	})
	return
}

func (c Configuration) SampleEdges(lookup CoordinateLookup, edges [][2]int, NP int) (T []geometry3D.Tensor) {
	T = make([]geometry3D.Tensor, len(edges))
	parallelRange(len(edges), NP, func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			T[k] = c.EdgeTensor(lookup, edges[k])
		}
	})
	return
}

func parallelRange(K, NP int, work func(kMin, kMax int)) {
	if K == 0 {
		return
	}
	var (
		pm = utils.NewPartitionMap(NP, K)
		wg = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			kMin, kMax := pm.GetBucketRange(np)
			work(kMin, kMax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}
