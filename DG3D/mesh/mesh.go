package mesh

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// ElementType represents different element types
type ElementType int

const (
	Line ElementType = iota
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementType) String() string {
	return [...]string{"Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid"}[e]
}

// GetNumNodes returns the number of corner vertices for each element type
func (e ElementType) GetNumNodes() int {
	return [...]int{2, 3, 4, 4, 8, 6, 5}[e]
}

// Mesh is the read only vertex and element store the field samplers work
// against. Vertex handles are the 0-based indices into Vertices.
type Mesh struct {
	// Geometry
	Vertices [][]float64 // Vertex coordinates [nvertices][3]

	// Element data
	EtoV         [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []ElementType // Element type for each element
	ElementTags  []int         // Physical group/tag for each element

	// Unique tet edges, sorted vertex pairs, built by BuildEdges
	Edges [][2]int

	BoundaryTags map[int]string

	// Mesh statistics
	NumElements int
	NumVertices int
}

// NewMesh creates an empty mesh
func NewMesh() *Mesh {
	return &Mesh{
		BoundaryTags: make(map[int]string),
	}
}

// AddElement appends an element and keeps the statistics current
func (m *Mesh) AddElement(etype ElementType, verts []int, tag int) {
	m.EtoV = append(m.EtoV, verts)
	m.ElementTypes = append(m.ElementTypes, etype)
	m.ElementTags = append(m.ElementTags, tag)
	m.NumElements = len(m.EtoV)
}

// Coordinate resolves a vertex handle, it never modifies the mesh
func (m *Mesh) Coordinate(handle int) r3.Vec {
	v := m.Vertices[handle]
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// Tets returns the connectivity of the tetrahedral elements, other element
// types are skipped.
func (m *Mesh) Tets() (tets [][4]int) {
	for k, verts := range m.EtoV {
		if m.ElementTypes[k] != Tet {
			continue
		}
		tets = append(tets, [4]int{verts[0], verts[1], verts[2], verts[3]})
	}
	return
}

// GetElementEdges returns the local vertex pairs of each edge of a tet
func GetElementEdges(elemType ElementType, vertices []int) [][2]int {
	switch elemType {
	case Tet:
		return [][2]int{
			{vertices[0], vertices[1]},
			{vertices[0], vertices[2]},
			{vertices[0], vertices[3]},
			{vertices[1], vertices[2]},
			{vertices[1], vertices[3]},
			{vertices[2], vertices[3]},
		}
	default:
		return [][2]int{}
	}
}

// BuildEdges collects every unique tet edge once, as a sorted vertex pair,
// ordered by first then second vertex.
func (m *Mesh) BuildEdges() {
	var (
		seen = make(map[[2]int]struct{})
	)
	m.Edges = m.Edges[:0]
	for k, verts := range m.EtoV {
		for _, e := range GetElementEdges(m.ElementTypes[k], verts) {
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			if _, exists := seen[e]; exists {
				continue
			}
			seen[e] = struct{}{}
			m.Edges = append(m.Edges, e)
		}
	}
	sort.Slice(m.Edges, func(i, j int) bool {
		if m.Edges[i][0] != m.Edges[j][0] {
			return m.Edges[i][0] < m.Edges[j][0]
		}
		return m.Edges[i][1] < m.Edges[j][1]
	})
}

// Bounds returns the axis aligned bounding box of all vertices
func (m *Mesh) Bounds() (min, max r3.Vec) {
	if len(m.Vertices) == 0 {
		return
	}
	min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		min.X, max.X = math.Min(min.X, v[0]), math.Max(max.X, v[0])
		min.Y, max.Y = math.Min(min.Y, v[1]), math.Max(max.Y, v[1])
		min.Z, max.Z = math.Min(min.Z, v[2]), math.Max(max.Z, v[2])
	}
	return
}

// Validate checks that every element references existing vertices with the
// right vertex count for its type.
func (m *Mesh) Validate() error {
	for i, v := range m.Vertices {
		if len(v) != 3 {
			return fmt.Errorf("vertex %d has %d coordinates, expected 3", i, len(v))
		}
	}
	if len(m.ElementTypes) != len(m.EtoV) {
		return fmt.Errorf("%d element types for %d elements", len(m.ElementTypes), len(m.EtoV))
	}
	for k, verts := range m.EtoV {
		if n := m.ElementTypes[k].GetNumNodes(); len(verts) != n {
			return fmt.Errorf("element %d (%s) has %d vertices, expected %d",
				k, m.ElementTypes[k], len(verts), n)
		}
		for _, v := range verts {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("element %d references vertex %d, mesh has %d vertices",
					k, v, len(m.Vertices))
			}
		}
	}
	return nil
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)
	fmt.Fprintf(w, "  Edges: %d\n", len(m.Edges))

	// Count element types
	typeCounts := make(map[ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	types := make([]ElementType, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	fmt.Fprintf(w, "  Element types:\n")
	for _, t := range types {
		fmt.Fprintf(w, "    %s: %d\n", t, typeCounts[t])
	}
	min, max := m.Bounds()
	fmt.Fprintf(w, "  Bounds: [%g, %g] x [%g, %g] x [%g, %g]\n", min.X, max.X, min.Y, max.Y, min.Z, max.Z)
}

// Finalize sets the statistics and builds the edge list once a reader has
// filled the vertices and elements.
func (m *Mesh) Finalize() error {
	m.NumElements = len(m.EtoV)
	m.NumVertices = len(m.Vertices)
	if err := m.Validate(); err != nil {
		return err
	}
	m.BuildEdges()
	return nil
}
