package readers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/anisometric/DG3D/mesh"
)

// su2ElementTypeMap maps SU2/VTK element type identifiers to our ElementType
var su2ElementTypeMap = map[int]mesh.ElementType{
	3:  mesh.Line,     // VTK_LINE
	5:  mesh.Triangle, // VTK_TRIANGLE
	9:  mesh.Quad,     // VTK_QUAD
	10: mesh.Tet,      // VTK_TETRA
	12: mesh.Hex,      // VTK_HEXAHEDRON
	13: mesh.Prism,    // VTK_WEDGE
	14: mesh.Pyramid,  // VTK_PYRAMID
}

// ParseSU2 reads an SU2 native format mesh. Node and element ids are
// implicit, 0-based, in file order. Marker elements are tagged with the
// 1-based index of their MARKER_TAG, interior elements carry tag 0.
func ParseSU2(r io.Reader) (*mesh.Mesh, error) {
	var (
		msh                = mesh.NewMesh()
		scanner            = bufio.NewScanner(r)
		ndime              int
		hasNDIME, hasNPOIN bool
	)

	nextLine := func() (string, bool) {
		for scanner.Scan() {
			if line := stripSU2Comment(scanner.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "NDIME":
			hasNDIME = true
			ndime, _ = strconv.Atoi(value)
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%s", value)
			}

		case "NPOIN":
			if !hasNDIME {
				return nil, fmt.Errorf("NPOIN= before NDIME=")
			}
			hasNPOIN = true
			var npoin int
			if _, err := fmt.Sscan(value, &npoin); err != nil {
				return nil, fmt.Errorf("invalid NPOIN: %v", err)
			}
			msh.Vertices = make([][]float64, npoin)
			for i := 0; i < npoin; i++ {
				l, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(l)
				if len(fields) < ndime {
					return nil, fmt.Errorf("invalid node line: expected at least %d coordinates", ndime)
				}
				// Always store 3D coordinates, a legacy trailing id is ignored
				coords, err := parseCoords(fields[:ndime])
				if err != nil {
					return nil, err
				}
				msh.Vertices[i] = coords
			}

		case "NELEM", "MARKER_ELEMS":
			tag := len(msh.BoundaryTags)
			nelem, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %v", key, err)
			}
			for i := 0; i < nelem; i++ {
				l, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				fields := strings.Fields(l)
				su2Type, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid element type: %v", err)
				}
				etype, ok := su2ElementTypeMap[su2Type]
				if !ok {
					return nil, fmt.Errorf("unknown element type: %d", su2Type)
				}
				numNodes := etype.GetNumNodes()
				if len(fields) < numNodes+1 {
					return nil, fmt.Errorf("element type %v expects %d nodes, got %d fields",
						etype, numNodes, len(fields)-1)
				}
				nodes, err := parseIndices(fields[1:1+numNodes], 0)
				if err != nil {
					return nil, err
				}
				msh.AddElement(etype, nodes, tag)
			}

		case "NMARK":
			// markers follow as MARKER_TAG/MARKER_ELEMS pairs

		case "MARKER_TAG":
			msh.BoundaryTags[len(msh.BoundaryTags)+1] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}
	if err := msh.Finalize(); err != nil {
		return nil, err
	}
	return msh, nil
}

// stripSU2Comment removes text after % and surrounding space
func stripSU2Comment(line string) string {
	if idx := strings.Index(line, "%"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}
