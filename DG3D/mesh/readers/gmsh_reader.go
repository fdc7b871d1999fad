package readers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/anisometric/DG3D/mesh"
)

// gmshElementType22 maps the linear Gmsh element codes to our types
var gmshElementType22 = map[int]mesh.ElementType{
	1: mesh.Line,
	2: mesh.Triangle,
	3: mesh.Quad,
	4: mesh.Tet,
	5: mesh.Hex,
	6: mesh.Prism,
	7: mesh.Pyramid,
}

// ParseGmsh22 reads a Gmsh MSH version 2.2 ASCII file. Node ids may be
// arbitrary, they are mapped to 0-based handles in file order. The element
// tag is the physical group, the first of the element's tags.
func ParseGmsh22(r io.Reader) (*mesh.Mesh, error) {
	var (
		scanner  = bufio.NewScanner(r)
		msh      = mesh.NewMesh()
		nodeID   map[int]int
		sawNodes bool
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF in MeshFormat")
			}
			parts := strings.Fields(scanner.Text())
			if len(parts) < 2 || !strings.HasPrefix(parts[0], "2.") {
				return nil, fmt.Errorf("unsupported Gmsh format %q", scanner.Text())
			}
			if parts[1] != "0" {
				return nil, fmt.Errorf("binary Gmsh files are not supported")
			}
			if err := skipTo(scanner, "$EndMeshFormat"); err != nil {
				return nil, err
			}

		case "$PhysicalNames":
			if err := readPhysicalNames22(scanner, msh); err != nil {
				return nil, err
			}

		case "$Nodes":
			var err error
			if nodeID, err = readNodes22(scanner, msh); err != nil {
				return nil, err
			}
			sawNodes = true

		case "$Elements":
			if !sawNodes {
				return nil, fmt.Errorf("$Elements before $Nodes")
			}
			if err := readElements22(scanner, msh, nodeID); err != nil {
				return nil, err
			}

		default:
			// Skip data and any other sections
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				if err := skipTo(scanner, "$End"+line[1:]); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if err := msh.Finalize(); err != nil {
		return nil, err
	}
	return msh, nil
}

func skipTo(scanner *bufio.Scanner, endMarker string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return nil
		}
	}
	return fmt.Errorf("missing %s", endMarker)
}

func readCount(scanner *bufio.Scanner, section string) (n int, err error) {
	if !scanner.Scan() {
		return 0, fmt.Errorf("unexpected EOF in %s", section)
	}
	if n, err = strconv.Atoi(strings.TrimSpace(scanner.Text())); err != nil {
		return 0, fmt.Errorf("invalid %s count: %v", section, err)
	}
	return
}

func readPhysicalNames22(scanner *bufio.Scanner, msh *mesh.Mesh) error {
	n, err := readCount(scanner, "PhysicalNames")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in PhysicalNames")
		}
		// dim tag "name"
		parts := strings.SplitN(strings.TrimSpace(scanner.Text()), " ", 3)
		if len(parts) < 3 {
			return fmt.Errorf("invalid physical name line: %q", scanner.Text())
		}
		tag, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid physical tag: %v", err)
		}
		msh.BoundaryTags[tag] = strings.Trim(parts[2], "\"")
	}
	return skipTo(scanner, "$EndPhysicalNames")
}

func readNodes22(scanner *bufio.Scanner, msh *mesh.Mesh) (nodeID map[int]int, err error) {
	var numNodes int
	if numNodes, err = readCount(scanner, "Nodes"); err != nil {
		return
	}
	nodeID = make(map[int]int, numNodes)
	msh.Vertices = make([][]float64, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected EOF reading nodes")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("invalid node line: %q", scanner.Text())
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid node id: %v", err)
		}
		if _, dup := nodeID[id]; dup {
			return nil, fmt.Errorf("duplicate node id %d", id)
		}
		coords, err := parseCoords(fields[1:4])
		if err != nil {
			return nil, err
		}
		nodeID[id] = len(msh.Vertices)
		msh.Vertices = append(msh.Vertices, coords)
	}
	return nodeID, skipTo(scanner, "$EndNodes")
}

func readElements22(scanner *bufio.Scanner, msh *mesh.Mesh, nodeID map[int]int) error {
	numElements, err := readCount(scanner, "Elements")
	if err != nil {
		return err
	}
	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		// elm-number elm-type number-of-tags <tags> node-number-list
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return fmt.Errorf("invalid element line: %q", scanner.Text())
		}
		gmshType, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid element type %q: %v", fields[1], err)
		}
		numTags, err := parseCount(fields[2], "element tag count")
		if err != nil {
			return err
		}
		etype, ok := gmshElementType22[gmshType]
		if !ok {
			// points and higher order elements
			continue
		}
		numNodes := etype.GetNumNodes()
		if len(fields) < 3+numTags+numNodes {
			return fmt.Errorf("element type %v expects %d nodes: %q", etype, numNodes, scanner.Text())
		}
		var tag int
		if numTags > 0 {
			if tag, err = strconv.Atoi(fields[3]); err != nil {
				return fmt.Errorf("invalid physical tag %q: %v", fields[3], err)
			}
		}
		nodes := make([]int, numNodes)
		for j, f := range fields[3+numTags : 3+numTags+numNodes] {
			id, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("invalid node index %q", f)
			}
			idx, ok := nodeID[id]
			if !ok {
				return fmt.Errorf("element references unknown node %d", id)
			}
			nodes[j] = idx
		}
		msh.AddElement(etype, nodes, tag)
	}
	return skipTo(scanner, "$EndElements")
}
