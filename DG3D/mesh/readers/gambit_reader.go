package readers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/anisometric/DG3D/mesh"
)

// gambitElementTypes maps Gambit neutral element codes to our types
var gambitElementTypes = map[int]mesh.ElementType{
	1: mesh.Line,
	2: mesh.Quad,
	3: mesh.Triangle,
	4: mesh.Hex,
	5: mesh.Prism,
	6: mesh.Tet,
	7: mesh.Pyramid,
}

// ParseGambitNeutral reads the nodal coordinates and element connectivity
// of a Gambit neutral file. Element groups tag their elements, boundary
// condition sets are only recorded by name.
func ParseGambitNeutral(r io.Reader) (*mesh.Mesh, error) {
	var (
		msh                         = mesh.NewMesh()
		scanner                     = bufio.NewScanner(r)
		numnp, nelem, ngrps, nbsets int
		haveHeader                  bool
	)

	// Read control info section
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM") {
			// Next line contains the actual values
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF after control header")
			}
			values := strings.Fields(scanner.Text())
			if len(values) < 4 {
				return nil, fmt.Errorf("invalid control line: %q", scanner.Text())
			}
			var err error
			for i, dst := range []*int{&numnp, &nelem, &ngrps, &nbsets} {
				if *dst, err = strconv.Atoi(values[i]); err != nil {
					return nil, fmt.Errorf("invalid control value %q: %v", values[i], err)
				}
			}
			haveHeader = true
			break
		}
	}
	if !haveHeader {
		return nil, fmt.Errorf("missing NUMNP/NELEM control header")
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.Contains(line, "NODAL COORDINATES"):
			msh.Vertices = make([][]float64, numnp)
			for i := 0; i < numnp; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 4 {
					return nil, fmt.Errorf("invalid node line: %q", scanner.Text())
				}
				// Gambit uses 1-based node IDs
				nodeID, err := strconv.Atoi(fields[0])
				if err != nil || nodeID < 1 || nodeID > numnp {
					return nil, fmt.Errorf("invalid node id %q", fields[0])
				}
				coords, err := parseCoords(fields[1:4])
				if err != nil {
					return nil, err
				}
				msh.Vertices[nodeID-1] = coords
			}

		case strings.Contains(line, "ELEMENTS/CELLS"):
			for i := 0; i < nelem; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 3 {
					return nil, fmt.Errorf("invalid element line: %q", scanner.Text())
				}
				gambitType, err := strconv.Atoi(fields[1])
				if err != nil {
					return nil, fmt.Errorf("invalid element type %q: %v", fields[1], err)
				}
				numNodes, err := parseCount(fields[2], "element node count")
				if err != nil {
					return nil, err
				}
				etype, ok := gambitElementTypes[gambitType]
				if !ok {
					return nil, fmt.Errorf("unknown Gambit element type %d", gambitType)
				}
				// connectivity may wrap onto continuation lines
				for len(fields) < 3+numNodes {
					if !scanner.Scan() {
						return nil, fmt.Errorf("unexpected EOF reading element connectivity")
					}
					fields = append(fields, strings.Fields(scanner.Text())...)
				}
				nodes, err := parseIndices(fields[3:3+numNodes], 1)
				if err != nil {
					return nil, err
				}
				msh.AddElement(etype, nodes, 0)
			}

		case strings.Contains(line, "ELEMENT GROUP"):
			if err := readGambitGroup(scanner, msh); err != nil {
				return nil, err
			}

		case strings.Contains(line, "BOUNDARY CONDITIONS"):
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF reading boundary conditions")
			}
			if parts := strings.Fields(scanner.Text()); len(parts) > 0 {
				msh.BoundaryTags[len(msh.BoundaryTags)] = parts[0]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if err := msh.Finalize(); err != nil {
		return nil, err
	}
	return msh, nil
}

func readGambitGroup(scanner *bufio.Scanner, msh *mesh.Mesh) error {
	var (
		groupID, numElems = -1, -1
		err               error
	)
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF reading element group")
	}
	parts := strings.Fields(scanner.Text())
	for i := 0; i < len(parts)-1; i++ {
		switch parts[i] {
		case "GROUP:":
			if groupID, err = parseCount(parts[i+1], "group id"); err != nil {
				return err
			}
		case "ELEMENTS:":
			if numElems, err = parseCount(parts[i+1], "group element count"); err != nil {
				return err
			}
		}
	}
	if groupID < 0 || numElems < 0 {
		return fmt.Errorf("invalid element group header: %q", scanner.Text())
	}
	// entity name and the solver flags line
	for i := 0; i < 2; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading element group %d", groupID)
		}
	}
	for read := 0; read < numElems; {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading element group %d", groupID)
		}
		for _, field := range strings.Fields(scanner.Text()) {
			elemID, err := strconv.Atoi(field)
			if err != nil || elemID < 1 || elemID > len(msh.EtoV) {
				return fmt.Errorf("group %d: invalid element id %q", groupID, field)
			}
			msh.ElementTags[elemID-1] = groupID
			read++
		}
	}
	return nil
}

// parseCount reads a non negative count or id
func parseCount(field, what string) (n int, err error) {
	if n, err = strconv.Atoi(field); err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", what, field, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %d", what, n)
	}
	return
}

func parseCoords(fields []string) (coords []float64, err error) {
	coords = make([]float64, 3)
	for j, f := range fields {
		if coords[j], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %v", f, err)
		}
	}
	return
}

// parseIndices converts vertex ids to 0-based handles
func parseIndices(fields []string, base int) (idx []int, err error) {
	idx = make([]int, len(fields))
	for j, f := range fields {
		if idx[j], err = strconv.Atoi(f); err != nil {
			return nil, fmt.Errorf("invalid node index %q: %v", f, err)
		}
		idx[j] -= base
	}
	return
}
