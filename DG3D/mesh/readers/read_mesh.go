package readers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/anisometric/DG3D/mesh"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*mesh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var parse func(r io.Reader) (*mesh.Mesh, error)
	switch ext {
	case ".neu":
		parse = ParseGambitNeutral
	case ".msh":
		parse = ParseGmsh22
	case ".su2":
		parse = ParseSU2
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	msh, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return msh, nil
}
