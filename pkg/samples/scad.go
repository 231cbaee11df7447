package samples

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/godefects/pkg/openscad"
)

// ParseSCADFile renders an OpenSCAD model to a temporary STL and samples it
func ParseSCADFile(filename string) (*Import, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", filename, err)
	}
	renderer := openscad.NewRenderer(filepath.Dir(abs))

	tmp, err := os.CreateTemp("", "godefects-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := renderer.RenderToSTL(context.Background(), abs, tmp.Name()); err != nil {
		return nil, err
	}

	imp, err := ParseSTLFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	imp.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return imp, nil
}

// SourceFiles lists the files a model is loaded from: the file itself, plus
// everything an OpenSCAD model uses or includes
func SourceFiles(filename string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".scad") {
		return []string{filename}, nil
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	return openscad.NewRenderer(filepath.Dir(abs)).ResolveDependencies(abs)
}
