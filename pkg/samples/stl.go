package samples

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/geometry"
)

// ParseSTLFile imports an STL file. Every facet becomes one boundary face sampled at
// its three vertices; facet i gets sequence number 2i+1.
// ASCII and binary files are detected automatically.
func ParseSTLFile(filename string) (*Import, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseSTL(file)
}

// ParseSTL imports STL data from r
func ParseSTL(r io.Reader) (*Import, error) {
	br := bufio.NewReader(r)

	header, err := br.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	// "solid" also starts some binary headers, so fall back to binary when the
	// ASCII reading finds no facets
	if string(header) == "solid" {
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		imp, err := parseASCIISTL(bytes.NewReader(data))
		if err == nil && len(imp.Faces) > 0 {
			return imp, nil
		}
		return parseBinarySTL(bytes.NewReader(data))
	}

	return parseBinarySTL(br)
}

func newSTLImport(name string) *Import {
	return &Import{Name: name}
}

func addFacet(imp *Import, vertices [3]geometry.Vector3) {
	n := len(imp.Faces)
	seq := SequenceNumberFor(n)
	solidID := imp.Name
	if solidID == "" {
		solidID = "stl"
	}
	imp.addFace(FaceSample{
		SequenceNumber: seq,
		Shape:          brep.Face(fmt.Sprintf("facet-%d", n)),
		Solid:          brep.Solid(solidID),
		Points:         vertices[:],
	}, brep.Entity{Label: fmt.Sprintf("Facet #%d", FaceNumber(seq))})
}

func parseASCIISTL(reader io.Reader) (*Import, error) {
	scanner := bufio.NewScanner(reader)
	imp := newSTLImport("")

	var vertices []geometry.Vector3

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				imp.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			p, err := parsePoint(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("facet %d: %w", len(imp.Faces), err)
			}
			vertices = append(vertices, p)

		case "endfacet":
			if len(vertices) == 3 {
				addFacet(imp, [3]geometry.Vector3{vertices[0], vertices[1], vertices[2]})
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return imp, nil
}

func parseBinarySTL(reader io.Reader) (*Import, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	imp := newSTLImport(strings.TrimSpace(string(bytes.TrimRight(header, "\x00"))))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal, three vertices, attribute byte count
	var record struct {
		Normal   [3]float32
		Vertices [3][3]float32
		Attr     uint16
	}
	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		var vertices [3]geometry.Vector3
		for k, v := range record.Vertices {
			vertices[k] = geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
		}
		addFacet(imp, vertices)
	}

	return imp, nil
}

