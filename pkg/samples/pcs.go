package samples

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/geometry"
)

// ParsePCSFile reads a point-cloud sample (.pcs) file
func ParsePCSFile(filename string) (*Import, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParsePCS(file)
}

// ParsePCS parses the line-oriented sample format:
//
//	model <name...>
//	solid <tshape-id> [label...]
//	face <sequence-number> <tshape-id> [forward|reversed] [label...]
//	child <label...>
//	point <x> <y> <z>
//	endface
//	endsolid
//
// A face belongs to the enclosing solid; faces after endsolid are free-standing.
// child lines attach sub-entities to the face's entity.
// Blank lines and lines starting with '#' are ignored.
func ParsePCS(reader io.Reader) (*Import, error) {
	scanner := bufio.NewScanner(reader)
	imp := &Import{}

	var (
		solid   brep.Shape
		current *FaceSample
		entity  brep.Entity
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "model":
			imp.Name = strings.Join(fields[1:], " ")

		case "solid":
			if current != nil {
				return nil, fmt.Errorf("line %d: solid inside face", lineNo)
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: solid needs a shape id", lineNo)
			}
			solid = brep.Solid(fields[1])

		case "endsolid":
			if current != nil {
				return nil, fmt.Errorf("line %d: endsolid inside face", lineNo)
			}
			if solid.IsNull() {
				return nil, fmt.Errorf("line %d: endsolid without solid", lineNo)
			}
			solid = brep.Shape{}

		case "face":
			if current != nil {
				return nil, fmt.Errorf("line %d: face inside face (missing endface)", lineNo)
			}
			face, faceLabel, err := parseFaceHeader(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			face.Solid = solid
			current = &face
			entity = brep.Entity{Label: faceLabel}

		case "child":
			if current == nil {
				return nil, fmt.Errorf("line %d: child outside face", lineNo)
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: child needs a label", lineNo)
			}
			entity.Children = append(entity.Children, brep.Entity{Label: strings.Join(fields[1:], " ")})

		case "point":
			if current == nil {
				return nil, fmt.Errorf("line %d: point outside face", lineNo)
			}
			p, err := parsePoint(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Points = append(current.Points, p)

		case "endface":
			if current == nil {
				return nil, fmt.Errorf("line %d: endface without face", lineNo)
			}
			imp.addFace(*current, entity)
			current = nil

		default:
			return nil, fmt.Errorf("line %d: unknown keyword %q", lineNo, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading sample file: %w", err)
	}
	if current != nil {
		return nil, fmt.Errorf("unterminated face %s at end of file", current.Shape.TShape)
	}

	return imp, nil
}

func parseFaceHeader(fields []string) (FaceSample, string, error) {
	if len(fields) < 3 {
		return FaceSample{}, "", fmt.Errorf("face needs a sequence number and a shape id")
	}
	seq, err := strconv.Atoi(fields[1])
	if err != nil || seq < 0 {
		return FaceSample{}, "", fmt.Errorf("invalid sequence number %q", fields[1])
	}

	shape := brep.Face(fields[2])
	rest := fields[3:]
	if len(rest) > 0 {
		if o, err := brep.ParseOrientation(rest[0]); err == nil {
			shape.Orientation = o
			rest = rest[1:]
		}
	}

	label := strings.Join(rest, " ")
	if label == "" {
		label = DefaultFaceLabel(seq)
	}
	return FaceSample{SequenceNumber: seq, Shape: shape}, label, nil
}

func parsePoint(fields []string) (geometry.Vector3, error) {
	if len(fields) != 3 {
		return geometry.Vector3{}, fmt.Errorf("point needs 3 coordinates, got %d", len(fields))
	}
	var coords [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q", f)
		}
		coords[i] = v
	}
	return geometry.NewVector3(coords[0], coords[1], coords[2]), nil
}

// WritePCS writes an import back in the .pcs format. Every shape is written,
// including faces without points. Only the first level of entity children fits
// the format.
func WritePCS(w io.Writer, imp *Import) error {
	if err := imp.Validate(); err != nil {
		return fmt.Errorf("invalid import: %w", err)
	}
	bw := bufio.NewWriter(w)

	if imp.Name != "" {
		fmt.Fprintf(bw, "model %s\n", imp.Name)
	}
	var solid brep.Shape
	for i := range imp.Shapes {
		face := imp.faceAt(FaceID(i))
		switch {
		case face.Solid.IsNull() && !solid.IsNull():
			fmt.Fprintln(bw, "endsolid")
		case !face.Solid.IsNull() && face.Solid.TShape != solid.TShape:
			fmt.Fprintf(bw, "solid %s\n", face.Solid.TShape)
		}
		solid = face.Solid

		entity := imp.Entities[i]
		fmt.Fprintf(bw, "face %d %s %s %s\n", face.SequenceNumber, face.Shape.TShape, face.Shape.Orientation, entity.Label)
		for _, child := range entity.Children {
			fmt.Fprintf(bw, "  child %s\n", child.Label)
		}
		for _, p := range face.Points {
			fmt.Fprintf(bw, "  point %s %s %s\n", formatCoord(p.X), formatCoord(p.Y), formatCoord(p.Z))
		}
		fmt.Fprintln(bw, "endface")
	}

	return bw.Flush()
}
