package samples

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/geometry"
)

// SnapshotVersion is written into every snapshot
const SnapshotVersion = "1.0"

// SnapshotData is the JSON layout of a saved import
type SnapshotData struct {
	Version string     `json:"version"`
	Name    string     `json:"name,omitempty"`
	Faces   []FaceData `json:"faces"`
}

// FaceData is one saved face
type FaceData struct {
	SequenceNumber int           `json:"sequenceNumber"`
	Label          string        `json:"label"`
	Children       []EntityData  `json:"children,omitempty"`
	Shape          ShapeData     `json:"shape"`
	Solid          *ShapeData    `json:"solid,omitempty"`
	Points         []Vector3Data `json:"points"`
}

// EntityData is a saved sub-entity of a face
type EntityData struct {
	Label    string       `json:"label"`
	Children []EntityData `json:"children,omitempty"`
}

// ShapeData is a saved shape handle
type ShapeData struct {
	TShape      string `json:"tshape"`
	Location    string `json:"location,omitempty"`
	Orientation string `json:"orientation,omitempty"`
}

// Vector3Data represents a 3D point for JSON serialization
type Vector3Data struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SnapshotPath returns the default snapshot file next to a source file
func SnapshotPath(sourceFile string) string {
	return sourceFile + ".defects.json"
}

// SaveSnapshot writes imp as JSON. Shapes without sampled points are saved with an
// empty point list so the face numbering survives a round trip.
func SaveSnapshot(w io.Writer, imp *Import) error {
	if err := imp.Validate(); err != nil {
		return fmt.Errorf("invalid import: %w", err)
	}

	data := SnapshotData{
		Version: SnapshotVersion,
		Name:    imp.Name,
		Faces:   make([]FaceData, 0, len(imp.Shapes)),
	}
	for i, shape := range imp.Shapes {
		face := imp.faceAt(FaceID(i))
		fd := FaceData{
			SequenceNumber: face.SequenceNumber,
			Label:          imp.Entities[i].Label,
			Children:       entityData(imp.Entities[i].Children),
			Shape:          shapeData(shape),
			Points:         make([]Vector3Data, 0, len(face.Points)),
		}
		if !face.Solid.IsNull() {
			solid := shapeData(face.Solid)
			fd.Solid = &solid
		}
		for _, p := range face.Points {
			fd.Points = append(fd.Points, Vector3Data{X: p.X, Y: p.Y, Z: p.Z})
		}
		data.Faces = append(data.Faces, fd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// SaveSnapshotFile writes a snapshot to filename
func SaveSnapshotFile(filename string, imp *Import) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := SaveSnapshot(file, imp); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadSnapshot reads a snapshot written by SaveSnapshot
func LoadSnapshot(r io.Reader) (*Import, error) {
	var data SnapshotData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if data.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", data.Version)
	}

	imp := &Import{Name: data.Name}
	for i, fd := range data.Faces {
		shape, err := fd.Shape.shape(brep.KindFace)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		face := FaceSample{SequenceNumber: fd.SequenceNumber, Shape: shape}
		if fd.Solid != nil {
			if face.Solid, err = fd.Solid.shape(brep.KindSolid); err != nil {
				return nil, fmt.Errorf("face %d solid: %w", i, err)
			}
		}
		for _, p := range fd.Points {
			face.Points = append(face.Points, geometry.NewVector3(p.X, p.Y, p.Z))
		}
		imp.addFace(face, brep.Entity{Label: fd.Label, Children: entities(fd.Children)})
	}

	return imp, nil
}

// LoadSnapshotFile reads a snapshot from filename
func LoadSnapshotFile(filename string) (*Import, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadSnapshot(file)
}

func entityData(children []brep.Entity) []EntityData {
	if len(children) == 0 {
		return nil
	}
	out := make([]EntityData, len(children))
	for i, c := range children {
		out[i] = EntityData{Label: c.Label, Children: entityData(c.Children)}
	}
	return out
}

func entities(children []EntityData) []brep.Entity {
	if len(children) == 0 {
		return nil
	}
	out := make([]brep.Entity, len(children))
	for i, c := range children {
		out[i] = brep.Entity{Label: c.Label, Children: entities(c.Children)}
	}
	return out
}

func shapeData(s brep.Shape) ShapeData {
	return ShapeData{TShape: s.TShape, Location: s.Location, Orientation: s.Orientation.String()}
}

func (d ShapeData) shape(kind brep.Kind) (brep.Shape, error) {
	if d.TShape == "" {
		return brep.Shape{}, fmt.Errorf("missing tshape")
	}
	s := brep.Shape{Kind: kind, TShape: d.TShape, Location: d.Location}
	if d.Orientation != "" {
		o, err := brep.ParseOrientation(d.Orientation)
		if err != nil {
			return brep.Shape{}, err
		}
		s.Orientation = o
	}
	return s, nil
}
