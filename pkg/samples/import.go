package samples

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/godefects/pkg/brep"
)

// Import is what loading a model file produces: the ordered shape handles, the
// parallel entity list and the sampled faces.
//
// Shapes[i] and Entities[i] describe the same face, and a FaceSample with ID i
// carries that face's points.
type Import struct {
	Name     string
	Shapes   []brep.Shape
	Entities []brep.Entity
	Faces    []FaceSample
}

// Validate checks that the lists are parallel and face IDs point into them
func (imp *Import) Validate() error {
	if len(imp.Shapes) != len(imp.Entities) {
		return fmt.Errorf("import has %d shapes but %d entities", len(imp.Shapes), len(imp.Entities))
	}
	seen := make(map[FaceID]bool, len(imp.Faces))
	for _, face := range imp.Faces {
		if face.ID < 0 || int(face.ID) >= len(imp.Shapes) {
			return fmt.Errorf("face id %d out of range [0, %d)", face.ID, len(imp.Shapes))
		}
		if seen[face.ID] {
			return fmt.Errorf("duplicate face id %d", face.ID)
		}
		seen[face.ID] = true
		if !brep.IsPartner(face.Shape, imp.Shapes[face.ID]) {
			return fmt.Errorf("face %d shape %s does not match shape list entry %s", face.ID, face.Shape, imp.Shapes[face.ID])
		}
	}
	return nil
}

// withFaces returns a copy of the import whose faces are replaced by faces
func (imp *Import) withFaces(faces []FaceSample) *Import {
	out := *imp
	out.Faces = faces
	return &out
}

// addFace appends a face to all three lists, keeping them parallel
func (imp *Import) addFace(face FaceSample, entity brep.Entity) {
	face.ID = FaceID(len(imp.Shapes))
	imp.Shapes = append(imp.Shapes, face.Shape)
	imp.Entities = append(imp.Entities, entity)
	imp.Faces = append(imp.Faces, face)
}

// faceAt returns the sampled face of shape id. A shape without a sample yields
// an empty face numbered by its position.
func (imp *Import) faceAt(id FaceID) FaceSample {
	for _, face := range imp.Faces {
		if face.ID == id {
			return face
		}
	}
	return FaceSample{ID: id, SequenceNumber: SequenceNumberFor(int(id)), Shape: imp.Shapes[id]}
}

// MergeFaces returns a copy of the import where every face with a counterpart
// in faces, matched by ID, takes that version. Other faces are kept, so faces
// a store dropped for having no points survive.
func (imp *Import) MergeFaces(faces []FaceSample) *Import {
	updated := make(map[FaceID]FaceSample, len(faces))
	for _, face := range faces {
		updated[face.ID] = face
	}

	merged := make([]FaceSample, 0, len(imp.Faces))
	for _, face := range imp.Faces {
		if u, ok := updated[face.ID]; ok {
			face = u
		}
		merged = append(merged, face)
	}
	return imp.withFaces(merged)
}

// ParseFile loads a model file, choosing the format from its extension
func ParseFile(filename string) (*Import, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pcs":
		return ParsePCSFile(filename)
	case ".stl":
		return ParseSTLFile(filename)
	case ".json":
		return LoadSnapshotFile(filename)
	case ".scad":
		return ParseSCADFile(filename)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .pcs, .stl, .scad or .json)", ext)
	}
}
