// Package samples holds the per-face point samples of a boundary-representation model
// and the formats they are imported from and saved to.
package samples

import (
	"fmt"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/geometry"
)

// FaceID identifies a face within one import. It is the face's position in the
// import's shape list and doubles as the registry entry ID for that face.
type FaceID int

// FaceSample is one sampled boundary face
type FaceSample struct {
	ID             FaceID
	SequenceNumber int
	Shape          brep.Shape
	Solid          brep.Shape // parent solid, null when the face is free-standing
	Points         []geometry.Vector3
}

// Number is the 1-based face number shown to users
func (f FaceSample) Number() int {
	return FaceNumber(f.SequenceNumber)
}

// Title is the label of the face's group in the point list
func (f FaceSample) Title() string {
	return FaceTitle(f.SequenceNumber)
}

func (f FaceSample) clone() FaceSample {
	f.Points = append([]geometry.Vector3(nil), f.Points...)
	return f
}

// Store maps faces to their ordered sample points.
// Faces keep their import order; only Load changes which faces exist.
type Store struct {
	faces []FaceSample
	index map[FaceID]int
}

// NewStore builds a store from imported faces
func NewStore(faces []FaceSample) (*Store, error) {
	s := &Store{}
	if err := s.Load(faces); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the whole store with faces. Faces without points are dropped.
// On error the store is left unchanged.
func (s *Store) Load(faces []FaceSample) error {
	loaded := make([]FaceSample, 0, len(faces))
	index := make(map[FaceID]int, len(faces))

	for _, face := range faces {
		if len(face.Points) == 0 {
			continue
		}
		if _, dup := index[face.ID]; dup {
			return fmt.Errorf("duplicate face id %d", face.ID)
		}
		index[face.ID] = len(loaded)
		loaded = append(loaded, face.clone())
	}

	s.faces = loaded
	s.index = index
	return nil
}

// Len returns the number of stored faces
func (s *Store) Len() int {
	return len(s.faces)
}

// PointCount returns the number of points across all faces
func (s *Store) PointCount() int {
	total := 0
	for _, face := range s.faces {
		total += len(face.Points)
	}
	return total
}

// Faces returns copies of all faces in store order
func (s *Store) Faces() []FaceSample {
	out := make([]FaceSample, len(s.faces))
	for i, face := range s.faces {
		out[i] = face.clone()
	}
	return out
}

// Face returns a copy of the face with the given ID
func (s *Store) Face(id FaceID) (FaceSample, bool) {
	i, ok := s.index[id]
	if !ok {
		return FaceSample{}, false
	}
	return s.faces[i].clone(), true
}

// Points returns a copy of the points of a face
func (s *Store) Points(id FaceID) ([]geometry.Vector3, bool) {
	face, ok := s.Face(id)
	if !ok {
		return nil, false
	}
	return face.Points, true
}

// Replace swaps the points of a face in place. The new list must have the same length,
// since point labels are positional.
func (s *Store) Replace(id FaceID, points []geometry.Vector3) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("face %d not in store", id)
	}
	if len(points) != len(s.faces[i].Points) {
		return fmt.Errorf("face %d has %d points, replacement has %d", id, len(s.faces[i].Points), len(points))
	}
	s.faces[i].Points = append([]geometry.Vector3(nil), points...)
	return nil
}

// Bounds returns the bounding box of every stored point
func (s *Store) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, face := range s.faces {
		for _, p := range face.Points {
			bbox.Extend(p)
		}
	}
	return bbox
}
