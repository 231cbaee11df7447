// Package cloud derives the displayed point cloud from the sample store and swaps it
// into a renderer.
package cloud

import (
	"errors"
	"fmt"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/samples"
)

// ErrInvalidPoint is returned when a sample has a NaN or infinite coordinate
var ErrInvalidPoint = errors.New("invalid sample point")

// FaceGroup is the label tree entry of one face
type FaceGroup struct {
	Face   samples.FaceID
	Title  string
	Shape  brep.Shape
	Solid  brep.Shape
	Start  int // offset of the face's first point in Cloud.Points
	Points []string
}

// Cloud is an immutable, fully built point cloud
type Cloud struct {
	points []geometry.Vector3
	owners []int // index into groups, per point
	groups []FaceGroup
	bounds geometry.BoundingBox
}

// Build creates a cloud from faces, in order. It fails without side effects when a
// point is not finite.
func Build(faces []samples.FaceSample) (*Cloud, error) {
	total := 0
	for _, face := range faces {
		total += len(face.Points)
	}

	c := &Cloud{
		points: make([]geometry.Vector3, 0, total),
		owners: make([]int, 0, total),
		groups: make([]FaceGroup, 0, len(faces)),
		bounds: geometry.NewBoundingBox(),
	}

	for _, face := range faces {
		group := FaceGroup{
			Face:   face.ID,
			Title:  face.Title(),
			Shape:  face.Shape,
			Solid:  face.Solid,
			Start:  len(c.points),
			Points: make([]string, 0, len(face.Points)),
		}
		for j, p := range face.Points {
			if !p.IsFinite() {
				return nil, fmt.Errorf("%w: face %d point %d is %v", ErrInvalidPoint, face.ID, j, p)
			}
			c.points = append(c.points, p)
			c.owners = append(c.owners, len(c.groups))
			c.bounds.Extend(p)
			group.Points = append(group.Points, samples.PointLabel(j, p))
		}
		c.groups = append(c.groups, group)
	}

	return c, nil
}

// Len returns the number of points
func (c *Cloud) Len() int {
	return len(c.points)
}

// Points returns a copy of all points in build order
func (c *Cloud) Points() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), c.points...)
}

// Point returns the i-th point
func (c *Cloud) Point(i int) geometry.Vector3 {
	return c.points[i]
}

// Owner returns the face group owning the i-th point
func (c *Cloud) Owner(i int) FaceGroup {
	return c.groups[c.owners[i]]
}

// Groups returns the label tree, one group per face
func (c *Cloud) Groups() []FaceGroup {
	return append([]FaceGroup(nil), c.groups...)
}

// Bounds returns the bounding box of the cloud
func (c *Cloud) Bounds() geometry.BoundingBox {
	return c.bounds
}
