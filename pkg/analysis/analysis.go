// Package analysis computes statistics over sampled faces and over the
// displacement between two versions of the same samples.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/samples"
)

// FaceStats describes one sampled face
type FaceStats struct {
	ID       samples.FaceID
	Number   int
	Points   int
	Bounds   geometry.BoundingBox
	Centroid geometry.Vector3
}

// SpacingStats summarizes distances between consecutive samples of a face
type SpacingStats struct {
	Count int
	Min   float64
	Max   float64
	Avg   float64
}

// Result contains the statistics of a set of faces
type Result struct {
	Bounds     geometry.BoundingBox
	Dimensions geometry.Vector3
	FaceCount  int
	PointCount int
	Spacing    SpacingStats
	Faces      []FaceStats
}

// Analyze computes statistics over faces in their given order
func Analyze(faces []samples.FaceSample) *Result {
	result := &Result{
		Bounds:    geometry.NewBoundingBox(),
		FaceCount: len(faces),
		Faces:     make([]FaceStats, 0, len(faces)),
	}

	var spacing accumulator
	for _, face := range faces {
		stats := FaceStats{
			ID:     face.ID,
			Number: face.Number(),
			Points: len(face.Points),
			Bounds: geometry.BoundsOf(face.Points),
		}

		var sum geometry.Vector3
		for j, p := range face.Points {
			sum = sum.Add(p)
			result.Bounds.Extend(p)
			if j > 0 {
				spacing.add(face.Points[j-1].Distance(p))
			}
		}
		if len(face.Points) > 0 {
			stats.Centroid = sum.Mul(1 / float64(len(face.Points)))
		}

		result.PointCount += len(face.Points)
		result.Faces = append(result.Faces, stats)
	}

	result.Dimensions = result.Bounds.Size()
	result.Spacing = spacing.stats()
	return result
}

// Displacement summarizes how far the points of one face moved
type Displacement struct {
	Face    samples.FaceID
	Offsets SpacingStats
}

// CompareFaces measures point-by-point displacement between two versions of the
// same faces, matched by ID. Faces whose point counts differ are an error.
func CompareFaces(before, after []samples.FaceSample) ([]Displacement, error) {
	previous := make(map[samples.FaceID]samples.FaceSample, len(before))
	for _, face := range before {
		previous[face.ID] = face
	}

	var result []Displacement
	for _, face := range after {
		old, ok := previous[face.ID]
		if !ok {
			continue
		}
		if len(old.Points) != len(face.Points) {
			return nil, fmt.Errorf("face %d has %d points before and %d after", face.ID, len(old.Points), len(face.Points))
		}

		var acc accumulator
		for j, p := range face.Points {
			acc.add(old.Points[j].Distance(p))
		}
		result = append(result, Displacement{Face: face.ID, Offsets: acc.stats()})
	}
	return result, nil
}

// Moved returns the displacements with a non-zero maximum, largest first
func Moved(displacements []Displacement) []Displacement {
	var moved []Displacement
	for _, d := range displacements {
		if d.Offsets.Max > 0 {
			moved = append(moved, d)
		}
	}
	sort.SliceStable(moved, func(i, j int) bool {
		return moved[i].Offsets.Max > moved[j].Offsets.Max
	})
	return moved
}

type accumulator struct {
	count         int
	min, max, sum float64
}

func (a *accumulator) add(v float64) {
	if a.count == 0 {
		a.min, a.max = v, v
	}
	a.min = math.Min(a.min, v)
	a.max = math.Max(a.max, v)
	a.sum += v
	a.count++
}

func (a *accumulator) stats() SpacingStats {
	if a.count == 0 {
		return SpacingStats{}
	}
	return SpacingStats{Count: a.count, Min: a.min, Max: a.max, Avg: a.sum / float64(a.count)}
}

// FormatMeasurement formats a length in mm
func FormatMeasurement(value float64) string {
	return fmt.Sprintf("%.6f mm", value)
}
