package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/samples"
)

func testFaces() []samples.FaceSample {
	return []samples.FaceSample{
		{ID: 0, SequenceNumber: 1, Shape: brep.Face("A"), Points: []geometry.Vector3{{}, {X: 3}, {X: 3, Y: 4}}},
		{ID: 1, SequenceNumber: 3, Shape: brep.Face("B"), Points: []geometry.Vector3{{Z: 2}}},
	}
}

func TestAnalyze(t *testing.T) {
	result := Analyze(testFaces())

	if result.FaceCount != 2 || result.PointCount != 4 {
		t.Errorf("expected 2 faces and 4 points, got %d and %d", result.FaceCount, result.PointCount)
	}

	expectedDims := geometry.NewVector3(3, 4, 2)
	if result.Dimensions != expectedDims {
		t.Errorf("expected dimensions %v, got %v", expectedDims, result.Dimensions)
	}

	if result.Spacing.Count != 2 || result.Spacing.Min != 3 || result.Spacing.Max != 4 || result.Spacing.Avg != 3.5 {
		t.Errorf("unexpected spacing %+v", result.Spacing)
	}

	if result.Faces[1].Number != 2 {
		t.Errorf("expected face number 2, got %d", result.Faces[1].Number)
	}
	centroid := result.Faces[0].Centroid
	if math.Abs(centroid.X-2) > 1e-10 || math.Abs(centroid.Y-4.0/3) > 1e-10 {
		t.Errorf("unexpected centroid %v", centroid)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	result := Analyze(nil)

	if result.PointCount != 0 || result.Spacing.Count != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if result.Dimensions != (geometry.Vector3{}) {
		t.Errorf("expected zero dimensions, got %v", result.Dimensions)
	}
}

func TestCompareFaces(t *testing.T) {
	before := testFaces()
	after := testFaces()
	after[0].Points = []geometry.Vector3{{X: 1}, {X: 3, Y: 2}, {X: 3, Y: 4}}

	displacements, err := CompareFaces(before, after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(displacements) != 2 {
		t.Fatalf("expected 2 displacements, got %d", len(displacements))
	}

	first := displacements[0].Offsets
	if first.Min != 0 || first.Max != 2 || first.Avg != 1 {
		t.Errorf("unexpected offsets %+v", first)
	}

	moved := Moved(displacements)
	if len(moved) != 1 || moved[0].Face != 0 {
		t.Errorf("expected only face 0 to move, got %+v", moved)
	}
}

func TestCompareFacesLengthMismatch(t *testing.T) {
	after := testFaces()
	after[1].Points = append(after[1].Points, geometry.Vector3{})

	if _, err := CompareFaces(testFaces(), after); err == nil {
		t.Error("expected an error for a changed point count")
	}
}
