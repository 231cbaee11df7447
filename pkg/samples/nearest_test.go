package samples

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexNearestMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	random := func() geometry.Vector3 {
		return geometry.NewVector3(rng.Float64()*100, rng.Float64()*100, rng.Float64()*100)
	}

	var faces []FaceSample
	for f := 0; f < 5; f++ {
		face := FaceSample{ID: FaceID(f), SequenceNumber: SequenceNumberFor(f), Shape: brep.Face("F")}
		for j := 0; j < 40; j++ {
			face.Points = append(face.Points, random())
		}
		faces = append(faces, face)
	}
	store, err := NewStore(faces)
	require.NoError(t, err)
	idx := NewIndex(store)

	for q := 0; q < 50; q++ {
		query := random()

		best := math.MaxFloat64
		for _, face := range faces {
			for _, p := range face.Points {
				best = math.Min(best, p.Distance(query))
			}
		}

		hit, ok := idx.Nearest(query)
		require.True(t, ok)
		assert.InDelta(t, best, hit.Distance, 1e-9)
		assert.Equal(t, faces[hit.Face].Points[hit.Index], hit.Point)
	}
}

func TestIndexEmpty(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	_, ok := NewIndex(store).Nearest(geometry.Vector3{})
	assert.False(t, ok)
}
