package cloud

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	calls     []string
	displayed map[Handle]*Cloud
	next      Handle
	repaints  int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{displayed: make(map[Handle]*Cloud)}
}

func (r *recordingRenderer) DisplayCloud(c *Cloud) Handle {
	r.next++
	r.displayed[r.next] = c
	r.calls = append(r.calls, "display")
	return r.next
}

func (r *recordingRenderer) EraseCloud(h Handle) {
	delete(r.displayed, h)
	r.calls = append(r.calls, "erase")
}

func (r *recordingRenderer) Repaint() {
	r.repaints++
	r.calls = append(r.calls, "repaint")
}

type staticFaces []samples.FaceSample

func (s staticFaces) Faces() []samples.FaceSample { return s }

func faces() staticFaces {
	return staticFaces{
		{ID: 0, SequenceNumber: 1, Shape: brep.Face("A"), Points: []geometry.Vector3{{X: 1}, {X: 2}}},
		{ID: 2, SequenceNumber: 5, Shape: brep.Face("C"), Solid: brep.Solid("S"), Points: []geometry.Vector3{{Z: -1}}},
	}
}

func TestBuildLabelsAndOwners(t *testing.T) {
	c, err := Build(faces())
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []geometry.Vector3{{X: 1}, {X: 2}, {Z: -1}}, c.Points())

	groups := c.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "Boundary Face #1 Points", groups[0].Title)
	assert.Equal(t, []string{"Point 0 (1 0 0)", "Point 1 (2 0 0)"}, groups[0].Points)
	assert.Equal(t, "Boundary Face #3 Points", groups[1].Title)
	assert.Equal(t, 2, groups[1].Start)

	assert.Equal(t, samples.FaceID(2), c.Owner(2).Face)
	assert.Equal(t, brep.Solid("S"), c.Owner(2).Solid)
	assert.Equal(t, geometry.NewVector3(2, 0, 0), c.Bounds().Max)
}

func TestBuildRejectsNonFinitePoints(t *testing.T) {
	bad := faces()
	bad[1].Points = []geometry.Vector3{{X: math.NaN()}}

	_, err := Build(bad)
	assert.True(t, errors.Is(err, ErrInvalidPoint))
}

func TestRebuildWithoutPreviousCloud(t *testing.T) {
	r := newRecordingRenderer()
	ctrl := NewController(r, zerolog.Nop())

	require.NoError(t, ctrl.Rebuild(faces()))

	assert.Equal(t, []string{"display"}, r.calls)
	assert.Len(t, r.displayed, 1)
	assert.NotNil(t, ctrl.Current())
}

func TestRebuildSwapsClouds(t *testing.T) {
	r := newRecordingRenderer()
	ctrl := NewController(r, zerolog.Nop())
	require.NoError(t, ctrl.Rebuild(faces()))
	first := ctrl.Current()

	require.NoError(t, ctrl.Rebuild(faces()))

	assert.Equal(t, []string{"display", "erase", "display"}, r.calls)
	require.Len(t, r.displayed, 1, "the previous cloud must be released")
	for _, shown := range r.displayed {
		assert.Same(t, ctrl.Current(), shown)
	}
	assert.NotSame(t, first, ctrl.Current())
	assert.Equal(t, first.Points(), ctrl.Current().Points(), "rebuilding unchanged samples is idempotent")
	assert.Equal(t, first.Groups(), ctrl.Current().Groups())
}

func TestRebuildFailureKeepsDisplayedCloud(t *testing.T) {
	r := newRecordingRenderer()
	ctrl := NewController(r, zerolog.Nop())
	require.NoError(t, ctrl.Rebuild(faces()))
	before := ctrl.Current()

	bad := faces()
	bad[0].Points = []geometry.Vector3{{Y: math.Inf(1)}}
	err := ctrl.Restore(bad)

	assert.ErrorIs(t, err, ErrInvalidPoint)
	assert.Same(t, before, ctrl.Current())
	assert.Equal(t, []string{"display"}, r.calls, "no erase, display or repaint on failure")
}

func TestRestoreRepaints(t *testing.T) {
	r := newRecordingRenderer()
	ctrl := NewController(r, zerolog.Nop())

	require.NoError(t, ctrl.Restore(faces()))

	assert.Equal(t, []string{"display", "repaint"}, r.calls)
}

func TestClear(t *testing.T) {
	r := newRecordingRenderer()
	ctrl := NewController(r, zerolog.Nop())

	ctrl.Clear()
	assert.Empty(t, r.calls, "clearing with nothing displayed is a no-op")

	require.NoError(t, ctrl.Rebuild(faces()))
	ctrl.Clear()

	assert.Nil(t, ctrl.Current())
	assert.Empty(t, r.displayed)
}

func TestLogRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogRenderer(zerolog.New(&buf).Level(zerolog.DebugLevel))
	ctrl := NewController(r, zerolog.Nop())

	require.NoError(t, ctrl.Restore(faces()))
	require.NoError(t, ctrl.Restore(faces()))

	out := buf.String()
	assert.Contains(t, out, `"message":"display cloud"`)
	assert.Contains(t, out, `"message":"erase cloud"`)
	assert.Contains(t, out, `"handle":2`)
}
