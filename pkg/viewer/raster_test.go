package viewer

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/cloud"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singlePointCloud(t *testing.T) *cloud.Cloud {
	t.Helper()
	c, err := cloud.Build([]samples.FaceSample{
		{ID: 0, SequenceNumber: 1, Shape: brep.Face("A"), Points: []geometry.Vector3{{X: 2, Y: 2, Z: 2}}},
	})
	require.NoError(t, err)
	return c
}

func TestRasterRendererDrawsPoint(t *testing.T) {
	r := NewRasterRenderer(100, 100)
	r.DisplayCloud(singlePointCloud(t))
	r.Repaint()

	img := r.Image()
	assert.Equal(t, uint8(0), img.RGBAAt(50, 50).R, "point should be drawn at the center")
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).R, "corner should stay background")
}

func TestRasterRendererErase(t *testing.T) {
	r := NewRasterRenderer(100, 100)
	h := r.DisplayCloud(singlePointCloud(t))

	r.EraseCloud(h + 1)
	r.Repaint()
	assert.Equal(t, uint8(0), r.Image().RGBAAt(50, 50).R, "erasing another handle is a no-op")

	r.EraseCloud(h)
	r.Repaint()
	assert.Equal(t, uint8(255), r.Image().RGBAAt(50, 50).R)
}

func TestRasterRendererWritePNG(t *testing.T) {
	r := NewRasterRenderer(64, 32)
	r.DisplayCloud(singlePointCloud(t))

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestRasterRendererWithController(t *testing.T) {
	store, err := samples.NewStore([]samples.FaceSample{
		{ID: 0, SequenceNumber: 1, Shape: brep.Face("A"), Points: []geometry.Vector3{{}, {X: 1}}},
	})
	require.NoError(t, err)

	r := NewRasterRenderer(32, 32)
	ctrl := cloud.NewController(r, zerolog.Nop())
	require.NoError(t, ctrl.Restore(store))

	dark := 0
	img := r.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 255 {
			dark++
		}
	}
	assert.Positive(t, dark)
}
