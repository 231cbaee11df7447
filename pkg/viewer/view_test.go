package viewer

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/cloud"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoFaceCloud(t *testing.T) *cloud.Cloud {
	t.Helper()
	c, err := cloud.Build([]samples.FaceSample{
		{ID: 0, SequenceNumber: 1, Shape: brep.Face("A"), Solid: brep.Solid("S"), Points: []geometry.Vector3{{}, {X: 10}}},
		{ID: 1, SequenceNumber: 3, Shape: brep.Face("B"), Points: []geometry.Vector3{{Y: 10}}},
	})
	require.NoError(t, err)
	return c
}

func newView(t *testing.T) (*CloudView, *cloud.Cloud) {
	t.Helper()
	test.NewApp()
	v := NewCloudView()
	v.Resize(fyne.NewSize(400, 400))
	c := twoFaceCloud(t)
	v.DisplayCloud(c)
	v.Repaint()
	return v, c
}

func TestCloudViewRendersDots(t *testing.T) {
	v, c := newView(t)

	assert.Len(t, v.dots, c.Len())
}

func TestCloudViewTapSelectsFace(t *testing.T) {
	v, c := newView(t)
	var picked []brep.Shape
	v.SetOnSelect(func(s brep.Shape) { picked = append(picked, s) })

	v.Tapped(&fyne.PointEvent{Position: v.screenPos(c.Point(2))})
	v.Tapped(&fyne.PointEvent{Position: v.screenPos(c.Point(1))})

	assert.Equal(t, []brep.Shape{brep.Face("B"), brep.Face("A")}, v.SelectedShapes())
	assert.Equal(t, v.SelectedShapes(), picked)
}

func TestCloudViewSolidMode(t *testing.T) {
	v, c := newView(t)
	v.SetSelectionMode(SelectSolids)

	v.Tapped(&fyne.PointEvent{Position: v.screenPos(c.Point(0))})
	v.Tapped(&fyne.PointEvent{Position: v.screenPos(c.Point(2))})

	assert.Equal(t, []brep.Shape{brep.Solid("S")}, v.SelectedShapes(), "a face without a solid selects nothing in solid mode")
}

func TestCloudViewTapMissIgnored(t *testing.T) {
	v, _ := newView(t)

	v.Tapped(&fyne.PointEvent{Position: fyne.NewPos(395, 5)})

	assert.Empty(t, v.SelectedShapes())
}

func TestCloudViewErase(t *testing.T) {
	test.NewApp()
	v := NewCloudView()
	c := twoFaceCloud(t)
	first := v.DisplayCloud(c)
	second := v.DisplayCloud(c)

	v.EraseCloud(first)
	v.Repaint()
	assert.NotEmpty(t, v.dots, "stale handle must not erase the current cloud")

	v.EraseCloud(second)
	v.Repaint()
	assert.Empty(t, v.dots)

	v.Tapped(&fyne.PointEvent{Position: fyne.NewPos(200, 200)})
	assert.Empty(t, v.SelectedShapes())
}
