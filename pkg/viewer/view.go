// Package viewer draws point clouds, either into a fyne widget or an offscreen image.
package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/cloud"
	"github.com/philipparndt/godefects/pkg/geometry"
)

// SelectionMode decides what a tap on a point selects
type SelectionMode int

const (
	// SelectFaces picks the face owning the point
	SelectFaces SelectionMode = iota
	// SelectSolids picks the solid the face belongs to
	SelectSolids
)

// pickRadius is the maximum screen distance, in pixels, for a tap to hit a point
const pickRadius = 20

// maxSelected caps the remembered selection history
const maxSelected = 16

var (
	pointColor     = color.RGBA{20, 20, 20, 255}
	highlightColor = color.RGBA{220, 30, 30, 255}
)

// CloudView is a fyne widget showing one point cloud.
// It implements cloud.Renderer and reports picked shapes for entity selection.
type CloudView struct {
	widget.BaseWidget

	cloud      *cloud.Cloud
	handle     cloud.Handle
	nextHandle cloud.Handle

	camera     *Camera
	dots       []*canvas.Circle
	pointSize  float32
	mode       SelectionMode
	selected   []brep.Shape
	dragStart  *fyne.Position
	isDragging bool
	width      float64
	height     float64
	onSelect   func(shape brep.Shape)
}

// NewCloudView creates an empty viewer
func NewCloudView() *CloudView {
	v := &CloudView{pointSize: 3, width: 400, height: 400}
	v.ExtendBaseWidget(v)
	return v
}

// SetPointSize sets the dot diameter in pixels
func (v *CloudView) SetPointSize(size float32) {
	if size > 0 {
		v.pointSize = size
	}
}

// SetOnSelect sets the callback invoked after a tap picked a shape
func (v *CloudView) SetOnSelect(callback func(shape brep.Shape)) {
	v.onSelect = callback
}

// SetSelectionMode switches between face and solid picking
func (v *CloudView) SetSelectionMode(mode SelectionMode) {
	v.mode = mode
}

// SelectionMode returns the current picking mode
func (v *CloudView) SelectionMode() SelectionMode {
	return v.mode
}

// SelectedShapes returns the picked shapes, most recent last
func (v *CloudView) SelectedShapes() []brep.Shape {
	return append([]brep.Shape(nil), v.selected...)
}

// ClearSelection forgets all picks
func (v *CloudView) ClearSelection() {
	v.selected = nil
	v.Render(v.width, v.height)
}

// DisplayCloud implements cloud.Renderer. The camera is framed on the first cloud
// and kept for later ones so a rebuild does not reset the view.
func (v *CloudView) DisplayCloud(c *cloud.Cloud) cloud.Handle {
	v.nextHandle++
	v.handle = v.nextHandle
	v.cloud = c
	if v.camera == nil {
		v.camera = NewCamera(c.Bounds())
	}
	return v.handle
}

// EraseCloud implements cloud.Renderer
func (v *CloudView) EraseCloud(h cloud.Handle) {
	if h != v.handle || v.cloud == nil {
		return
	}
	v.cloud = nil
	v.dots = nil
}

// Repaint implements cloud.Renderer
func (v *CloudView) Repaint() {
	v.Render(v.width, v.height)
}

// ResetCamera frames the current cloud again from the front
func (v *CloudView) ResetCamera() {
	if v.cloud != nil && v.camera != nil {
		v.camera.RotationX, v.camera.RotationY = 0, 0
		v.camera.Frame(v.cloud.Bounds())
	} else if v.cloud != nil {
		v.camera = NewCamera(v.cloud.Bounds())
	}
	v.Render(v.width, v.height)
}

// Render projects the cloud for a view of the given size
func (v *CloudView) Render(width, height float64) {
	if width > 0 && height > 0 {
		v.width = width
		v.height = height
	}

	v.dots = nil
	if v.cloud != nil && v.camera != nil {
		var last brep.Shape
		if len(v.selected) > 0 {
			last = v.selected[len(v.selected)-1]
		}

		for i := 0; i < v.cloud.Len(); i++ {
			x, y, z := v.camera.Project(v.cloud.Point(i), v.width, v.height)
			if z <= 0.01 {
				continue
			}

			col := pointColor
			if brep.IsPartner(v.pickShape(v.cloud.Owner(i)), last) {
				col = highlightColor
			}
			dot := canvas.NewCircle(col)
			dot.Resize(fyne.NewSize(v.pointSize, v.pointSize))
			dot.Move(fyne.NewPos(float32(x)-v.pointSize/2, float32(y)-v.pointSize/2))
			v.dots = append(v.dots, dot)
		}
	}

	v.Refresh()
}

func (v *CloudView) pickShape(group cloud.FaceGroup) brep.Shape {
	if v.mode == SelectSolids {
		return group.Solid
	}
	return group.Shape
}

// Tapped picks the shape of the point nearest to the tap
func (v *CloudView) Tapped(event *fyne.PointEvent) {
	if v.isDragging || v.cloud == nil || v.camera == nil {
		return
	}

	i, dist := v.nearestPoint(float64(event.Position.X), float64(event.Position.Y))
	if i < 0 || dist >= pickRadius {
		return
	}

	shape := v.pickShape(v.cloud.Owner(i))
	if shape.IsNull() {
		return
	}
	v.selected = append(v.selected, shape)
	if len(v.selected) > maxSelected {
		v.selected = v.selected[len(v.selected)-maxSelected:]
	}
	v.Render(v.width, v.height)

	if v.onSelect != nil {
		v.onSelect(shape)
	}
}

func (v *CloudView) nearestPoint(screenX, screenY float64) (int, float64) {
	nearest := -1
	minDist := math.MaxFloat64

	for i := 0; i < v.cloud.Len(); i++ {
		x, y, z := v.camera.Project(v.cloud.Point(i), v.width, v.height)
		if z <= 0.01 {
			continue
		}
		if dist := math.Hypot(x-screenX, y-screenY); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest, minDist
}

// screenPos returns the screen position of a cloud point
func (v *CloudView) screenPos(p geometry.Vector3) fyne.Position {
	if v.camera == nil {
		return fyne.Position{}
	}
	x, y, _ := v.camera.Project(p, v.width, v.height)
	return fyne.NewPos(float32(x), float32(y))
}

// Dragged rotates the camera
func (v *CloudView) Dragged(event *fyne.DragEvent) {
	if v.camera == nil {
		return
	}
	if v.dragStart != nil {
		deltaX := event.Position.X - v.dragStart.X
		deltaY := event.Position.Y - v.dragStart.Y

		v.camera.Rotate(float64(-deltaY)*0.01, float64(deltaX)*0.01)
		v.Render(v.width, v.height)
	}
	pos := event.Position
	v.dragStart = &pos
	v.isDragging = true
}

// DragEnd handles the end of a drag event
func (v *CloudView) DragEnd() {
	v.dragStart = nil
	v.isDragging = false
}

// Scrolled zooms the camera
func (v *CloudView) Scrolled(event *fyne.ScrollEvent) {
	if v.camera == nil {
		return
	}
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.Render(v.width, v.height)
}

// CreateRenderer implements fyne.Widget
func (v *CloudView) CreateRenderer() fyne.WidgetRenderer {
	return &cloudWidgetRenderer{view: v}
}

type cloudWidgetRenderer struct {
	view    *CloudView
	objects []fyne.CanvasObject
}

func (r *cloudWidgetRenderer) Layout(size fyne.Size) {
	r.view.Render(float64(size.Width), float64(size.Height))
}

func (r *cloudWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *cloudWidgetRenderer) Refresh() {
	r.objects = make([]fyne.CanvasObject, 0, len(r.view.dots))
	for _, dot := range r.view.dots {
		r.objects = append(r.objects, dot)
	}
	canvas.Refresh(r.view)
}

func (r *cloudWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *cloudWidgetRenderer) Destroy() {}
