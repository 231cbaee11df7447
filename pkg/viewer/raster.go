package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/philipparndt/godefects/pkg/cloud"
)

// RasterRenderer draws clouds into an offscreen image. It implements cloud.Renderer;
// Repaint rasterizes the displayed cloud.
type RasterRenderer struct {
	width, height int
	pointSize     int
	rotX, rotY    float64
	background    color.RGBA

	cloud  *cloud.Cloud
	handle cloud.Handle
	next   cloud.Handle
	img    *image.RGBA
}

// NewRasterRenderer creates a renderer producing width x height images
func NewRasterRenderer(width, height int) *RasterRenderer {
	return &RasterRenderer{
		width:      max(width, 1),
		height:     max(height, 1),
		pointSize:  3,
		background: color.RGBA{255, 255, 255, 255},
	}
}

// SetPointSize sets the splat size in pixels
func (r *RasterRenderer) SetPointSize(size int) {
	r.pointSize = max(size, 1)
}

// SetRotation orbits the camera, in radians
func (r *RasterRenderer) SetRotation(x, y float64) {
	r.rotX, r.rotY = x, y
}

// DisplayCloud implements cloud.Renderer
func (r *RasterRenderer) DisplayCloud(c *cloud.Cloud) cloud.Handle {
	r.next++
	r.handle = r.next
	r.cloud = c
	return r.handle
}

// EraseCloud implements cloud.Renderer
func (r *RasterRenderer) EraseCloud(h cloud.Handle) {
	if h == r.handle {
		r.cloud = nil
	}
}

// Repaint implements cloud.Renderer
func (r *RasterRenderer) Repaint() {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r.background.R, r.background.G, r.background.B, r.background.A
	}

	if r.cloud != nil && r.cloud.Len() > 0 {
		camera := NewCamera(r.cloud.Bounds())
		camera.Rotate(r.rotX, r.rotY)
		r.splat(img, camera)
	}

	r.img = img
}

// splat draws every point as a square with depth testing, nearer points darker
func (r *RasterRenderer) splat(img *image.RGBA, camera *Camera) {
	w, h := float64(r.width), float64(r.height)
	zbuffer := make([]float64, r.width*r.height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	// depth range for shading
	near, far := math.Inf(1), math.Inf(-1)
	type projected struct{ x, y, z float64 }
	proj := make([]projected, r.cloud.Len())
	for i := range proj {
		x, y, z := camera.Project(r.cloud.Point(i), w, h)
		proj[i] = projected{x, y, z}
		near = math.Min(near, z)
		far = math.Max(far, z)
	}

	half := r.pointSize / 2
	for _, p := range proj {
		shade := uint8(0)
		if far > near {
			shade = uint8(160 * (p.z - near) / (far - near))
		}
		col := color.RGBA{shade, shade, shade, 255}

		cx, cy := int(math.Round(p.x)), int(math.Round(p.y))
		for y := cy - half; y < cy-half+r.pointSize; y++ {
			for x := cx - half; x < cx-half+r.pointSize; x++ {
				if x < 0 || y < 0 || x >= r.width || y >= r.height {
					continue
				}
				idx := y*r.width + x
				if p.z < zbuffer[idx] {
					zbuffer[idx] = p.z
					img.SetRGBA(x, y, col)
				}
			}
		}
	}
}

// Image returns the last rasterized image, painting first if needed
func (r *RasterRenderer) Image() *image.RGBA {
	if r.img == nil {
		r.Repaint()
	}
	return r.img
}

// WritePNG encodes the last rasterized image
func (r *RasterRenderer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.Image()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
