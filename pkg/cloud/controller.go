package cloud

import (
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/rs/zerolog"
)

// Handle identifies a cloud inside a renderer
type Handle uint64

// Renderer displays clouds. Calls are synchronous and always succeed.
type Renderer interface {
	DisplayCloud(c *Cloud) Handle
	EraseCloud(h Handle)
	Repaint()
}

// FaceSource provides the faces to build from. *samples.Store implements it.
type FaceSource interface {
	Faces() []samples.FaceSample
}

// Controller owns the single displayed cloud
type Controller struct {
	renderer Renderer
	log      zerolog.Logger

	current *Cloud
	handle  Handle
}

// NewController creates a controller drawing into renderer
func NewController(renderer Renderer, log zerolog.Logger) *Controller {
	return &Controller{renderer: renderer, log: log}
}

// Current returns the displayed cloud, or nil
func (c *Controller) Current() *Cloud {
	return c.current
}

// Clear erases the displayed cloud, if any
func (c *Controller) Clear() {
	if c.current == nil {
		return
	}
	c.renderer.EraseCloud(c.handle)
	c.current = nil
	c.handle = 0
}

// Rebuild builds a new cloud from src and swaps it in. The new cloud is fully built
// before the old one is erased, so on error the display is untouched.
func (c *Controller) Rebuild(src FaceSource) error {
	next, err := Build(src.Faces())
	if err != nil {
		c.log.Error().Err(err).Msg("cloud rebuild failed, keeping previous cloud")
		return err
	}

	c.Clear()
	c.handle = c.renderer.DisplayCloud(next)
	c.current = next

	c.log.Debug().
		Int("faces", len(next.groups)).
		Int("points", next.Len()).
		Uint64("handle", uint64(c.handle)).
		Msg("cloud rebuilt")
	return nil
}

// Restore rebuilds and asks the renderer to repaint
func (c *Controller) Restore(src FaceSource) error {
	if err := c.Rebuild(src); err != nil {
		return err
	}
	c.renderer.Repaint()
	return nil
}
