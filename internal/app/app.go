// Package app holds a loaded model session: the entity registry, the point
// sample store, the current selection and the displayed point cloud.
package app

import (
	"errors"
	"fmt"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/cloud"
	"github.com/philipparndt/godefects/pkg/defects"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/registry"
	"github.com/philipparndt/godefects/pkg/samples"
	"github.com/philipparndt/godefects/pkg/selection"
	"github.com/rs/zerolog"
)

// ErrNoModel is returned by operations that need a loaded model
var ErrNoModel = errors.New("no model loaded")

// SelectionSource reports the shapes currently picked in the viewer, most recent last
type SelectionSource interface {
	SelectedShapes() []brep.Shape
}

// Option configures an App
type Option func(*App)

// WithLogger sets the logger; the default discards everything
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithLabelCallback sets the function receiving the label of a newly selected entity
func WithLabelCallback(fn func(label string)) Option {
	return func(a *App) { a.onLabel = fn }
}

// App is one model session. It is not safe for concurrent use; all calls are
// expected on the UI thread.
type App struct {
	log     zerolog.Logger
	source  SelectionSource
	cloud   *cloud.Controller
	onLabel func(string)

	imp      *samples.Import
	registry *registry.Registry[brep.Shape]
	store    *samples.Store
	state    *selection.State
	resolver *selection.Resolver[brep.Shape]
}

// New creates a session drawing through renderer and reading picks from source
func New(renderer cloud.Renderer, source SelectionSource, opts ...Option) *App {
	a := &App{
		log:    zerolog.Nop(),
		source: source,
		state:  &selection.State{},
		store:  &samples.Store{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With().Str("component", "session").Logger()
	a.cloud = cloud.NewController(renderer, a.log)
	return a
}

// Load replaces the session contents with imp. The registry and store are
// rebuilt, the selection is cleared and the cloud is redrawn. On error the
// previous session is kept.
func (a *App) Load(imp *samples.Import) error {
	if err := imp.Validate(); err != nil {
		return fmt.Errorf("invalid import %q: %w", imp.Name, err)
	}

	store, err := samples.NewStore(imp.Faces)
	if err != nil {
		return fmt.Errorf("failed to load samples of %q: %w", imp.Name, err)
	}

	reg := registry.New(brep.IsPartner)
	for i, shape := range imp.Shapes {
		reg.Register(shape, entityLabel(imp, samples.FaceID(i)))
	}

	prevStore := a.store
	a.store = store
	if err := a.cloud.Restore(store); err != nil {
		a.store = prevStore
		return fmt.Errorf("failed to display %q: %w", imp.Name, err)
	}

	a.imp = imp
	a.registry = reg
	a.state.Reset()
	a.resolver = selection.NewResolver(reg, a.state, a.resolved)

	a.log.Info().
		Str("model", imp.Name).
		Int("entities", reg.Len()).
		Int("faces", store.Len()).
		Int("points", store.PointCount()).
		Msg("model loaded")
	return nil
}

// LoadFile parses a model file and loads it
func (a *App) LoadFile(path string) error {
	imp, err := samples.ParseFile(path)
	if err != nil {
		return err
	}
	return a.Load(imp)
}

func entityLabel(imp *samples.Import, id samples.FaceID) string {
	if label := imp.Entities[id].Label; label != "" {
		return label
	}
	for _, face := range imp.Faces {
		if face.ID == id {
			return samples.DefaultFaceLabel(face.SequenceNumber)
		}
	}
	return fmt.Sprintf("Entity #%d", int(id)+1)
}

func (a *App) resolved(entry registry.Entry[brep.Shape]) {
	a.log.Info().Int("entity", int(entry.ID)).Str("label", entry.Label).Msg("entity selected")
	if a.onLabel != nil {
		a.onLabel(entry.Label)
	}
}

// SelectEntity makes the most recent viewer pick the current entity. A pick
// that matches no registered entity is ignored and the selection is kept.
func (a *App) SelectEntity() (registry.Entry[brep.Shape], bool) {
	if a.resolver == nil || a.source == nil {
		return registry.Entry[brep.Shape]{}, false
	}

	picked := a.source.SelectedShapes()
	id, ok := a.resolver.Resolve(picked)
	if !ok {
		a.log.Debug().Int("picked", len(picked)).Msg("selection matched no entity")
		return registry.Entry[brep.Shape]{}, false
	}
	return a.registry.Entry(id)
}

// Selected returns the current entity
func (a *App) Selected() (registry.Entry[brep.Shape], bool) {
	id, ok := a.state.Current()
	if !ok || a.registry == nil {
		return registry.Entry[brep.Shape]{}, false
	}
	return a.registry.Entry(id)
}

// Select makes the entity registered under id current, as if it had been picked
func (a *App) Select(id registry.EntryID) error {
	if a.registry == nil {
		return ErrNoModel
	}
	entry, ok := a.registry.Entry(id)
	if !ok {
		return &defects.UnknownEntityError{Face: samples.FaceID(id), Reason: "not registered"}
	}
	a.state.Set(id)
	a.resolved(entry)
	return nil
}

// ApplyRandomization displaces the sampled points of the current entity and
// redraws the cloud. The range is checked before the selection. On any error
// the store and the displayed cloud are left as they were.
func (a *App) ApplyRandomization(r defects.Range, dist defects.Distribution, src geometry.Source) error {
	if err := r.Validate(); err != nil {
		return err
	}
	id, ok := a.state.Current()
	if !ok {
		return defects.NoSelection()
	}

	face := samples.FaceID(id)
	displaced, err := defects.Perturb(a.store, face, r, dist, src)
	if err != nil {
		return err
	}

	previous, _ := a.store.Points(face)
	if err := a.store.Replace(face, displaced); err != nil {
		return err
	}
	if err := a.cloud.Restore(a.store); err != nil {
		if rollback := a.store.Replace(face, previous); rollback != nil {
			a.log.Error().Err(rollback).Int("face", int(face)).Msg("rollback failed")
		}
		return fmt.Errorf("failed to redraw after randomization: %w", err)
	}

	a.log.Info().
		Int("face", int(face)).
		Int("points", len(displaced)).
		Float64("min", r.Min).
		Float64("max", r.Max).
		Stringer("distribution", dist).
		Msg("randomization applied")
	return nil
}

// Import returns the loaded model with the current sample points, for saving.
// Faces without points keep their sequence numbers and are returned empty.
func (a *App) Import() (*samples.Import, error) {
	if a.imp == nil {
		return nil, ErrNoModel
	}
	return a.imp.MergeFaces(a.store.Faces()), nil
}

// Store returns the point sample store of the session
func (a *App) Store() *samples.Store {
	return a.store
}

// Entries lists the registered entities in registration order
func (a *App) Entries() []registry.Entry[brep.Shape] {
	if a.registry == nil {
		return nil
	}
	return a.registry.Entries()
}

// Cloud returns the displayed point cloud, or nil
func (a *App) Cloud() *cloud.Cloud {
	return a.cloud.Current()
}

// Close erases the displayed cloud
func (a *App) Close() {
	a.cloud.Clear()
}
