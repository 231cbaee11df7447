// Package ui contains the fyne side panel for applying random defects.
package ui

import (
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/defects"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/registry"
	"github.com/philipparndt/godefects/pkg/viewer"
)

// Session is the part of the model session the panel drives
type Session interface {
	SelectEntity() (registry.Entry[brep.Shape], bool)
	ApplyRandomization(r defects.Range, dist defects.Distribution, src geometry.Source) error
}

// ModeSelector switches what a pick in the viewer selects
type ModeSelector interface {
	SetSelectionMode(mode viewer.SelectionMode)
}

// Options configures a DefectsPanel
type Options struct {
	Range        defects.Range
	Distribution defects.Distribution
	// Source supplies randomness for every apply; nil uses a fixed-seed source
	Source geometry.Source
	// OnError receives parse and apply failures
	OnError func(error)
	// OnApplied is called after a successful randomization
	OnApplied func()
	// OnStatus receives short user feedback, e.g. a pick that matches no entity
	OnStatus func(string)
}

// DefectsPanel is the "random defects" side menu
type DefectsPanel struct {
	session  Session
	selector ModeSelector
	opts     Options

	SolidsButton   *widget.Button
	SurfacesButton *widget.Button
	EntityEntry    *widget.Entry
	AddButton      *widget.Button
	MinEntry       *widget.Entry
	MaxEntry       *widget.Entry
	ApplyButton    *widget.Button

	content fyne.CanvasObject
}

// NewDefectsPanel builds the panel
func NewDefectsPanel(session Session, selector ModeSelector, opts Options) *DefectsPanel {
	if opts.Source == nil {
		opts.Source = defects.NewSource(1)
	}
	p := &DefectsPanel{session: session, selector: selector, opts: opts}

	p.SolidsButton = widget.NewButton("Select solids", func() {
		p.selector.SetSelectionMode(viewer.SelectSolids)
	})
	p.SurfacesButton = widget.NewButton("Select surfaces", func() {
		p.selector.SetSelectionMode(viewer.SelectFaces)
	})

	p.EntityEntry = widget.NewEntry()
	p.EntityEntry.SetPlaceHolder("No entity selected")
	p.EntityEntry.Disable()
	p.AddButton = widget.NewButton("Add selected entity", p.addSelection)

	p.MinEntry = widget.NewEntry()
	p.MinEntry.SetText(formatOffset(opts.Range.Min))
	p.MaxEntry = widget.NewEntry()
	p.MaxEntry.SetText(formatOffset(opts.Range.Max))
	p.ApplyButton = widget.NewButton("Apply randomization", p.apply)

	instructions := widget.NewLabel(
		"Pick a face in the viewer, add it as the entity,\n" +
			"then apply a random offset to its sample points.",
	)
	instructions.Wrapping = fyne.TextWrapWord

	title := widget.NewLabel("Random defects")
	title.TextStyle = fyne.TextStyle{Bold: true}

	p.content = container.NewVBox(
		title,
		widget.NewSeparator(),
		instructions,
		container.NewGridWithColumns(2, p.SolidsButton, p.SurfacesButton),
		widget.NewLabel("Selected entity:"),
		p.EntityEntry,
		p.AddButton,
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Min offset (mm)", p.MinEntry),
			widget.NewFormItem("Max offset (mm)", p.MaxEntry),
		),
		p.ApplyButton,
	)
	return p
}

// Content returns the panel's canvas object
func (p *DefectsPanel) Content() fyne.CanvasObject {
	return p.content
}

// SetEntityLabel shows the label of the current entity
func (p *DefectsPanel) SetEntityLabel(label string) {
	p.EntityEntry.SetText(label)
}

// Reset clears the entity field, used after a model reload
func (p *DefectsPanel) Reset() {
	p.EntityEntry.SetText("")
}

// addSelection resolves the current pick; the session reports the label of a
// match through its label callback
func (p *DefectsPanel) addSelection() {
	if _, ok := p.session.SelectEntity(); ok {
		return
	}
	if p.opts.OnStatus != nil {
		p.opts.OnStatus("Selection matches no entity; entities are surfaces")
	}
}

func (p *DefectsPanel) apply() {
	r, err := p.offsets()
	if err != nil {
		p.fail(err)
		return
	}
	if err := p.session.ApplyRandomization(r, p.opts.Distribution, p.opts.Source); err != nil {
		p.fail(err)
		return
	}
	if p.opts.OnApplied != nil {
		p.opts.OnApplied()
	}
}

// offsets parses the min/max entries. Unparsable text is a configuration error
// and is never replaced by a default.
func (p *DefectsPanel) offsets() (defects.Range, error) {
	lo, loErr := strconv.ParseFloat(strings.TrimSpace(p.MinEntry.Text), 64)
	hi, hiErr := strconv.ParseFloat(strings.TrimSpace(p.MaxEntry.Text), 64)
	if loErr != nil || hiErr != nil {
		lo, hi = nanIf(loErr, lo), nanIf(hiErr, hi)
		return defects.Range{}, &defects.ConfigurationError{Min: lo, Max: hi, Reason: "offset is not a number"}
	}
	r := defects.Range{Min: lo, Max: hi}
	return r, r.Validate()
}

func nanIf(err error, v float64) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}

func (p *DefectsPanel) fail(err error) {
	if p.opts.OnError != nil {
		p.opts.OnError(err)
	}
}

func formatOffset(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
