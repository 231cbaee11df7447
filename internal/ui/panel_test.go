package ui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/philipparndt/godefects/pkg/defects"
	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/registry"
	"github.com/philipparndt/godefects/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	entry   registry.Entry[brep.Shape]
	found   bool
	applied []defects.Range
	err     error
	onLabel func(string)
}

func (s *fakeSession) SelectEntity() (registry.Entry[brep.Shape], bool) {
	if s.found && s.onLabel != nil {
		s.onLabel(s.entry.Label)
	}
	return s.entry, s.found
}

func (s *fakeSession) ApplyRandomization(r defects.Range, _ defects.Distribution, _ geometry.Source) error {
	if s.err != nil {
		return s.err
	}
	s.applied = append(s.applied, r)
	return nil
}

type fakeSelector struct {
	mode viewer.SelectionMode
}

func (s *fakeSelector) SetSelectionMode(mode viewer.SelectionMode) { s.mode = mode }

func newPanel(session *fakeSession, errs *[]error) (*DefectsPanel, *fakeSelector) {
	test.NewApp()
	selector := &fakeSelector{}
	p := NewDefectsPanel(session, selector, Options{
		Range:   defects.Range{Min: 0, Max: 1},
		OnError: func(err error) { *errs = append(*errs, err) },
	})
	return p, selector
}

func TestModeButtons(t *testing.T) {
	var errs []error
	p, selector := newPanel(&fakeSession{}, &errs)

	test.Tap(p.SolidsButton)
	assert.Equal(t, viewer.SelectSolids, selector.mode)

	test.Tap(p.SurfacesButton)
	assert.Equal(t, viewer.SelectFaces, selector.mode)
}

func TestAddSelectionShowsLabel(t *testing.T) {
	var errs []error
	session := &fakeSession{entry: registry.Entry[brep.Shape]{Label: "Boundary Face #3"}, found: true}
	p, _ := newPanel(session, &errs)
	session.onLabel = p.SetEntityLabel

	test.Tap(p.AddButton)

	assert.Equal(t, "Boundary Face #3", p.EntityEntry.Text)
	assert.True(t, p.EntityEntry.Disabled())
}

func TestAddSelectionLeavesLabelToSession(t *testing.T) {
	var errs []error
	session := &fakeSession{entry: registry.Entry[brep.Shape]{Label: "Boundary Face #3"}, found: true}
	p, _ := newPanel(session, &errs)
	p.SetEntityLabel("Boundary Face #1")

	test.Tap(p.AddButton)

	assert.Equal(t, "Boundary Face #1", p.EntityEntry.Text)
}

func TestAddSelectionWithoutMatchReportsStatus(t *testing.T) {
	test.NewApp()
	var status []string
	p := NewDefectsPanel(&fakeSession{}, &fakeSelector{}, Options{
		Range:    defects.Range{Min: 0, Max: 1},
		OnStatus: func(msg string) { status = append(status, msg) },
	})

	test.Tap(p.AddButton)

	require.Len(t, status, 1)
	assert.Contains(t, status[0], "matches no entity")
}

func TestAddSelectionWithoutMatchKeepsLabel(t *testing.T) {
	var errs []error
	session := &fakeSession{}
	p, _ := newPanel(session, &errs)
	p.SetEntityLabel("Boundary Face #1")

	test.Tap(p.AddButton)

	assert.Equal(t, "Boundary Face #1", p.EntityEntry.Text)
	assert.Empty(t, errs)
}

func TestApplyParsesOffsets(t *testing.T) {
	var errs []error
	session := &fakeSession{}
	p, _ := newPanel(session, &errs)

	p.MinEntry.SetText("0.25")
	p.MaxEntry.SetText(" 2 ")
	test.Tap(p.ApplyButton)

	require.Empty(t, errs)
	assert.Equal(t, []defects.Range{{Min: 0.25, Max: 2}}, session.applied)
}

func TestApplyRejectsText(t *testing.T) {
	var errs []error
	session := &fakeSession{}
	p, _ := newPanel(session, &errs)

	p.MaxEntry.SetText("abc")
	test.Tap(p.ApplyButton)

	require.Len(t, errs, 1)
	var cfgErr *defects.ConfigurationError
	assert.True(t, errors.As(errs[0], &cfgErr))
	assert.Empty(t, session.applied)
}

func TestApplyRejectsInvertedRange(t *testing.T) {
	var errs []error
	session := &fakeSession{}
	p, _ := newPanel(session, &errs)

	p.MinEntry.SetText("3")
	p.MaxEntry.SetText("1")
	test.Tap(p.ApplyButton)

	require.Len(t, errs, 1)
	var cfgErr *defects.ConfigurationError
	assert.True(t, errors.As(errs[0], &cfgErr))
	assert.Empty(t, session.applied)
}

func TestApplyReportsSessionError(t *testing.T) {
	var errs []error
	session := &fakeSession{err: defects.NoSelection()}
	p, _ := newPanel(session, &errs)

	test.Tap(p.ApplyButton)

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], defects.ErrNoSelection)
}
