package registry

import (
	"strings"
	"testing"

	"github.com/philipparndt/godefects/pkg/brep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsDenseIDs(t *testing.T) {
	reg := New(brep.IsPartner)

	a := reg.Register(brep.Face("A"), "Face A")
	b := reg.Register(brep.Face("B"), "Face B")

	assert.Equal(t, EntryID(0), a)
	assert.Equal(t, EntryID(1), b)
	assert.Equal(t, 2, reg.Len())

	entry, ok := reg.Entry(b)
	require.True(t, ok)
	assert.Equal(t, "Face B", entry.Label)
}

func TestFindUsesPartnership(t *testing.T) {
	reg := New(brep.IsPartner)
	reg.Register(brep.Face("A"), "Face A")
	reg.Register(brep.Face("B"), "Face B")

	moved := brep.Shape{Kind: brep.KindFace, TShape: "B", Location: "L1", Orientation: brep.Reversed}
	id, ok := reg.Find(moved)

	require.True(t, ok)
	assert.Equal(t, EntryID(1), id)
}

func TestFindFirstMatchWins(t *testing.T) {
	// Case-insensitive predicate so that two entries match the same query
	reg := New(func(a, b string) bool { return strings.EqualFold(a, b) })
	reg.Register("x", "first")
	reg.Register("X", "second")

	id, ok := reg.Find("X")

	require.True(t, ok)
	assert.Equal(t, EntryID(0), id)
}

func TestFindNotFound(t *testing.T) {
	reg := New(brep.IsPartner)
	reg.Register(brep.Face("A"), "Face A")

	_, ok := reg.Find(brep.Face("Z"))
	assert.False(t, ok)

	_, ok = reg.Entry(5)
	assert.False(t, ok)
	_, ok = reg.Entry(-1)
	assert.False(t, ok)
}
