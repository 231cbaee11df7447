package brep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPartnerIgnoresPlacement(t *testing.T) {
	a := Face("F1")
	b := Shape{Kind: KindFace, TShape: "F1", Location: "L2", Orientation: Reversed}

	assert.True(t, IsPartner(a, b))
	assert.True(t, IsPartner(b, a), "partnership must be symmetric")
	assert.True(t, IsPartner(a, a), "partnership must be reflexive")
}

func TestIsPartnerDistinguishesTopology(t *testing.T) {
	assert.False(t, IsPartner(Face("F1"), Face("F2")))
	assert.False(t, IsPartner(Face("X"), Solid("X")), "kind is part of the topology")
	assert.False(t, IsPartner(Shape{}, Shape{}), "null handles are never partners")
}

func TestParseOrientation(t *testing.T) {
	o, err := ParseOrientation("reversed")
	assert.NoError(t, err)
	assert.Equal(t, Reversed, o)

	_, err = ParseOrientation("sideways")
	assert.Error(t, err)
}

func TestEntityWalk(t *testing.T) {
	root := Entity{Label: "Solid", Children: []Entity{
		{Label: "Face A"},
		{Label: "Face B", Children: []Entity{{Label: "Edge"}}},
	}}

	var visited []string
	var depths []int
	root.Walk(func(e Entity, depth int) {
		visited = append(visited, e.Label)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{"Solid", "Face A", "Face B", "Edge"}, visited)
	assert.Equal(t, []int{0, 1, 1, 2}, depths)
}
