package brep

// Entity is a labelled node of the model tree produced by an import.
type Entity struct {
	Label    string
	Children []Entity
}

// Walk visits e and its descendants depth-first, passing the nesting depth.
func (e Entity) Walk(fn func(e Entity, depth int)) {
	e.walk(fn, 0)
}

func (e Entity) walk(fn func(Entity, int), depth int) {
	fn(e, depth)
	for _, child := range e.Children {
		child.walk(fn, depth+1)
	}
}
