// Package brep holds the opaque handles used to talk about boundary-representation
// topology without depending on a geometry kernel.
package brep

import "fmt"

// Kind distinguishes the topological level a handle refers to.
type Kind int

const (
	KindFace Kind = iota
	KindSolid
)

func (k Kind) String() string {
	switch k {
	case KindFace:
		return "face"
	case KindSolid:
		return "solid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Orientation of a shape relative to its underlying topology.
type Orientation int

const (
	Forward Orientation = iota
	Reversed
)

func (o Orientation) String() string {
	if o == Reversed {
		return "reversed"
	}
	return "forward"
}

// ParseOrientation accepts "forward" and "reversed".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "forward":
		return Forward, nil
	case "reversed":
		return Reversed, nil
	default:
		return Forward, fmt.Errorf("unknown orientation %q", s)
	}
}

// Shape is an opaque reference to a topological entity.
//
// TShape identifies the underlying topology; Location and Orientation describe how
// this particular reference places it. Two handles with the same TShape are partners
// even when they were obtained through different paths.
type Shape struct {
	Kind        Kind
	TShape      string
	Location    string
	Orientation Orientation
}

// Face returns a forward face handle with no location.
func Face(tshape string) Shape {
	return Shape{Kind: KindFace, TShape: tshape}
}

// Solid returns a forward solid handle with no location.
func Solid(tshape string) Shape {
	return Shape{Kind: KindSolid, TShape: tshape}
}

// IsNull reports whether the handle refers to nothing.
func (s Shape) IsNull() bool {
	return s.TShape == ""
}

// IsPartner reports whether a and b share the same underlying topology.
// Location and orientation are ignored. Null handles are never partners.
func IsPartner(a, b Shape) bool {
	if a.IsNull() || b.IsNull() {
		return false
	}
	return a.Kind == b.Kind && a.TShape == b.TShape
}

// Reversed returns the same reference with the opposite orientation.
func (s Shape) Reversed() Shape {
	if s.Orientation == Reversed {
		s.Orientation = Forward
	} else {
		s.Orientation = Reversed
	}
	return s
}

func (s Shape) String() string {
	if s.IsNull() {
		return "<null>"
	}
	if s.Location == "" {
		return fmt.Sprintf("%s:%s(%s)", s.Kind, s.TShape, s.Orientation)
	}
	return fmt.Sprintf("%s:%s@%s(%s)", s.Kind, s.TShape, s.Location, s.Orientation)
}
