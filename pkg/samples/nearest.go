package samples

import (
	"math"

	"github.com/philipparndt/godefects/pkg/geometry"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Hit locates one sample point
type Hit struct {
	Face     FaceID
	Index    int
	Point    geometry.Vector3
	Distance float64
}

// Index answers nearest-sample queries over a snapshot of a store.
// It does not follow later changes to the store.
type Index struct {
	tree *kdtree.Tree
}

// NewIndex builds a kd-tree over every stored point
func NewIndex(store *Store) *Index {
	var pts samplePoints
	for _, face := range store.faces {
		for j, p := range face.Points {
			pts = append(pts, samplePoint{Vector3: p, face: face.ID, index: j})
		}
	}
	if len(pts) == 0 {
		return &Index{}
	}
	return &Index{tree: kdtree.New(pts, false)}
}

// Nearest returns the sample closest to p. ok is false for an empty index.
func (idx *Index) Nearest(p geometry.Vector3) (hit Hit, ok bool) {
	if idx.tree == nil {
		return Hit{}, false
	}
	c, dist2 := idx.tree.Nearest(samplePoint{Vector3: p})
	if c == nil {
		return Hit{}, false
	}
	sp := c.(samplePoint)
	return Hit{Face: sp.face, Index: sp.index, Point: sp.Vector3, Distance: math.Sqrt(dist2)}, true
}

type samplePoint struct {
	geometry.Vector3
	face  FaceID
	index int
}

// Compare implements kdtree.Comparable
func (p samplePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(samplePoint)
	return p.Component(int(d)) - q.Component(int(d))
}

// Dims implements kdtree.Comparable
func (p samplePoint) Dims() int { return 3 }

// Distance implements kdtree.Comparable and returns the squared distance
func (p samplePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(samplePoint)
	return p.Sub(q.Vector3).LengthSquared()
}

type samplePoints []samplePoint

func (s samplePoints) Index(i int) kdtree.Comparable { return s[i] }
func (s samplePoints) Len() int                      { return len(s) }
func (s samplePoints) Slice(start, end int) kdtree.Interface {
	return s[start:end]
}

// Pivot partitions the list on dimension d
func (s samplePoints) Pivot(d kdtree.Dim) int {
	p := samplePlane{dim: int(d), points: s}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

type samplePlane struct {
	dim    int
	points samplePoints
}

func (p samplePlane) Less(i, j int) bool {
	return p.points[i].Component(p.dim) < p.points[j].Component(p.dim)
}
func (p samplePlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p samplePlane) Len() int { return len(p.points) }
func (p samplePlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
