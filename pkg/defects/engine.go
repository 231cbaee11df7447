// Package defects generates random manufacturing defects by displacing the sample
// points of a face. Every function is pure apart from the injected random source.
package defects

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/philipparndt/godefects/pkg/geometry"
	"github.com/philipparndt/godefects/pkg/samples"
)

// Range bounds the displacement magnitude, in millimeters
type Range struct {
	Min float64
	Max float64
}

// Validate checks 0 <= Min <= Max with finite bounds
func (r Range) Validate() error {
	switch {
	case math.IsNaN(r.Min) || math.IsNaN(r.Max):
		return &ConfigurationError{Min: r.Min, Max: r.Max, Reason: "offset is not a number"}
	case math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0):
		return &ConfigurationError{Min: r.Min, Max: r.Max, Reason: "offset is infinite"}
	case r.Min < 0 || r.Max < 0:
		return &ConfigurationError{Min: r.Min, Max: r.Max, Reason: "offsets must not be negative"}
	case r.Min > r.Max:
		return &ConfigurationError{Min: r.Min, Max: r.Max, Reason: "minimum offset exceeds maximum"}
	}
	return nil
}

// Distribution selects how displacement magnitudes are drawn inside a Range
type Distribution int

const (
	// UniformMagnitude draws the magnitude uniformly in [Min, Max]
	UniformMagnitude Distribution = iota
	// UniformVolume places displaced points uniformly in the spherical shell
	// between Min and Max, favouring larger magnitudes
	UniformVolume
)

func (d Distribution) String() string {
	switch d {
	case UniformMagnitude:
		return "magnitude"
	case UniformVolume:
		return "volume"
	default:
		return fmt.Sprintf("distribution(%d)", int(d))
	}
}

// ParseDistribution accepts "magnitude" and "volume"
func ParseDistribution(s string) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "magnitude":
		return UniformMagnitude, nil
	case "volume":
		return UniformVolume, nil
	default:
		return UniformMagnitude, fmt.Errorf("unknown distribution %q (expected magnitude or volume)", s)
	}
}

func (d Distribution) magnitude(r Range, u float64) float64 {
	var m float64
	if d == UniformVolume {
		lo, hi := r.Min*r.Min*r.Min, r.Max*r.Max*r.Max
		m = math.Cbrt(lo + u*(hi-lo))
	} else {
		m = r.Min + u*(r.Max-r.Min)
	}
	// rounding must not leave the range
	return math.Min(math.Max(m, r.Min), r.Max)
}

// NewSource returns a deterministic random source for seed
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// PointLookup finds the sampled points of a face. *samples.Store implements it.
type PointLookup interface {
	Points(id samples.FaceID) ([]geometry.Vector3, bool)
}

// Perturb displaces every sampled point of face id by a random vector whose length
// lies in r. The store is not modified; the caller writes the result back.
func Perturb(lookup PointLookup, id samples.FaceID, r Range, dist Distribution, src geometry.Source) ([]geometry.Vector3, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	points, ok := lookup.Points(id)
	if !ok || len(points) == 0 {
		return nil, &UnknownEntityError{Face: id, Reason: "face has no sampled points"}
	}

	return Displace(points, r, dist, src)
}

// Displace moves each point independently: a uniform direction on the unit sphere
// scaled by a magnitude drawn from dist. Output order and length match the input.
func Displace(points []geometry.Vector3, r Range, dist Distribution, src geometry.Source) ([]geometry.Vector3, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	out := make([]geometry.Vector3, len(points))
	for i, p := range points {
		dir := geometry.RandomDirection(src)
		m := dist.magnitude(r, src.Float64())
		out[i] = p.Add(dir.Mul(m))
	}
	return out, nil
}
