package geometry

import "math"

// Source supplies uniform random numbers in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// minDirectionLength2 rejects candidates too close to the origin to normalize accurately.
const minDirectionLength2 = 1e-12

// RandomDirection draws a unit vector uniformly distributed on the sphere.
//
// Candidates are drawn uniformly in the cube [-1, 1]^3 and rejected unless they fall
// inside the unit ball, which removes the corner bias of normalizing cube samples.
// On average fewer than two draws are needed.
func RandomDirection(src Source) Vector3 {
	for {
		v := Vector3{
			X: 2*src.Float64() - 1,
			Y: 2*src.Float64() - 1,
			Z: 2*src.Float64() - 1,
		}
		l2 := v.LengthSquared()
		if l2 <= minDirectionLength2 || l2 > 1 {
			continue
		}
		return v.Mul(1 / math.Sqrt(l2))
	}
}
