package samples

import (
	"fmt"
	"strconv"

	"github.com/philipparndt/godefects/pkg/geometry"
)

// FaceNumber converts an IGES directory sequence number into the face number shown
// to users. Every directory entry spans two lines, so entity sequence numbers run
// 1, 3, 5, ... and map to 1, 2, 3, ...
func FaceNumber(sequenceNumber int) int {
	return sequenceNumber/2 + 1
}

// SequenceNumberFor is the inverse of FaceNumber for the n-th face (0-based).
func SequenceNumberFor(n int) int {
	return 2*n + 1
}

// FaceTitle is the heading of a face's group in the point list
func FaceTitle(sequenceNumber int) string {
	return fmt.Sprintf("Boundary Face #%d Points", FaceNumber(sequenceNumber))
}

// DefaultFaceLabel names a face that the import did not label
func DefaultFaceLabel(sequenceNumber int) string {
	return fmt.Sprintf("Boundary Face #%d", FaceNumber(sequenceNumber))
}

// PointLabel is the label of the j-th point of a face
func PointLabel(j int, p geometry.Vector3) string {
	return fmt.Sprintf("Point %d (%s %s %s)", j, formatCoord(p.X), formatCoord(p.Y), formatCoord(p.Z))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
