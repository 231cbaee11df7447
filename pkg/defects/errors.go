package defects

import (
	"errors"
	"fmt"

	"github.com/philipparndt/godefects/pkg/samples"
)

// ErrNoSelection is wrapped by the UnknownEntityError returned when a randomization
// is requested with nothing selected.
var ErrNoSelection = errors.New("no entity selected")

// ConfigurationError reports an invalid displacement range. The range is never
// corrected silently.
type ConfigurationError struct {
	Min, Max float64
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid displacement range [%g, %g]: %s", e.Min, e.Max, e.Reason)
}

// UnknownEntityError reports a target that has no sampled points to displace.
type UnknownEntityError struct {
	Face   samples.FaceID
	Reason string
	Err    error
}

func (e *UnknownEntityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unknown entity: %v", e.Err)
	}
	return fmt.Sprintf("unknown entity %d: %s", e.Face, e.Reason)
}

func (e *UnknownEntityError) Unwrap() error {
	return e.Err
}

// NoSelection returns the error for a randomization requested without a selection
func NoSelection() error {
	return &UnknownEntityError{Face: -1, Reason: "nothing selected", Err: ErrNoSelection}
}
