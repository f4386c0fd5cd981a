// Public domain.

package gnsolver

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned for measurements outside their valid
	// ranges.  These should be rejected before calling Solve.
	ErrInvalidInput = errors.New("invalid measurement")

	// ErrUndefined is returned when the method has no defined result for
	// an otherwise valid measurement.
	ErrUndefined = errors.New("position undefined")
)

// InputError identifies the measurement field that failed validation.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s %g %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func undefined(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrUndefined}, a...)...)
}

// Validate checks that m is within the ranges Solve accepts.
//
// A shadow length of zero is the common case, as from a blank form field.
func (m *Measurement) Validate() error {
	switch {
	case !(m.StickHeight > 0) || math.IsInf(m.StickHeight, 1):
		return &InputError{"stick height", m.StickHeight, "must be positive"}
	case !(m.ShadowLength > 0) || math.IsInf(m.ShadowLength, 1):
		return &InputError{"shadow length", m.ShadowLength, "must be positive"}
	}
	if a := m.ShadowAzimuth.Deg(); !(a >= 0 && a < 360) {
		return &InputError{"shadow azimuth", a, "must be in [0, 360)"}
	}
	if d := m.MagneticDeclination.Deg(); !(d >= -180 && d <= 180) {
		return &InputError{"magnetic declination", d, "must be in [-180, 180]"}
	}
	if m.Time.IsZero() {
		return &InputError{"time", 0, "must be set"}
	}
	return nil
}
