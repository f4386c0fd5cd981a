// Public domain.

// Package gnsolver estimates an observer's latitude and longitude from a
// single shadow stick (gnomon) measurement.
//
// The sun's declination comes from a closed form approximation on day of
// year, its elevation from the stick and shadow lengths, and its azimuth from
// the shadow bearing.  Latitude and longitude are then found by a fixed
// number of iterations that alternately solve latitude from elevation and
// nudge longitude by the difference between observed and theoretical azimuth.
//
// There is no convergence test.  The iteration always runs Iterations times
// and the azimuth difference of the last one is returned as Estimate.Residual
// so callers can judge the result.
package gnsolver

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// Iterations is the fixed number of latitude/longitude refinement steps.
const Iterations = 5

// MinDeclination bounds the equinox region.  Latitude is solved by dividing
// by sin(declination) so estimates with a smaller absolute declination are
// reported as ErrUndefined.
var MinDeclination = unit.AngleFromDeg(.25)

// Measurement is a single shadow stick observation.
type Measurement struct {
	StickHeight  float64 // meters
	ShadowLength float64 // meters

	// compass bearing from the base of the stick to the tip of the shadow,
	// uncorrected for magnetic declination.
	ShadowAzimuth unit.Angle

	// Only the UTC date, hour, and minute are used.
	Time time.Time

	// added to a magnetic bearing to give a true bearing.
	MagneticDeclination unit.Angle
}

// Estimate is the result of solving a Measurement.
type Estimate struct {
	Lat unit.Angle // -90 to 90 degrees
	Lon unit.Angle // east positive, not wrapped

	Elevation   unit.Angle // sun elevation from stick geometry
	Declination unit.Angle // approximate solar declination
	SunAzimuth  unit.Angle // true azimuth of the sun, 0 to 360 degrees
	DayOfYear   int

	// observed minus theoretical sun azimuth at the last iteration.
	Residual unit.Angle
}

// Step is the solver state after one iteration.
type Step struct {
	HourAngle unit.Angle
	Lat       unit.Angle
	Azimuth   unit.Angle // theoretical sun azimuth implied by Lat
	Residual  unit.Angle
	Lon       unit.Angle // longitude after correction
}

// Solve estimates latitude and longitude from a single measurement.
//
// A nil error means every field of the returned Estimate is finite.
// Errors are ErrInvalidInput (as an *InputError) for measurements
// outside their documented ranges, and ErrUndefined for measurements
// where the method has no solution, notably near the equinoxes.
func Solve(m Measurement) (*Estimate, error) {
	e, _, err := solve(m, false)
	return e, err
}

// Trace solves a measurement like Solve and additionally returns the solver
// state after each iteration.
func Trace(m Measurement) (*Estimate, []Step, error) {
	return solve(m, true)
}

func solve(m Measurement, trace bool) (*Estimate, []Step, error) {
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	t := m.Time.UTC()
	utc := float64(t.Hour()) + float64(t.Minute())/60
	y, mo, d := t.Date()
	doy := julian.DayOfYearGregorian(y, int(mo), d)

	δ := Declination(doy)
	if math.Abs(δ.Rad()) < MinDeclination.Rad() {
		return nil, nil, undefined("solar declination %.4f° is within the equinox band", δ.Deg())
	}
	h := Elevation(m.StickHeight, m.ShadowLength)
	sunAz := SunAzimuth(m.ShadowAzimuth, m.MagneticDeclination)
	sunAzDeg := sunAz.Deg()

	sδ, cδ := δ.Sincos()
	sh, ch := h.Sincos()

	var steps []Step
	if trace {
		steps = make([]Step, 0, Iterations)
	}
	var lat, res float64 // degrees
	lon := 0.
	for i := 0; i < Iterations; i++ {
		ha := 15 * (utc - 12 + lon/15)

		sφ := clamp((sh - cδ*math.Cos(ha*math.Pi/180)) / sδ)
		φ := math.Asin(sφ)
		lat = φ * 180 / math.Pi

		cA := clamp((sδ - sh*math.Sin(φ)) / (ch * math.Cos(φ)))
		az := math.Acos(cA) * 180 / math.Pi
		if ha > 0 {
			az = 360 - az
		}

		res = sunAzDeg - az
		lon += res / 4

		if trace {
			steps = append(steps, Step{
				HourAngle: unit.AngleFromDeg(ha),
				Lat:       unit.AngleFromDeg(lat),
				Azimuth:   unit.AngleFromDeg(az),
				Residual:  unit.AngleFromDeg(res),
				Lon:       unit.AngleFromDeg(lon),
			})
		}
	}
	if !finite(lat) || !finite(lon) || !finite(res) {
		return nil, steps, undefined("no finite solution (lat %g, lon %g)", lat, lon)
	}
	return &Estimate{
		Lat:         unit.AngleFromDeg(lat),
		Lon:         unit.AngleFromDeg(lon),
		Elevation:   h,
		Declination: δ,
		SunAzimuth:  sunAz,
		DayOfYear:   doy,
		Residual:    unit.AngleFromDeg(res),
	}, steps, nil
}

// Declination approximates solar declination for a day of year.
func Declination(dayOfYear int) unit.Angle {
	return unit.AngleFromDeg(23.45 * math.Sin(2*math.Pi/365*float64(284+dayOfYear)))
}

// Elevation is the sun elevation implied by a vertical stick and its shadow.
func Elevation(stickHeight, shadowLength float64) unit.Angle {
	return unit.Angle(math.Atan(stickHeight / shadowLength))
}

// SunAzimuth converts a magnetic shadow bearing to the true azimuth of the
// sun, which is opposite the shadow.  The result is in [0, 360) degrees.
func SunAzimuth(shadow, magDecl unit.Angle) unit.Angle {
	return unit.AngleFromDeg(pmod360(shadow.Deg() + magDecl.Deg() + 180))
}

// WrapLon returns lon in the range (-180, 180] degrees.
//
// Solve does not wrap longitude; this is for callers that want it.
func WrapLon(lon unit.Angle) unit.Angle {
	d := pmod360(lon.Deg())
	if d > 180 {
		d -= 360
	}
	return unit.AngleFromDeg(d)
}

func pmod360(d float64) float64 {
	d = unit.PMod(d, 360)
	if d >= 360 { // -tiny + 360 rounds to 360
		d = 0
	}
	return d
}

// clamp keeps an inverse trig argument in [-1, 1] against round off.
func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
