// Public domain.

// Package gnastro, sun position and geodesy for checking and simulating
// shadow stick measurements.
//
// Functions here use the full solar theory of package meeus rather than the
// closed form approximations of gnsolver.  Longitudes are east positive.
package gnastro

import (
	"errors"
	"math"
	"time"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/gnomon/internal/gnsolver"
)

// ErrBelowHorizon is returned when the sun casts no shadow.
var ErrBelowHorizon = errors.New("sun below horizon")

// Model selects the solar model used for sun positions.
type Model int

const (
	// Precise uses apparent solar coordinates and sidereal time.
	// ΔT is ignored, an error of about a second of arc.
	Precise Model = iota

	// Approx uses the same approximations as gnsolver: the closed
	// form declination and an hour angle of 15° per hour from 12h UTC,
	// without equation of time.
	Approx
)

func (m Model) String() string {
	if m == Approx {
		return "approx"
	}
	return "precise"
}

// Declination returns the apparent declination of the sun at t.
func Declination(t time.Time) unit.Angle {
	_, δ := solar.ApparentEquatorial(julian.TimeToJD(t.UTC()))
	return δ
}

// Sun returns the azimuth (from north, through east) and elevation of the sun
// seen from lat, lon at time t.
func (m Model) Sun(t time.Time, lat, lon unit.Angle) (az, el unit.Angle) {
	t = t.UTC()
	var δ, H unit.Angle
	if m == Approx {
		y, mo, d := t.Date()
		δ = gnsolver.Declination(julian.DayOfYearGregorian(y, int(mo), d))
		utc := float64(t.Hour()) + float64(t.Minute())/60
		H = unit.AngleFromDeg(15*(utc-12)) + lon
	} else {
		jd := julian.TimeToJD(t)
		var α unit.RA
		α, δ = solar.ApparentEquatorial(jd)
		H = sidereal.Apparent(jd).Angle() + lon - unit.Angle(α)
	}
	return horizontal(δ, H, lat)
}

// Sun returns the precise azimuth and elevation of the sun.
func Sun(t time.Time, lat, lon unit.Angle) (az, el unit.Angle) {
	return Precise.Sun(t, lat, lon)
}

// horizontal transforms declination and local hour angle to azimuth and
// elevation at latitude φ.
func horizontal(δ, H, φ unit.Angle) (az, el unit.Angle) {
	sδ, cδ := δ.Sincos()
	sH, cH := H.Sincos()
	sφ, cφ := φ.Sincos()
	// east, north, up
	v := coord.Cart{
		X: -cδ * sH,
		Y: cφ*sδ - sφ*cδ*cH,
		Z: sφ*sδ + cφ*cδ*cH,
	}
	az = unit.Angle(unit.PMod(math.Atan2(v.X, v.Y), 2*math.Pi))
	el = unit.Angle(math.Asin(v.Z / math.Sqrt(v.Square())))
	return
}

// Distance returns the geodesic distance in km between two points.
func Distance(lat1, lon1, lat2, lon2 unit.Angle) float64 {
	// globe measures longitude westward; distance is the same either way
	// as long as both points agree.
	return globe.Earth76.Distance(
		globe.Coord{Lat: lat1, Lon: lon1},
		globe.Coord{Lat: lat2, Lon: lon2})
}
