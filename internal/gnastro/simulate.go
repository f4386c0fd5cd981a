// Public domain.

package gnastro

import (
	"math"
	"time"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/gnomon/internal/gnsolver"
)

// Simulate returns the measurement an observer at lat, lon would make at t
// with a stick of the given height and a compass with the given magnetic
// declination.
//
// ErrBelowHorizon is returned if the sun is not up.
func (m Model) Simulate(lat, lon unit.Angle, t time.Time, stickHeight float64,
	magDecl unit.Angle) (gnsolver.Measurement, error) {
	az, el := m.Sun(t, lat, lon)
	if el <= 0 {
		return gnsolver.Measurement{}, ErrBelowHorizon
	}
	// shadow points away from the sun; a compass reads true bearing minus
	// declination.
	shadowAz := unit.PMod(az.Deg()+180-magDecl.Deg(), 360)
	if shadowAz >= 360 {
		shadowAz = 0
	}
	return gnsolver.Measurement{
		StickHeight:         stickHeight,
		ShadowLength:        stickHeight / math.Tan(el.Rad()),
		ShadowAzimuth:       unit.AngleFromDeg(shadowAz),
		Time:                t.UTC(),
		MagneticDeclination: magDecl,
	}, nil
}
