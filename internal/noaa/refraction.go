package noaa

import "github.com/thurmanmarka/solarpos/internal/timeutil"

// Refraction boundaries (degrees of geometric elevation).
const (
	refractionNone    = 85.0
	refractionHigh    = 5.0
	refractionHorizon = -0.575
)

// Refraction returns the approximate atmospheric refraction, in degrees,
// to add to the geometric elevation elev (degrees).
//
// The piecewise fit is evaluated in arcseconds. Each boundary belongs to
// the lower piece: elev == 85 gets the cotangent series, elev == 5 the
// horizon polynomial and elev == -0.575 the below-horizon term.
func Refraction(elev float64) float64 {
	var arcsec float64

	switch {
	case elev > refractionNone:
		arcsec = 0
	case elev > refractionHigh:
		// 58.1″/tan e is the NOAA coefficient. A unit coefficient would
		// leave a 0.18° step against the horizon polynomial at 5°.
		te := timeutil.TanD(elev)
		arcsec = 58.1/te - 0.07/(te*te*te) + 0.000086/(te*te*te*te*te)
	case elev > refractionHorizon:
		arcsec = 1735 + elev*(-518.2+elev*(103.4+elev*(-12.79+elev*0.711)))
	default:
		arcsec = -20.772 / timeutil.TanD(elev)
	}

	return arcsec / 3600
}
