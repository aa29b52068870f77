// Package crosscheck wraps independent solar models so results of the NOAA
// chain can be compared against them. None of these share code with
// internal/noaa.
package crosscheck

import (
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solar"
)

// Equatorial holds apparent geocentric coordinates of the Sun.
type Equatorial struct {
	RA     float64 // right ascension, degrees in [0,360)
	Dec    float64 // declination, degrees
	Radius float64 // Sun-Earth distance, AU
}

// Meeus returns the apparent RA/Dec and radius vector from the full Meeus
// chapter 25 implementation. jd is treated as a dynamical Julian Day; the
// ~70 s difference to UT is far below the precision compared here.
func Meeus(jd float64) Equatorial {
	ra, dec := solar.ApparentEquatorial(jd)
	return Equatorial{
		RA:     ra.Deg(),
		Dec:    dec.Deg(),
		Radius: solar.Radius(base.J2000Century(jd)),
	}
}

// MeeusAt is Meeus for an instant.
func MeeusAt(t time.Time) Equatorial {
	return Meeus(julian.TimeToJD(t.UTC()))
}

// SunCalc returns the geometric (unrefracted) elevation and the azimuth of
// the Sun from the suncalc port of Vladimir Agafonkin's algorithm.
// suncalc measures azimuth from south, positive westward, in radians; the
// result here is degrees clockwise from north.
func SunCalc(t time.Time, lat, lon float64) (elevation, azimuth float64) {
	pos := suncalc.GetPosition(t, lat, lon)

	elevation = pos.Altitude * 180 / math.Pi
	azimuth = math.Mod(pos.Azimuth*180/math.Pi+180, 360)
	if azimuth < 0 {
		azimuth += 360
	}
	return elevation, azimuth
}

// RiseSet returns sunrise and sunset (UTC) from go-sunrise for a calendar
// date. Both are zero when the Sun does not rise or set.
func RiseSet(lat, lon float64, year int, month time.Month, day int) (rise, set time.Time) {
	return sunrise.SunriseSunset(lat, lon, year, month, day)
}
