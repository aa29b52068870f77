// Package noaa implements the solar position formulas of the NOAA Solar
// Calculator spreadsheet, which follow Jean Meeus' "Astronomical
// Algorithms" truncated to the low-precision series.
//
// Every function is a pure step of the chain. Most operate on the Julian
// century t (centuries since J2000.0) or on the output of an earlier step,
// so callers can keep each intermediate instead of recomputing it.
// All angles are in degrees.
//
// Inverse trig steps are split into an *Arg function returning the raw
// asin/acos argument so the caller can decide what an out-of-range
// argument means. Nothing here clamps.
package noaa

import (
	"github.com/thurmanmarka/solarpos/internal/timeutil"
)

// StandardZenith is the zenith angle (degrees) used for sunrise/sunset:
// 90°50', covering refraction at the horizon plus the solar semi-diameter.
const StandardZenith = 90.833

// GeomMeanLong is the Sun's geometric mean longitude, reduced to [0,360).
func GeomMeanLong(t float64) float64 {
	return timeutil.Mod(280.46646+t*(36000.76983+t*0.0003032), 360)
}

// GeomMeanAnomaly is the Sun's geometric mean anomaly. Not reduced.
func GeomMeanAnomaly(t float64) float64 {
	return 357.52911 + t*(35999.05029-0.0001537*t)
}

// Eccentricity of Earth's orbit (unitless).
func Eccentricity(t float64) float64 {
	return 0.016708634 - t*(0.000042037+0.0000001267*t)
}

// EquationOfCenter for mean anomaly m.
func EquationOfCenter(t, m float64) float64 {
	return timeutil.SinD(m)*(1.914602-t*(0.004817+0.000014*t)) +
		timeutil.SinD(2*m)*(0.019993-0.000101*t) +
		timeutil.SinD(3*m)*0.000289
}

// RadiusVector is the Sun-Earth distance in AU.
func RadiusVector(e, trueAnomaly float64) float64 {
	return 1.000001018 * (1 - e*e) / (1 + e*timeutil.CosD(trueAnomaly))
}

// omega is the longitude of the ascending node of the Moon's orbit, used
// by the nutation terms.
func omega(t float64) float64 {
	return 125.04 - 1934.136*t
}

// ApparentLong corrects the true longitude for nutation and aberration.
func ApparentLong(t, trueLong float64) float64 {
	return trueLong - 0.00569 - 0.00478*timeutil.SinD(omega(t))
}

// MeanObliquity of the ecliptic.
func MeanObliquity(t float64) float64 {
	seconds := 21.448 - t*(46.815+t*(0.00059-t*0.001813))
	return 23 + (26+seconds/60)/60
}

// ObliquityCorrection adds the nutation in obliquity.
func ObliquityCorrection(t, mean float64) float64 {
	return mean + 0.00256*timeutil.CosD(omega(t))
}

// RightAscension from the corrected obliquity and apparent longitude.
func RightAscension(obliquity, apparentLong float64) float64 {
	return timeutil.Atan2D(
		timeutil.CosD(obliquity)*timeutil.SinD(apparentLong),
		timeutil.CosD(apparentLong),
	)
}

// DeclinationArg is sin(δ). It is always within [-1,1] for real inputs.
func DeclinationArg(obliquity, apparentLong float64) float64 {
	return timeutil.SinD(obliquity) * timeutil.SinD(apparentLong)
}

// VarY is tan²(ε/2).
func VarY(obliquity float64) float64 {
	y := timeutil.TanD(obliquity / 2)
	return y * y
}

// EquationOfTime in minutes of time, given var y, the mean longitude l0,
// the mean anomaly m and the eccentricity e.
func EquationOfTime(y, l0, m, e float64) float64 {
	sinM := timeutil.SinD(m)

	eot := y*timeutil.SinD(2*l0) -
		2*e*sinM +
		4*e*y*sinM*timeutil.CosD(2*l0) -
		0.5*y*y*timeutil.SinD(4*l0) -
		1.25*e*e*timeutil.SinD(2*m)

	return 4 * timeutil.Rad2Deg(eot)
}

// SunriseHourAngleArg is cos(HA) of the sunrise hour angle at StandardZenith.
// It leaves [-1,1] during polar day (< -1) and polar night (> 1).
func SunriseHourAngleArg(lat, decl float64) float64 {
	return timeutil.CosD(StandardZenith)/(timeutil.CosD(lat)*timeutil.CosD(decl)) -
		timeutil.TanD(lat)*timeutil.TanD(decl)
}

// SolarNoon in local standard time, as a fraction of the day.
func SolarNoon(lon, eot, tz float64) float64 {
	return (720 - 4*lon - eot + tz*60) / timeutil.MinutesPerDay
}

// TrueSolarTime in minutes, reduced to [0,1440).
func TrueSolarTime(clockMinutes, eot, lon, tz float64) float64 {
	return timeutil.Mod(clockMinutes+eot+4*lon-60*tz, timeutil.MinutesPerDay)
}

// HourAngle converts true solar time into an hour angle, negative before
// local solar noon.
func HourAngle(tst float64) float64 {
	if tst/4 < 0 {
		return tst/4 + 180
	}
	return tst/4 - 180
}

// ZenithArg is cos(Z) from the spherical cosine rule.
func ZenithArg(lat, decl, ha float64) float64 {
	return timeutil.SinD(lat)*timeutil.SinD(decl) +
		timeutil.CosD(lat)*timeutil.CosD(decl)*timeutil.CosD(ha)
}

// AzimuthArg is the acos argument of the azimuth step. The denominator
// cos(lat)·sin(Z) is not guarded: a zero gives ±Inf or NaN.
func AzimuthArg(lat, decl, zenith float64) float64 {
	return (timeutil.SinD(lat)*timeutil.CosD(zenith) - timeutil.SinD(decl)) /
		(timeutil.CosD(lat) * timeutil.SinD(zenith))
}

// Azimuth turns acos(AzimuthArg) into degrees clockwise from north. The
// branch on the hour angle sign picks the afternoon or morning half.
func Azimuth(ha, acosDeg float64) float64 {
	if ha > 0 {
		return timeutil.Mod(acosDeg+180, 360)
	}
	return timeutil.Mod(540-acosDeg, 360)
}
