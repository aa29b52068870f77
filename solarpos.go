// Package solarpos computes the apparent position of the Sun: elevation
// corrected for atmospheric refraction, and azimuth clockwise from north.
//
// The computation is the closed-form chain of the NOAA Solar Calculator
// (after Meeus), evaluated for a civil date, a local clock time, a plain
// UTC offset and a geographic location. It is pure and stateless, so every
// function here is safe for concurrent use.
//
// The core entry point is Compute. Solve returns every intermediate of the
// chain, including solar noon, sunrise and sunset, which are not part of
// Compute's result.
package solarpos

import (
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/solarpos/internal/noaa"
	"github.com/thurmanmarka/solarpos/internal/timeutil"
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat float64 // degrees, north positive
	Lon float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
}

// Input is one evaluation request. Hour and Minute are local clock time in
// the zone TZ hours east of UTC; they are not range-checked.
type Input struct {
	Year, Month, Day int
	Hour, Minute     int
	TZ               float64 // UTC offset in hours, may be fractional
	Lat, Lon         float64 // degrees
}

// Position is the apparent position of the Sun.
type Position struct {
	Elevation float64 `json:"elevation"` // degrees, refraction-corrected
	Azimuth   float64 `json:"azimuth"`   // degrees clockwise from north, [0,360)
}

// Solution holds every intermediate of the solar position chain.
// Angles are degrees; times of day are fractions of the local day.
type Solution struct {
	Input Input

	JulianDay     float64
	JulianCentury float64

	GeomMeanLong     float64
	GeomMeanAnomaly  float64
	Eccentricity     float64
	EquationOfCenter float64
	TrueLong         float64
	TrueAnomaly      float64
	RadiusVector     float64 // AU
	ApparentLong     float64
	MeanObliquity    float64
	ObliquityCorr    float64
	RightAscension   float64
	Declination      float64
	VarY             float64
	EquationOfTime   float64 // minutes

	// SunriseHourAngle is NaN when the Sun neither rises nor sets.
	SunriseHourAngle float64
	SolarNoon        float64
	Sunrise          float64
	Sunset           float64
	SunlightDuration float64 // minutes

	TrueSolarTime     float64 // minutes
	HourAngle         float64
	Zenith            float64
	Elevation         float64 // geometric
	Refraction        float64
	ApparentElevation float64
	Azimuth           float64
}

// NamedValue is one labelled intermediate of a Solution.
type NamedValue struct {
	Name  string
	Value float64
}

// Values lists the intermediates in evaluation order, for display.
func (s Solution) Values() []NamedValue {
	return []NamedValue{
		{"julian_day", s.JulianDay},
		{"julian_century", s.JulianCentury},
		{"geom_mean_long", s.GeomMeanLong},
		{"geom_mean_anomaly", s.GeomMeanAnomaly},
		{"eccentricity", s.Eccentricity},
		{"equation_of_center", s.EquationOfCenter},
		{"true_long", s.TrueLong},
		{"true_anomaly", s.TrueAnomaly},
		{"radius_vector", s.RadiusVector},
		{"apparent_long", s.ApparentLong},
		{"mean_obliquity", s.MeanObliquity},
		{"obliquity_corr", s.ObliquityCorr},
		{"right_ascension", s.RightAscension},
		{"declination", s.Declination},
		{"var_y", s.VarY},
		{"equation_of_time", s.EquationOfTime},
		{"sunrise_hour_angle", s.SunriseHourAngle},
		{"solar_noon", s.SolarNoon},
		{"sunrise", s.Sunrise},
		{"sunset", s.Sunset},
		{"sunlight_duration", s.SunlightDuration},
		{"true_solar_time", s.TrueSolarTime},
		{"hour_angle", s.HourAngle},
		{"zenith", s.Zenith},
		{"elevation", s.Elevation},
		{"refraction", s.Refraction},
		{"apparent_elevation", s.ApparentElevation},
		{"azimuth", s.Azimuth},
	}
}

// Position returns the two-value result of the solution.
func (s Solution) Position() Position {
	return Position{Elevation: s.ApparentElevation, Azimuth: s.Azimuth}
}

// Compute returns the refraction-corrected solar elevation and the solar
// azimuth (clockwise from north) for a local civil date and clock time at
// UTC offset tz hours, at latitude lat and longitude lon (degrees).
//
// An invalid calendar date returns ErrInvalidDate. When an inverse trig
// argument falls outside [-1, 1] a *DomainError is returned and the outputs
// that depend on it are NaN; the other output keeps its value, so a failed
// azimuth still reports a usable elevation. On polar day or night the
// sunrise hour angle has no value: the error is a *DomainError for that step
// matching ErrNoRiseNoSet, and the returned position is finite but must be
// treated as belonging to a degenerate day.
func Compute(year, month, day, hour, minute int, tz, lat, lon float64) (elevation, azimuth float64, err error) {
	s, err := Solve(Input{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute,
		TZ: tz, Lat: lat, Lon: lon,
	})
	return s.ApparentElevation, s.Azimuth, err
}

// PositionAt computes the position at instant t for loc. The civil fields
// and the UTC offset are taken from t's own location; seconds are dropped.
func PositionAt(t time.Time, loc Coordinates) (Position, error) {
	elev, az, err := Compute(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(),
		timeutil.OffsetHours(t), loc.Lat, loc.Lon)
	return Position{Elevation: elev, Azimuth: az}, err
}

// Solve evaluates the full chain for in. Errors follow Compute. On polar
// day or night the sunrise hour angle is undefined: Solve still fills in
// every other value and returns a *DomainError for that step, which also
// matches ErrNoRiseNoSet.
func Solve(in Input) (Solution, error) {
	s := Solution{Input: in}

	if !timeutil.ValidDate(in.Year, in.Month, in.Day) {
		s.markFailed(true, true)
		return s, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, in.Year, in.Month, in.Day)
	}

	s.JulianDay = timeutil.JulianDay(in.Year, in.Month, in.Day, in.Hour, in.Minute, in.TZ)
	t := timeutil.JulianCentury(s.JulianDay)
	s.JulianCentury = t

	// Orbit and ecliptic.
	s.GeomMeanLong = noaa.GeomMeanLong(t)
	s.GeomMeanAnomaly = noaa.GeomMeanAnomaly(t)
	s.Eccentricity = noaa.Eccentricity(t)
	s.EquationOfCenter = noaa.EquationOfCenter(t, s.GeomMeanAnomaly)
	s.TrueLong = s.GeomMeanLong + s.EquationOfCenter
	s.TrueAnomaly = s.GeomMeanAnomaly + s.EquationOfCenter
	s.RadiusVector = noaa.RadiusVector(s.Eccentricity, s.TrueAnomaly)
	s.ApparentLong = noaa.ApparentLong(t, s.TrueLong)
	s.MeanObliquity = noaa.MeanObliquity(t)
	s.ObliquityCorr = noaa.ObliquityCorrection(t, s.MeanObliquity)

	// Equatorial.
	s.RightAscension = noaa.RightAscension(s.ObliquityCorr, s.ApparentLong)
	declArg := noaa.DeclinationArg(s.ObliquityCorr, s.ApparentLong)
	if !timeutil.InUnitRange(declArg) {
		s.markFailed(true, true)
		return s, &DomainError{Op: "declination", Arg: declArg}
	}
	s.Declination = timeutil.AsinD(declArg)
	s.VarY = noaa.VarY(s.ObliquityCorr)
	s.EquationOfTime = noaa.EquationOfTime(s.VarY, s.GeomMeanLong, s.GeomMeanAnomaly, s.Eccentricity)

	// Day events. Without a sunrise hour angle the NaN propagates into
	// sunrise, sunset and duration; the position below is still computed.
	var hasErr error
	hasArg := noaa.SunriseHourAngleArg(in.Lat, s.Declination)
	s.SunriseHourAngle = timeutil.AcosD(hasArg)
	if !timeutil.InUnitRange(hasArg) {
		hasErr = &DomainError{Op: "sunrise hour angle", Arg: hasArg, cause: ErrNoRiseNoSet}
	}
	s.SolarNoon = noaa.SolarNoon(in.Lon, s.EquationOfTime, in.TZ)
	s.Sunrise = s.SolarNoon - s.SunriseHourAngle*4/timeutil.MinutesPerDay
	s.Sunset = s.SolarNoon + s.SunriseHourAngle*4/timeutil.MinutesPerDay
	s.SunlightDuration = 8 * s.SunriseHourAngle

	// Position.
	s.TrueSolarTime = noaa.TrueSolarTime(timeutil.ClockMinutes(in.Hour, in.Minute), s.EquationOfTime, in.Lon, in.TZ)
	s.HourAngle = noaa.HourAngle(s.TrueSolarTime)

	zenArg := noaa.ZenithArg(in.Lat, s.Declination, s.HourAngle)
	if !timeutil.InUnitRange(zenArg) {
		s.markFailed(true, true)
		return s, firstErr(hasErr, &DomainError{Op: "solar zenith", Arg: zenArg})
	}
	s.Zenith = timeutil.AcosD(zenArg)
	s.Elevation = 90 - s.Zenith
	s.Refraction = noaa.Refraction(s.Elevation)
	s.ApparentElevation = s.Elevation + s.Refraction

	azArg := noaa.AzimuthArg(in.Lat, s.Declination, s.Zenith)
	if !timeutil.InUnitRange(azArg) {
		s.markFailed(false, true)
		return s, firstErr(hasErr, &DomainError{Op: "solar azimuth", Arg: azArg})
	}
	s.Azimuth = noaa.Azimuth(s.HourAngle, timeutil.AcosD(azArg))

	return s, hasErr
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// markFailed sets the outputs that could not be computed to NaN.
func (s *Solution) markFailed(elevation, azimuth bool) {
	nan := math.NaN()
	if elevation {
		s.Zenith, s.Elevation, s.Refraction, s.ApparentElevation = nan, nan, nan, nan
	}
	if azimuth {
		s.Azimuth = nan
	}
}
