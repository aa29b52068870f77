package timeutil

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// -----------------------------
// Civil date -> Julian Day
// -----------------------------

// epochJD is the Julian Day of 1899-12-31 00:00, the day-zero the NOAA
// spreadsheet counts from.
var epochJD = julian.CalendarGregorianToJD(1899, 12, 31)

// MinutesPerDay is the length of a civil day in minutes.
const MinutesPerDay = 1440.0

// ValidDate reports whether (year, month, day) names a real proleptic
// Gregorian calendar date. time.Date normalizes overflow (Feb 30 -> Mar 2),
// so a date is valid exactly when it survives the round trip.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return y == year && int(m) == month && d == day
}

// DaysSinceEpoch returns the whole number of days from 1899-12-31 to the
// given calendar date. Dates before the epoch are negative.
func DaysSinceEpoch(year, month, day int) int {
	jd := julian.CalendarGregorianToJD(year, month, float64(day))
	return int(math.Round(jd - epochJD))
}

// JulianDay returns the Julian Day for a local civil date and clock time at
// a fixed UTC offset tz (hours). Clock fields are not range-checked; values
// outside [0,24) x [0,60) simply shift the day fraction.
func JulianDay(year, month, day, hour, minute int, tz float64) float64 {
	days := DaysSinceEpoch(year, month, day)
	return float64(days) + 2415018.5 + ClockMinutes(hour, minute)/MinutesPerDay - tz/24 + 1
}

// JulianCentury returns centuries since J2000.0.
func JulianCentury(jd float64) float64 {
	return base.J2000Century(jd)
}

// ClockMinutes converts a wall-clock time into minutes past local midnight.
func ClockMinutes(hour, minute int) float64 {
	return float64(hour*60 + minute)
}

// DayFractionToTime converts a fraction of the local day into a time on the
// given date in loc. Fractions outside [0,1) roll over into the neighbouring
// day. The result is rounded to the nearest second.
func DayFractionToTime(year, month, day int, frac float64, loc *time.Location) time.Time {
	midnight := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	sec := int64(math.Round(frac * MinutesPerDay * 60))
	return midnight.Add(time.Duration(sec) * time.Second)
}

// FixedZone builds a location for a plain UTC offset in (possibly
// fractional) hours, e.g. -7 or 5.5.
func FixedZone(tz float64) *time.Location {
	offset := int(math.Round(tz * 3600))
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone(formatOffset(offset), offset)
}

func formatOffset(sec int) string {
	sign := '+'
	if sec < 0 {
		sign = '-'
		sec = -sec
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, sec/3600, (sec%3600)/60)
}

// OffsetHours returns t's UTC offset in hours.
func OffsetHours(t time.Time) float64 {
	_, off := t.Zone()
	return float64(off) / 3600
}

// -----------------------------
// Degree helpers backed by unit.Angle.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return unit.AngleFromDeg(d).Rad()
}

func Rad2Deg(r float64) float64 {
	return unit.Angle(r).Deg()
}

func SinD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Sin()
}

func CosD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Cos()
}

func TanD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Tan()
}

// AsinD returns asin(x) in degrees. x outside [-1,1] yields NaN.
func AsinD(x float64) float64 {
	return Rad2Deg(math.Asin(x))
}

// AcosD returns acos(x) in degrees. x outside [-1,1] yields NaN.
func AcosD(x float64) float64 {
	return Rad2Deg(math.Acos(x))
}

// Atan2D returns atan2(y, x) in degrees, in (-180, 180].
func Atan2D(y, x float64) float64 {
	return Rad2Deg(math.Atan2(y, x))
}

// Mod is a floored modulo: the result has the sign of y, so Mod(-1, 360)
// is 359 rather than -1.
func Mod(x, y float64) float64 {
	return unit.PMod(x, y)
}

func Normalize360(d float64) float64 {
	return Mod(d, 360.0)
}

// InUnitRange reports whether x is a valid asin/acos argument. NaN is not.
func InUnitRange(x float64) bool {
	return x >= -1 && x <= 1
}
