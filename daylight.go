package solarpos

import (
	"math"
	"time"

	"github.com/thurmanmarka/solarpos/internal/noaa"
	"github.com/thurmanmarka/solarpos/internal/timeutil"
)

// RiseSet holds solar noon, sunrise and sunset of the solution's date, in
// the fixed zone of the input's UTC offset.
type RiseSet struct {
	Noon time.Time
	Rise time.Time
	Set  time.Time
}

// RiseSet converts the day-event fractions of s into clock times.
//
// When the sunrise hour angle is undefined (polar day or night) it returns
// a *DomainError for the hour-angle step that also matches ErrNoRiseNoSet.
func (s Solution) RiseSet() (RiseSet, error) {
	if err := s.daylightErr(); err != nil {
		return RiseSet{}, err
	}

	in := s.Input
	loc := timeutil.FixedZone(in.TZ)

	return RiseSet{
		Noon: timeutil.DayFractionToTime(in.Year, in.Month, in.Day, s.SolarNoon, loc),
		Rise: timeutil.DayFractionToTime(in.Year, in.Month, in.Day, s.Sunrise, loc),
		Set:  timeutil.DayFractionToTime(in.Year, in.Month, in.Day, s.Sunset, loc),
	}, nil
}

// DaylightHours returns the sunlight duration in hours, with the same
// errors as RiseSet.
func (s Solution) DaylightHours() (float64, error) {
	if err := s.daylightErr(); err != nil {
		return 0, err
	}
	return s.SunlightDuration / 60, nil
}

func (s Solution) daylightErr() error {
	if !math.IsNaN(s.SunriseHourAngle) {
		return nil
	}
	arg := noaa.SunriseHourAngleArg(s.Input.Lat, s.Declination)
	return &DomainError{Op: "sunrise hour angle", Arg: arg, cause: ErrNoRiseNoSet}
}
