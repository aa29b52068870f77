package solarpos_test

import (
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/solarpos"
	"github.com/thurmanmarka/solarpos/internal/crosscheck"
)

type crossCase struct {
	name string
	in   solarpos.Input
}

var crossCases = []crossCase{
	{"Boulder solstice", solarpos.Input{Year: 2020, Month: 6, Day: 20, Hour: 12, TZ: -7, Lat: 40, Lon: -105}},
	{"Phoenix late autumn", solarpos.Input{Year: 2025, Month: 11, Day: 28, Hour: 9, Minute: 30, TZ: -7, Lat: 33.4484, Lon: -112.074}},
	{"London equinox", solarpos.Input{Year: 2022, Month: 3, Day: 20, Hour: 10, TZ: 0, Lat: 51.5074, Lon: -0.1278}},
	{"Sydney summer", solarpos.Input{Year: 2021, Month: 12, Day: 21, Hour: 15, Minute: 45, TZ: 10, Lat: -33.8688, Lon: 151.2093}},
	{"Mumbai winter", solarpos.Input{Year: 2023, Month: 1, Day: 15, Hour: 13, Minute: 5, TZ: 5.5, Lat: 19.076, Lon: 72.8777}},
}

func instant(in solarpos.Input) time.Time {
	loc := time.FixedZone("", int(math.Round(in.TZ*3600)))
	return time.Date(in.Year, time.Month(in.Month), in.Day, in.Hour, in.Minute, 0, 0, loc)
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return math.Abs(d)
}

func TestCrossCheck_Meeus(t *testing.T) {
	for _, tc := range crossCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := solarpos.Solve(tc.in)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			ref := crosscheck.Meeus(s.JulianDay)

			if d := math.Abs(s.Declination - ref.Dec); d > 0.01 {
				t.Errorf("declination %.5f vs meeus %.5f (diff %.5f°)", s.Declination, ref.Dec, d)
			}
			if d := angleDiff(s.RightAscension, ref.RA); d > 0.01 {
				t.Errorf("right ascension %.5f vs meeus %.5f (diff %.5f°)", s.RightAscension, ref.RA, d)
			}
			if d := math.Abs(s.RadiusVector - ref.Radius); d > 1e-4 {
				t.Errorf("radius vector %.6f vs meeus %.6f", s.RadiusVector, ref.Radius)
			}
		})
	}
}

func TestCrossCheck_SunCalc(t *testing.T) {
	for _, tc := range crossCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := solarpos.Solve(tc.in)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			elev, az := crosscheck.SunCalc(instant(tc.in), tc.in.Lat, tc.in.Lon)

			// suncalc reports the geometric elevation.
			if d := math.Abs(s.Elevation - elev); d > 0.2 {
				t.Errorf("elevation %.3f vs suncalc %.3f", s.Elevation, elev)
			}
			if d := angleDiff(s.Azimuth, az); d > 0.3 {
				t.Errorf("azimuth %.3f vs suncalc %.3f", s.Azimuth, az)
			}
			t.Logf("%s: ours (%.3f, %.3f) suncalc (%.3f, %.3f)", tc.name, s.Elevation, s.Azimuth, elev, az)
		})
	}
}

func TestCrossCheck_GoSunrise(t *testing.T) {
	for _, tc := range crossCases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			in.Hour, in.Minute = 12, 0

			s, err := solarpos.Solve(in)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			rs, err := s.RiseSet()
			if err != nil {
				t.Fatalf("RiseSet() error = %v", err)
			}

			refRise, refSet := crosscheck.RiseSet(in.Lat, in.Lon, in.Year, time.Month(in.Month), in.Day)

			if d := rs.Rise.Sub(refRise); d < -3*time.Minute || d > 3*time.Minute {
				t.Errorf("sunrise %s vs go-sunrise %s", rs.Rise.UTC().Format(time.RFC3339), refRise.Format(time.RFC3339))
			}
			if d := rs.Set.Sub(refSet); d < -3*time.Minute || d > 3*time.Minute {
				t.Errorf("sunset %s vs go-sunrise %s", rs.Set.UTC().Format(time.RFC3339), refSet.Format(time.RFC3339))
			}
		})
	}
}
