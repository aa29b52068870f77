package solarpos_test

import (
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/solarpos"
)

func TestRiseSet_Boulder(t *testing.T) {
	s, err := solarpos.Solve(solarpos.Input{
		Year: 2020, Month: 6, Day: 20, Hour: 12, Minute: 0,
		TZ: -7, Lat: 40, Lon: -105,
	})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	rs, err := s.RiseSet()
	if err != nil {
		t.Fatalf("RiseSet() error = %v", err)
	}

	loc := time.FixedZone("UTC-07:00", -7*3600)
	want := solarpos.RiseSet{
		Noon: time.Date(2020, time.June, 20, 12, 1, 45, 0, loc),
		Rise: time.Date(2020, time.June, 20, 4, 31, 19, 0, loc),
		Set:  time.Date(2020, time.June, 20, 19, 32, 11, 0, loc),
	}

	for _, c := range []struct {
		name      string
		got, want time.Time
	}{
		{"noon", rs.Noon, want.Noon},
		{"rise", rs.Rise, want.Rise},
		{"set", rs.Set, want.Set},
	} {
		if d := c.got.Sub(c.want); d < -time.Second || d > time.Second {
			t.Errorf("%s = %s, want %s", c.name, c.got.Format(time.RFC3339), c.want.Format(time.RFC3339))
		}
		if _, off := c.got.Zone(); off != -7*3600 {
			t.Errorf("%s offset = %d, want %d", c.name, off, -7*3600)
		}
	}

	hours, err := s.DaylightHours()
	if err != nil {
		t.Fatalf("DaylightHours() error = %v", err)
	}
	if math.Abs(hours-15.0145) > 0.001 {
		t.Errorf("DaylightHours() = %.4f, want about 15.0145", hours)
	}
}

func TestDaylightHours_Equator(t *testing.T) {
	// At the equator, daylight should be ~12 hours year-round.
	for _, month := range []int{3, 6, 9, 12} {
		s, err := solarpos.Solve(solarpos.Input{
			Year: 2025, Month: month, Day: 21, Hour: 12,
			TZ: -5, Lat: -0.1807, Lon: -78.4678,
		})
		if err != nil {
			t.Fatalf("Solve() error = %v", err)
		}

		hours, err := s.DaylightHours()
		if err != nil {
			t.Fatalf("DaylightHours() error = %v for month %d", err, month)
		}

		if math.Abs(hours-12.0) > 0.25 {
			t.Errorf("Quito 2025-%02d-21: got %.2f hours, expected ~12 hours", month, hours)
		}

		t.Logf("Quito 2025-%02d-21: %.2f hours", month, hours)
	}
}
