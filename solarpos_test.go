package solarpos_test

import (
	"errors"
	"math"
	"testing"

	"github.com/thurmanmarka/solarpos"
)

// Reference values from the NOAA Solar Calculator spreadsheet formulas.
func TestCompute_ReferenceValues(t *testing.T) {
	tests := []struct {
		name                string
		year, month, day    int
		hour, minute        int
		tz, lat, lon        float64
		wantElev, wantAzim  float64
	}{
		{"Boulder solstice noon", 2020, 6, 20, 12, 0, -7, 40, -105, 73.43728377079597, 178.58829319935774},
		{"Phoenix morning", 2025, 11, 28, 9, 30, -7, 33.4484, -112.074, 22.34098699219613, 138.08848673753266},
		{"Sydney afternoon", 2021, 12, 21, 15, 45, 10, -33.8688, 151.2093, 38.77557415411303, 265.6709501214278},
		{"London equinox morning", 2022, 3, 20, 8, 0, 0, 51.5074, -0.1278, 16.94063103061377, 112.66825651063539},
		{"Mumbai sunrise half-hour offset", 2023, 1, 15, 7, 20, 5.5, 19.076, 72.8777, 0.7683042889439212, 112.61732287656469},
		{"Boulder civil dusk", 2020, 6, 20, 20, 30, -7, 40, -105, -9.622453845814228, 312.0235924690344},
		{"Boulder night", 2020, 6, 20, 23, 0, -7, 40, -105, -24.932721017863784, 344.3476754208302},
		{"Quito near zenith", 2024, 9, 22, 12, 15, -5, -0.1807, -78.4678, 87.8377646168662, 272.79737081098017},
	}

	const tol = 1e-6

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elev, az, err := solarpos.Compute(tt.year, tt.month, tt.day, tt.hour, tt.minute, tt.tz, tt.lat, tt.lon)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}

			if math.Abs(elev-tt.wantElev) > tol {
				t.Errorf("elevation = %.9f, want %.9f", elev, tt.wantElev)
			}
			if math.Abs(az-tt.wantAzim) > tol {
				t.Errorf("azimuth = %.9f, want %.9f", az, tt.wantAzim)
			}

			t.Logf("%s: elevation=%.4f° azimuth=%.4f°", tt.name, elev, az)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	e1, a1, err := solarpos.Compute(2020, 6, 20, 12, 0, -7, 40, -105)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		e2, a2, err := solarpos.Compute(2020, 6, 20, 12, 0, -7, 40, -105)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		if e1 != e2 || a1 != a2 {
			t.Fatalf("run %d: got (%v, %v), first run (%v, %v)", i, e2, a2, e1, a1)
		}
	}
}

func TestCompute_Range(t *testing.T) {
	lats := []float64{-66, -45, -10, 0, 10, 33.4, 51.5, 66}
	lons := []float64{-179, -105, -0.1, 0, 72.9, 151.2, 179}

	for _, lat := range lats {
		for _, lon := range lons {
			tz := math.Round(lon / 15)
			for month := 1; month <= 12; month += 3 {
				for hour := 0; hour < 24; hour += 5 {
					elev, az, err := solarpos.Compute(2024, month, 15, hour, 17, tz, lat, lon)
					if err != nil {
						t.Fatalf("lat=%v lon=%v %02d-15 %02d:17: %v", lat, lon, month, hour, err)
					}
					if elev < -90 || elev > 90 {
						t.Errorf("lat=%v lon=%v %02d-15 %02d:17: elevation %v out of range", lat, lon, month, hour, elev)
					}
					if az < 0 || az >= 360 {
						t.Errorf("lat=%v lon=%v %02d-15 %02d:17: azimuth %v out of range", lat, lon, month, hour, az)
					}
				}
			}
		}
	}
}

func TestCompute_AzimuthSymmetryAroundNoon(t *testing.T) {
	// Solar noon in Boulder on 2020-06-20 is at 12:01:45 local.
	_, before, err := solarpos.Compute(2020, 6, 20, 11, 2, -7, 40, -105)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	_, after, err := solarpos.Compute(2020, 6, 20, 13, 2, -7, 40, -105)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if before >= 180 || after <= 180 {
		t.Fatalf("expected morning azimuth < 180 < afternoon azimuth, got %.3f and %.3f", before, after)
	}
	if d := (before + after) / 2; math.Abs(d-180) > 1 {
		t.Errorf("azimuths %.3f and %.3f are not mirrored around 180 (mean %.3f)", before, after, d)
	}
}

func TestCompute_InvalidDate(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
	}{
		{"February 30", 2021, 2, 30},
		{"February 29 non-leap", 2023, 2, 29},
		{"month 13", 2021, 13, 1},
		{"month 0", 2021, 0, 10},
		{"day 0", 2021, 5, 0},
		{"April 31", 2021, 4, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elev, az, err := solarpos.Compute(tt.year, tt.month, tt.day, 12, 0, 0, 40, -105)
			if !errors.Is(err, solarpos.ErrInvalidDate) {
				t.Fatalf("Compute() error = %v, want ErrInvalidDate", err)
			}
			if !math.IsNaN(elev) || !math.IsNaN(az) {
				t.Errorf("Compute() = (%v, %v), want NaN outputs", elev, az)
			}
		})
	}

	if _, _, err := solarpos.Compute(2024, 2, 29, 12, 0, 0, 40, -105); err != nil {
		t.Errorf("2024-02-29 is a leap day, got error %v", err)
	}
}

func TestCompute_ClockOverflowShiftsDay(t *testing.T) {
	// 36:00 on the 20th is 12:00 on the 21st.
	e1, a1, err := solarpos.Compute(2020, 6, 20, 36, 0, -7, 40, -105)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	e2, a2, err := solarpos.Compute(2020, 6, 21, 12, 0, -7, 40, -105)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if math.Abs(e1-e2) > 1e-9 || math.Abs(a1-a2) > 1e-9 {
		t.Errorf("hour=36 gave (%v, %v), next-day noon gave (%v, %v)", e1, a1, e2, a2)
	}
}

func TestSolve_Intermediates(t *testing.T) {
	s, err := solarpos.Solve(solarpos.Input{
		Year: 2020, Month: 6, Day: 20, Hour: 12, Minute: 0,
		TZ: -7, Lat: 40, Lon: -105,
	})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
		tol       float64
	}{
		{"JulianDay", s.JulianDay, 2459021.2916666665, 1e-9},
		{"JulianCentury", s.JulianCentury, 0.20468971024412078, 1e-12},
		{"RadiusVector", s.RadiusVector, 1.01623208304266, 1e-9},
		{"ObliquityCorr", s.ObliquityCorr, 23.436667612100536, 1e-9},
		{"RightAscension", s.RightAscension, 89.88194509471752, 1e-7},
		{"Declination", s.Declination, 23.436623229207292, 1e-7},
		{"EquationOfTime", s.EquationOfTime, -1.7547862886516012, 1e-7},
		{"SolarNoon", s.SolarNoon, 0.5012186015893414, 1e-9},
		{"Sunrise", s.Sunrise, 0.18841719520857358, 1e-8},
		{"Sunset", s.Sunset, 0.8140200079701092, 1e-8},
		{"SunlightDuration", s.SunlightDuration, 900.8680503766112, 1e-5},
		{"TrueSolarTime", s.TrueSolarTime, 718.2452137113484, 1e-7},
		{"HourAngle", s.HourAngle, -0.438696572162911, 1e-7},
		{"Zenith", s.Zenith, 16.567516967855244, 1e-6},
	}

	for _, c := range checks {
		if math.Abs(c.got-c.want) > c.tol {
			t.Errorf("%s = %.12f, want %.12f", c.name, c.got, c.want)
		}
	}

	if got := s.Position(); got.Elevation != s.ApparentElevation || got.Azimuth != s.Azimuth {
		t.Errorf("Position() = %+v, want elevation %v azimuth %v", got, s.ApparentElevation, s.Azimuth)
	}
	if math.Abs(s.ApparentElevation-(s.Elevation+s.Refraction)) > 1e-12 {
		t.Errorf("ApparentElevation %v != Elevation %v + Refraction %v", s.ApparentElevation, s.Elevation, s.Refraction)
	}
	if len(s.Values()) != 28 {
		t.Errorf("Values() has %d entries, want 28", len(s.Values()))
	}
}

func TestSolve_PolarNight(t *testing.T) {
	// North Pole at the December solstice: the Sun never rises, so the
	// sunrise hour angle has no real value.
	s, err := solarpos.Solve(solarpos.Input{
		Year: 2020, Month: 12, Day: 21, Hour: 12, Minute: 0,
		TZ: 0, Lat: 90, Lon: 0,
	})
	assertNoRiseNoSet(t, "Solve()", err)

	if !math.IsNaN(s.SunriseHourAngle) {
		t.Fatalf("SunriseHourAngle = %v, want NaN", s.SunriseHourAngle)
	}
	if !math.IsNaN(s.Sunrise) || !math.IsNaN(s.Sunset) || !math.IsNaN(s.SunlightDuration) {
		t.Errorf("sunrise/sunset/duration = %v/%v/%v, want NaN", s.Sunrise, s.Sunset, s.SunlightDuration)
	}

	// At the pole the elevation is the declination.
	if math.Abs(s.ApparentElevation-(-23.4237)) > 0.01 {
		t.Errorf("ApparentElevation = %.4f, want about -23.42", s.ApparentElevation)
	}

	_, err = s.RiseSet()
	var de *solarpos.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("RiseSet() error = %v, want *DomainError", err)
	}
	if de.Op != "sunrise hour angle" {
		t.Errorf("DomainError.Op = %q, want %q", de.Op, "sunrise hour angle")
	}
	if de.Arg <= 1 {
		t.Errorf("DomainError.Arg = %v, want > 1 for polar night", de.Arg)
	}
	if !errors.Is(err, solarpos.ErrNoRiseNoSet) || !errors.Is(err, solarpos.ErrDomain) {
		t.Errorf("RiseSet() error %v should match ErrNoRiseNoSet and ErrDomain", err)
	}
}

func TestSolve_PolarDay(t *testing.T) {
	s, err := solarpos.Solve(solarpos.Input{
		Year: 2021, Month: 6, Day: 21, Hour: 0, Minute: 0,
		TZ: 1, Lat: 78.22, Lon: 15.65, // Longyearbyen
	})
	assertNoRiseNoSet(t, "Solve()", err)
	if math.IsNaN(s.Azimuth) {
		t.Errorf("midnight sun azimuth is NaN, want a value")
	}
	if s.ApparentElevation <= 0 {
		t.Errorf("midnight sun elevation = %.3f, want > 0", s.ApparentElevation)
	}

	_, err = s.DaylightHours()
	var de *solarpos.DomainError
	if !errors.As(err, &de) || de.Arg >= -1 {
		t.Fatalf("DaylightHours() error = %v, want DomainError with Arg < -1", err)
	}
}

func TestDomainError(t *testing.T) {
	var err error = &solarpos.DomainError{Op: "solar azimuth", Arg: math.Inf(1)}

	if !errors.Is(err, solarpos.ErrDomain) {
		t.Errorf("errors.Is(%v, ErrDomain) = false", err)
	}
	if errors.Is(err, solarpos.ErrNoRiseNoSet) {
		t.Errorf("azimuth DomainError should not match ErrNoRiseNoSet")
	}
	if got, want := err.Error(), "solarpos: solar azimuth: argument +Inf outside [-1, 1]"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func assertNoRiseNoSet(t *testing.T, what string, err error) {
	t.Helper()
	var de *solarpos.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("%s error = %v, want *DomainError", what, err)
	}
	if de.Op != "sunrise hour angle" {
		t.Errorf("%s DomainError.Op = %q, want %q", what, de.Op, "sunrise hour angle")
	}
	if !errors.Is(err, solarpos.ErrNoRiseNoSet) || !errors.Is(err, solarpos.ErrDomain) {
		t.Errorf("%s error %v should match ErrNoRiseNoSet and ErrDomain", what, err)
	}
}

func TestCompute_PolesReportNoRiseNoSetEveryHour(t *testing.T) {
	cases := []struct {
		name             string
		year, month, day int
		lat              float64
	}{
		{"north pole polar night", 2020, 12, 21, 90},
		{"south pole polar night", 2020, 6, 21, -90},
		{"north pole polar day", 2020, 6, 21, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for hour := 0; hour < 24; hour++ {
				elev, _, err := solarpos.Compute(tc.year, tc.month, tc.day, hour, 0, 0, tc.lat, 0)
				if !errors.Is(err, solarpos.ErrNoRiseNoSet) {
					t.Errorf("%02d:00: err = %v, want ErrNoRiseNoSet", hour, err)
				}
				if !errors.Is(err, solarpos.ErrDomain) {
					t.Errorf("%02d:00: err = %v, want ErrDomain", hour, err)
				}
				if math.IsNaN(elev) {
					t.Errorf("%02d:00: elevation is NaN, want the finite value", hour)
				}
			}
		})
	}
}
