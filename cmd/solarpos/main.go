package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/solarpos"
	"github.com/thurmanmarka/solarpos/internal/timeutil"
)

func main() {
	log.SetFlags(0)

	// No args or a leading flag: position mode. Otherwise a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runPosition(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "cross":
		runCross(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `solarpos – where the Sun is

Usage:
  solarpos [flags]          # solar elevation and azimuth (default mode)
  solarpos cross [flags]    # next time the Sun crosses an elevation

Default mode flags:
  -lat float
        latitude in degrees (north positive)
  -lon float
        longitude in degrees (east positive, west negative)
  -date string
        local date YYYY-MM-DD (defaults to today)
  -time string
        local clock time HH:MM (defaults to now)
  -tz float
        UTC offset in hours, e.g. -7 or 5.5
  -zone string
        IANA zone; overrides -tz with the offset in effect at -date -time
  -detail
        also print every intermediate, solar noon, sunrise and sunset
  -json
        output result as JSON

For cross mode:
  solarpos cross -h
`)
}

// ---------------------
// Position (default) mode
// ---------------------

func runPosition(args []string) {
	fs := flag.NewFlagSet("solarpos", flag.ExitOnError)

	lat := fs.Float64("lat", 0, "latitude in degrees (north positive)")
	lon := fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
	dateS := fs.String("date", "", "local date YYYY-MM-DD (defaults to today)")
	timeS := fs.String("time", "", "local clock time HH:MM (defaults to now)")
	tz := fs.Float64("tz", 0, "UTC offset in hours, e.g. -7 or 5.5")
	zone := fs.String("zone", "", "IANA time zone (e.g. America/Denver); overrides -tz")
	detail := fs.Bool("detail", false, "print every intermediate, noon, sunrise and sunset")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: solarpos [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	if *lat == 0 && *lon == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Use -lat and -lon to set a real location.")
	}

	in, err := buildInput(*dateS, *timeS, *tz, *zone, *lat, *lon)
	if err != nil {
		log.Fatalf("%v", err)
	}

	s, err := solarpos.Solve(in)
	if err != nil && !errors.Is(err, solarpos.ErrDomain) {
		log.Fatalf("error computing position: %v", err)
	}

	if *jsonOut {
		printJSON(s, err, *detail)
	} else {
		printHuman(s, err, *detail)
	}
}

// buildInput resolves the civil fields and the UTC offset from the flags.
func buildInput(dateS, timeS string, tz float64, zone string, lat, lon float64) (solarpos.Input, error) {
	loc := timeutil.FixedZone(tz)
	if zone != "" {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return solarpos.Input{}, fmt.Errorf("invalid -zone %q: %v", zone, err)
		}
		loc = l
	}

	now := time.Now().In(loc)
	y, m, d := now.Year(), int(now.Month()), now.Day()
	hh, mm := now.Hour(), now.Minute()

	if dateS != "" {
		if _, err := fmt.Sscanf(dateS, "%d-%d-%d", &y, &m, &d); err != nil {
			return solarpos.Input{}, fmt.Errorf("invalid -date %q: %v", dateS, err)
		}
	}
	if timeS != "" {
		if _, err := fmt.Sscanf(timeS, "%d:%d", &hh, &mm); err != nil {
			return solarpos.Input{}, fmt.Errorf("invalid -time %q: %v", timeS, err)
		}
	}

	if zone != "" {
		tz = timeutil.OffsetHours(time.Date(y, time.Month(m), d, hh, mm, 0, 0, loc))
	}

	return solarpos.Input{
		Year: y, Month: m, Day: d,
		Hour: hh, Minute: mm,
		TZ: tz, Lat: lat, Lon: lon,
	}, nil
}

// ---------------------
// Cross subcommand
// ---------------------

func runCross(args []string) {
	fs := flag.NewFlagSet("cross", flag.ExitOnError)

	lat := fs.Float64("lat", 0, "latitude in degrees (north positive)")
	lon := fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
	target := fs.Float64("elev", 0, "apparent elevation threshold in degrees")
	dirS := fs.String("dir", "setting", "direction: rising or setting")
	zone := fs.String("zone", "UTC", "IANA time zone for the start time and output")
	fromS := fs.String("from", "", "start time 'YYYY-MM-DDTHH:MM' (defaults to now)")
	days := fs.Int("days", 1, "search window in days")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: solarpos cross [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	loc, err := time.LoadLocation(*zone)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", *zone, err)
	}

	var dir solarpos.Direction
	switch strings.ToLower(*dirS) {
	case "rising", "rise", "up":
		dir = solarpos.Rising
	case "setting", "set", "down":
		dir = solarpos.Setting
	default:
		log.Fatalf("unknown -dir %q (use rising or setting)", *dirS)
	}

	from := time.Now().In(loc)
	if *fromS != "" {
		from, err = time.ParseInLocation("2006-01-02T15:04", *fromS, loc)
		if err != nil {
			log.Fatalf("could not parse -from %q: %v", *fromS, err)
		}
	}

	coords := solarpos.Coordinates{Lat: *lat, Lon: *lon}
	at, err := solarpos.NextElevationCrossing(from, coords, *target, dir,
		time.Duration(*days)*24*time.Hour)
	if err != nil {
		log.Fatalf("no %s crossing of %.2f° within %d day(s) of %s: %v",
			dir, *target, *days, from.Format(time.RFC3339), err)
	}

	fmt.Printf("Sun %s through %.2f° at %s (%s)\n", dir, *target, at.In(loc).Format(time.RFC3339), loc)
}

// ---------------------
// Output
// ---------------------

func dms(deg float64) string {
	if math.IsNaN(deg) {
		return "undefined"
	}
	return fmt.Sprintf("%.1s", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

func printHuman(s solarpos.Solution, err error, detail bool) {
	in := s.Input
	fmt.Printf("Sun position for lat=%.6f lon=%.6f\n", in.Lat, in.Lon)
	fmt.Printf("Local: %04d-%02d-%02d %02d:%02d (UTC%+g)\n\n", in.Year, in.Month, in.Day, in.Hour, in.Minute, in.TZ)

	fmt.Printf("Elevation: %9.4f°  %s\n", s.ApparentElevation, dms(s.ApparentElevation))
	fmt.Printf("Azimuth:   %9.4f°  %s\n", s.Azimuth, dms(s.Azimuth))
	if err != nil {
		fmt.Printf("\nwarning: %v\n", err)
	}

	if !detail {
		return
	}

	fmt.Println()
	for _, v := range s.Values() {
		fmt.Printf("  %-20s %.9g\n", v.Name, v.Value)
	}

	fmt.Println()
	rs, rsErr := s.RiseSet()
	if rsErr != nil {
		fmt.Printf("Noon/rise/set: %v\n", rsErr)
		return
	}
	fmt.Printf("Noon: %s\n", rs.Noon.Format(time.RFC3339))
	fmt.Printf("Rise: %s\n", rs.Rise.Format(time.RFC3339))
	fmt.Printf("Set:  %s\n", rs.Set.Format(time.RFC3339))
}

type jsonOutput struct {
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	Date      string              `json:"date"` // YYYY-MM-DD
	Time      string              `json:"time"` // HH:MM
	TZ        float64             `json:"tz"`
	Elevation *float64            `json:"elevation"`
	Azimuth   *float64            `json:"azimuth"`
	Error     string              `json:"error,omitempty"`
	Noon      *time.Time          `json:"noon,omitempty"`
	Rise      *time.Time          `json:"rise,omitempty"`
	Set       *time.Time          `json:"set,omitempty"`
	Solution  map[string]*float64 `json:"solution,omitempty"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func printJSON(s solarpos.Solution, err error, detail bool) {
	in := s.Input
	out := jsonOutput{
		Latitude:  in.Lat,
		Longitude: in.Lon,
		Date:      fmt.Sprintf("%04d-%02d-%02d", in.Year, in.Month, in.Day),
		Time:      fmt.Sprintf("%02d:%02d", in.Hour, in.Minute),
		TZ:        in.TZ,
		Elevation: finite(s.ApparentElevation),
		Azimuth:   finite(s.Azimuth),
	}
	if err != nil {
		out.Error = err.Error()
	}

	if detail {
		out.Solution = make(map[string]*float64)
		for _, v := range s.Values() {
			out.Solution[v.Name] = finite(v.Value)
		}
		if rs, err := s.RiseSet(); err == nil {
			out.Noon, out.Rise, out.Set = &rs.Noon, &rs.Rise, &rs.Set
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}
