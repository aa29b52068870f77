package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thurmanmarka/solarpos"
	"github.com/thurmanmarka/solarpos/internal/crosscheck"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// angleDiff returns a-b folded into (-180, 180].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// refRow is one reference observation.
type refRow struct {
	line      int
	in        solarpos.Input
	elevation float64
	azimuth   float64
}

// CSV format:
//
// date,time,tz,lat,lon,elevation,azimuth
// 2020-06-20,12:00,-7,40,-105,73.4373,178.5883
//
// - date is YYYY-MM-DD, time is local HH:MM
// - tz is the UTC offset in hours
// - elevation (refraction-corrected) and azimuth are reference degrees,
//   e.g. copied from the NOAA Solar Calculator spreadsheet.
func main() {
	log.SetFlags(0)

	var (
		refCSV     = flag.String("refcsv", "", "path to reference CSV (date,time,tz,lat,lon,elevation,azimuth)")
		outCSV     = flag.String("outcsv", "", "optional path to write per-row error CSV")
		verbose    = flag.Bool("verbose", false, "print per-row errors instead of only the summary")
		crossCheck = flag.Bool("crosscheck", false, "also compare against meeus and suncalc")
	)
	flag.Parse()

	if *refCSV == "" {
		log.Fatalf("missing -refcsv (path to reference CSV)")
	}

	f, err := os.Open(*refCSV)
	if err != nil {
		log.Fatalf("failed to open refcsv %q: %v", *refCSV, err)
	}
	defer f.Close()

	rows, skipped, err := readRows(f)
	if err != nil {
		log.Fatalf("failed to read CSV: %v", err)
	}

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{
			"date", "time", "lat", "lon",
			"elevation", "azimuth",
			"elev_err", "az_err",
			"suncalc_elev_err", "suncalc_az_err", "meeus_dec_err",
		}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	var (
		elevStats, azStats     stats // absolute
		elevSigned, azSigned   stats // ours - ref
		scElevStats, scAzStats stats
		meeusDecStats          stats
		domainErrs             int
	)

	for _, r := range rows {
		s, err := solarpos.Solve(r.in)
		if err != nil {
			if !errors.Is(err, solarpos.ErrDomain) {
				log.Printf("row %d: %v, skipping", r.line, err)
				skipped++
				continue
			}
			domainErrs++
			log.Printf("row %d: %v", r.line, err)
		}

		elevErr := s.ApparentElevation - r.elevation
		azErr := angleDiff(s.Azimuth, r.azimuth)
		elevStats.add(math.Abs(elevErr))
		azStats.add(math.Abs(azErr))
		elevSigned.add(elevErr)
		azSigned.add(azErr)

		scElevErr, scAzErr, decErr := math.NaN(), math.NaN(), math.NaN()
		if *crossCheck {
			at := instant(r.in)
			scElev, scAz := crosscheck.SunCalc(at, r.in.Lat, r.in.Lon)
			scElevErr = s.Elevation - scElev
			scAzErr = angleDiff(s.Azimuth, scAz)
			decErr = s.Declination - crosscheck.Meeus(s.JulianDay).Dec

			scElevStats.add(math.Abs(scElevErr))
			scAzStats.add(math.Abs(scAzErr))
			meeusDecStats.add(math.Abs(decErr))
		}

		date := fmt.Sprintf("%04d-%02d-%02d", r.in.Year, r.in.Month, r.in.Day)
		clock := fmt.Sprintf("%02d:%02d", r.in.Hour, r.in.Minute)

		if *verbose {
			fmt.Printf("%s %s (%.4f,%.4f): elev err=%+.4f° (got=%.4f ref=%.4f), az err=%+.4f° (got=%.4f ref=%.4f)\n",
				date, clock, r.in.Lat, r.in.Lon,
				elevErr, s.ApparentElevation, r.elevation,
				azErr, s.Azimuth, r.azimuth)
		}

		if outWriter != nil {
			rec := []string{
				date, clock,
				formatFloat(r.in.Lat), formatFloat(r.in.Lon),
				formatFloat(s.ApparentElevation), formatFloat(s.Azimuth),
				formatFloat(elevErr), formatFloat(azErr),
				formatFloat(scElevErr), formatFloat(scAzErr), formatFloat(decErr),
			}
			if err := outWriter.Write(rec); err != nil {
				log.Printf("row %d: failed to write outcsv: %v", r.line, err)
			}
		}
	}

	fmt.Println("=== solarpos profiler summary ===")
	fmt.Printf("Rows:   %d (processed), %d skipped, %d domain errors\n", len(rows), skipped, domainErrs)

	if elevStats.count == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	printStats("Elevation error (degrees, |ours - ref|)", elevStats)
	printStats("Azimuth error (degrees, |ours - ref|)", azStats)
	printStats("Elevation signed error (degrees, ours - ref)", elevSigned)
	printStats("Azimuth signed error (degrees, ours - ref)", azSigned)

	if *crossCheck {
		printStats("suncalc geometric elevation error (degrees)", scElevStats)
		printStats("suncalc azimuth error (degrees)", scAzStats)
		printStats("meeus declination error (degrees)", meeusDecStats)
	}
}

func printStats(title string, s stats) {
	fmt.Printf("\n%s:\n", title)
	fmt.Printf("  count: %d\n", s.count)
	fmt.Printf("  min:   %.5f\n", s.min)
	fmt.Printf("  max:   %.5f\n", s.max)
	fmt.Printf("  mean:  %.5f\n", s.mean())
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func instant(in solarpos.Input) time.Time {
	loc := time.FixedZone("", int(math.Round(in.TZ*3600)))
	return time.Date(in.Year, time.Month(in.Month), in.Day, in.Hour, in.Minute, 0, 0, loc)
}

// readRows parses the reference CSV. Rows that do not parse are logged and
// counted as skipped; a leading header row is ignored.
func readRows(r io.Reader) ([]refRow, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated per row
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return nil, 0, errors.New("empty CSV file")
	}

	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		startIdx = 1
	}

	var (
		rows    []refRow
		skipped int
	)
	for i := startIdx; i < len(records); i++ {
		row, err := parseRow(records[i])
		if err != nil {
			log.Printf("row %d: %v, skipping", i+1, err)
			skipped++
			continue
		}
		row.line = i + 1
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func parseRow(rec []string) (refRow, error) {
	if len(rec) < 7 {
		return refRow{}, fmt.Errorf("expected 7 columns (date,time,tz,lat,lon,elevation,azimuth), got %d", len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}

	var in solarpos.Input
	if _, err := fmt.Sscanf(rec[0], "%d-%d-%d", &in.Year, &in.Month, &in.Day); err != nil {
		return refRow{}, fmt.Errorf("invalid date %q: %v", rec[0], err)
	}
	if _, err := fmt.Sscanf(rec[1], "%d:%d", &in.Hour, &in.Minute); err != nil {
		return refRow{}, fmt.Errorf("invalid time %q: %v", rec[1], err)
	}

	nums := make([]float64, 5)
	names := []string{"tz", "lat", "lon", "elevation", "azimuth"}
	for j := range nums {
		v, err := strconv.ParseFloat(rec[j+2], 64)
		if err != nil {
			return refRow{}, fmt.Errorf("invalid %s %q: %v", names[j], rec[j+2], err)
		}
		nums[j] = v
	}
	in.TZ, in.Lat, in.Lon = nums[0], nums[1], nums[2]

	return refRow{in: in, elevation: nums[3], azimuth: nums[4]}, nil
}
