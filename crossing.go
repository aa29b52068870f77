package solarpos

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/solarpos/internal/solver"
)

// Direction selects rising or setting crossings of an elevation threshold.
type Direction int

const (
	// Rising is the Sun climbing through the threshold.
	Rising Direction = iota
	// Setting is the Sun descending through the threshold.
	Setting
)

func (d Direction) String() string {
	switch d {
	case Rising:
		return "rising"
	case Setting:
		return "setting"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// NextElevationCrossing finds the first time in [from, from+window] at which
// the apparent elevation at loc crosses target degrees in direction dir.
// Times are evaluated in from's location. The result is accurate to about
// a minute, the resolution of Compute.
func NextElevationCrossing(from time.Time, loc Coordinates, target float64, dir Direction, window time.Duration) (time.Time, error) {
	var sd solver.Direction
	switch dir {
	case Rising:
		sd = solver.Up
	case Setting:
		sd = solver.Down
	default:
		return time.Time{}, fmt.Errorf("unknown direction %v", dir)
	}

	// Elevation stays valid when only the azimuth step fails, and is NaN
	// otherwise, so the error itself carries nothing extra here.
	elevation := func(t time.Time) float64 {
		p, _ := PositionAt(t, loc)
		return p.Elevation
	}

	at, ok := solver.Crossing(elevation, solver.Search{
		Start: from,
		End:   from.Add(window),
		Step:  15 * time.Minute,
		Tol:   30 * time.Second,
	}, target, sd)
	if !ok {
		return time.Time{}, ErrNoCrossing
	}
	return at, nil
}
