// Package solver locates the instant a sampled elevation curve passes
// through a threshold.
package solver

import (
	"math"
	"time"
)

// ElevationFunc returns an elevation in degrees at t. NaN means the value
// is undefined at t.
type ElevationFunc func(t time.Time) float64

// Direction of travel through the threshold.
type Direction int

const (
	Up   Direction = iota // below the threshold, then at or above it
	Down                  // above the threshold, then at or below it
)

// sides classifies an offset from the threshold (elevation - target).
// before is the side the curve leaves, after the side it reaches. NaN is
// on neither side, and an unknown direction has no sides.
func (d Direction) sides(v float64) (before, after bool) {
	if math.IsNaN(v) {
		return false, false
	}
	switch d {
	case Up:
		return v < 0, v >= 0
	case Down:
		return v > 0, v <= 0
	}
	return false, false
}

// Search configures a crossing search over [Start, End].
type Search struct {
	Start, End time.Time
	Step       time.Duration // sampling interval used to bracket a crossing
	Tol        time.Duration // bracket width at which bisection stops
}

// Crossing returns the first time in the search window at which f passes
// target in direction dir. A bracket is only formed by two consecutive
// defined samples; when bisection meets an undefined value the bracket is
// abandoned and sampling resumes after it.
func Crossing(f ElevationFunc, s Search, target float64, dir Direction) (time.Time, bool) {
	if !s.Start.Before(s.End) || s.Step <= 0 {
		return time.Time{}, false
	}
	if s.Tol <= 0 {
		s.Tol = time.Second
	}

	at := func(t time.Time) float64 { return f(t) - target }

	prevT, prevV := s.Start, at(s.Start)
	for prevT.Before(s.End) {
		t := prevT.Add(s.Step)
		if t.After(s.End) {
			t = s.End
		}
		v := at(t)

		if before, _ := dir.sides(prevV); before {
			if _, after := dir.sides(v); after {
				if hit, ok := bisect(at, prevT, t, dir, s.Tol); ok {
					return hit, true
				}
			}
		}
		prevT, prevV = t, v
	}
	return time.Time{}, false
}

// bisect narrows [a, b], where a is before the threshold and b after it.
func bisect(at func(time.Time) float64, a, b time.Time, dir Direction, tol time.Duration) (time.Time, bool) {
	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		before, after := dir.sides(at(mid))
		switch {
		case before:
			a = mid
		case after:
			b = mid
		default:
			return time.Time{}, false
		}
	}
	return a.Add(b.Sub(a) / 2), true
}
