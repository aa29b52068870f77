// Package tracker samples the solar position for a fixed set of sites on a
// schedule, keeps the latest sample per site and publishes each one.
package tracker

import (
	"time"

	"github.com/thurmanmarka/solarpos"
)

// Site is a named observer location.
type Site struct {
	Name string  `json:"name" validate:"required,excludesall=/#+"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Coordinates returns the site location in the form the calculator takes.
func (s Site) Coordinates() solarpos.Coordinates {
	return solarpos.Coordinates{Lat: s.Lat, Lon: s.Lon}
}

// Sample is one position observation for a site.
type Sample struct {
	Site      string    `json:"site"`
	Time      time.Time `json:"time"`
	Elevation float64   `json:"elevation"`
	Azimuth   float64   `json:"azimuth"`
}
