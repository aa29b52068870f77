package tracker

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the tracker's Prometheus collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	Elevation       *prometheus.GaugeVec
	Azimuth         *prometheus.GaugeVec
	Samples         *prometheus.CounterVec
	PublishFailures *prometheus.CounterVec
}

// NewMetrics registers the tracker metrics on reg, or on the default
// registerer when reg is nil. Registering twice on the same registry
// returns the collectors already there.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	elevation, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solarpos_sun_elevation_degrees",
		Help: "Refraction-corrected solar elevation of the last sample.",
	}, []string{"site"}), "solarpos_sun_elevation_degrees")
	if err != nil {
		return nil, err
	}

	azimuth, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solarpos_sun_azimuth_degrees",
		Help: "Solar azimuth, clockwise from north, of the last sample.",
	}, []string{"site"}), "solarpos_sun_azimuth_degrees")
	if err != nil {
		return nil, err
	}

	samples, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarpos_samples_total",
		Help: "Position samples taken, by site and result.",
	}, []string{"site", "result"}), "solarpos_samples_total")
	if err != nil {
		return nil, err
	}

	failures, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarpos_publish_failures_total",
		Help: "Samples that could not be published, by site.",
	}, []string{"site"}), "solarpos_publish_failures_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:        gatherer,
		Elevation:       elevation,
		Azimuth:         azimuth,
		Samples:         samples,
		PublishFailures: failures,
	}, nil
}

// Gatherer returns the gatherer the metrics were registered with.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return nil
	}
	return m.gatherer
}

func (m *Metrics) observe(s Sample, result string) {
	if m == nil {
		return
	}
	m.Elevation.WithLabelValues(s.Site).Set(s.Elevation)
	m.Azimuth.WithLabelValues(s.Site).Set(s.Azimuth)
	m.Samples.WithLabelValues(s.Site, result).Inc()
}

func (m *Metrics) sampleFailed(site, result string) {
	if m == nil {
		return
	}
	m.Samples.WithLabelValues(site, result).Inc()
}

func (m *Metrics) publishFailed(site string) {
	if m == nil {
		return
	}
	m.PublishFailures.WithLabelValues(site).Inc()
}

func registerGaugeVec(reg prometheus.Registerer, g *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}
