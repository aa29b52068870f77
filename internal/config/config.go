// Package config loads the solarpos-server configuration from the
// environment, after applying an optional .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/thurmanmarka/solarpos/internal/tracker"
)

type AppConfig struct {
	// Sites to track, from SOLARPOS_SITES ("name:lat:lon,...").
	Sites []tracker.Site `validate:"dive"`

	// SampleInterval is how often every site is sampled.
	SampleInterval time.Duration `validate:"gte=1s"`

	Port string `validate:"required,numeric"`

	// MQTT publishing is disabled when MQTTBroker is empty.
	MQTTBroker      string
	MQTTTopicPrefix string
	MQTTClientID    string `validate:"required"`

	LogLevel  string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `validate:"omitempty,oneof=text json"`
}

var validate = validator.New()

// Load reads configuration from the environment with defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}

	sites, err := ParseSites(os.Getenv("SOLARPOS_SITES"))
	if err != nil {
		return nil, err
	}
	cfg.Sites = sites

	interval, err := time.ParseDuration(getenvDefault("SAMPLE_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SAMPLE_INTERVAL: %w", err)
	}
	cfg.SampleInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.MQTTBroker = os.Getenv("MQTT_BROKER")
	cfg.MQTTTopicPrefix = strings.TrimSuffix(getenvDefault("MQTT_TOPIC_PREFIX", "solarpos"), "/")
	cfg.MQTTClientID = getenvDefault("MQTT_CLIENT_ID", "solarpos-"+uuid.NewString())

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	cfg.LogFormat = strings.ToLower(os.Getenv("LOG_FORMAT"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ParseSites parses a comma-separated list of name:lat:lon entries.
// Blank entries are skipped; names must be unique.
func ParseSites(s string) ([]tracker.Site, error) {
	var sites []tracker.Site
	seen := make(map[string]bool)

	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("site %q: want name:lat:lon", entry)
		}
		name := strings.TrimSpace(parts[0])
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("site %q: latitude: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("site %q: longitude: %w", entry, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("site %q listed twice", name)
		}
		seen[name] = true

		sites = append(sites, tracker.Site{Name: name, Lat: lat, Lon: lon})
	}
	return sites, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
