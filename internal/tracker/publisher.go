package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sony/gobreaker"

	"github.com/thurmanmarka/solarpos/internal/logging"
)

// Publisher delivers samples somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, s Sample) error
}

// LogPublisher writes samples to the logger. The server uses it when no
// MQTT broker is configured.
type LogPublisher struct {
	Logger logging.Logger
}

func (p LogPublisher) Publish(ctx context.Context, s Sample) error {
	if p.Logger == nil {
		return nil
	}
	p.Logger.Debug(ctx, "sample",
		logging.String("site", s.Site),
		logging.String("time", s.Time.Format(time.RFC3339)),
		logging.Float("elevation", s.Elevation),
		logging.Float("azimuth", s.Azimuth),
	)
	return nil
}

var (
	errPublishTimeout = errors.New("mqtt publish timed out")
	errCircuitOpen    = errors.New("mqtt circuit open")
)

// mqttClient is the part of mqtt.Client the publisher needs.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTConfig holds broker settings.
type MQTTConfig struct {
	Broker      string
	ClientID    string
	TopicPrefix string
	Timeout     time.Duration // per publish, default 5s
}

// MQTTPublisher publishes each sample, retained at QoS 0, to
// <prefix>/<site>/position. Calls go through a circuit breaker so a dead
// broker does not stall every tick for the full timeout.
type MQTTPublisher struct {
	client  mqttClient
	prefix  string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
}

// DialMQTT connects to the broker and returns a publisher and the client,
// which the caller disconnects on shutdown.
func DialMQTT(cfg MQTTConfig) (*MQTTPublisher, mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetKeepAlive(60 * time.Second).
		SetPingTimeout(2 * time.Second).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, nil, fmt.Errorf("connect to %s: timed out", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}
	return newMQTTPublisher(client, cfg), client, nil
}

func newMQTTPublisher(client mqttClient, cfg MQTTConfig) *MQTTPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mqtt-publish",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})
	return &MQTTPublisher{
		client:  client,
		prefix:  cfg.TopicPrefix,
		timeout: timeout,
		cb:      cb,
	}
}

// Topic returns the topic samples for site are published to.
func (p *MQTTPublisher) Topic(site string) string {
	if p.prefix == "" {
		return site + "/position"
	}
	return p.prefix + "/" + site + "/position"
}

func (p *MQTTPublisher) Publish(ctx context.Context, s Sample) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode sample for %s: %w", s.Site, err)
	}

	wait := p.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < wait {
			wait = left
		}
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok := p.client.Publish(p.Topic(s.Site), 0, true, payload)
		if !tok.WaitTimeout(wait) {
			return nil, errPublishTimeout
		}
		return nil, tok.Error()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", errCircuitOpen, err)
	}
	if err != nil {
		return fmt.Errorf("publish %s: %w", p.Topic(s.Site), err)
	}
	return nil
}
