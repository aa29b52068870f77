package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/thurmanmarka/solarpos/internal/api/http"
	"github.com/thurmanmarka/solarpos/internal/config"
	"github.com/thurmanmarka/solarpos/internal/logging"
	"github.com/thurmanmarka/solarpos/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}).With(logging.String("service", "solarpos"))

	ctx := context.Background()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := tracker.NewMetrics(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	// Publish over MQTT when a broker is configured, otherwise only log.
	var pub tracker.Publisher = tracker.LogPublisher{Logger: logger}
	if cfg.MQTTBroker != "" {
		mqttPub, client, err := tracker.DialMQTT(tracker.MQTTConfig{
			Broker:      cfg.MQTTBroker,
			ClientID:    cfg.MQTTClientID,
			TopicPrefix: cfg.MQTTTopicPrefix,
		})
		if err != nil {
			log.Fatalf("failed to connect to MQTT broker: %v", err)
		}
		defer client.Disconnect(250)
		pub = mqttPub
		logger.Info(ctx, "publishing to MQTT",
			logging.String("broker", cfg.MQTTBroker),
			logging.String("prefix", cfg.MQTTTopicPrefix))
	}

	tr := tracker.New(tracker.Options{
		Sites:     cfg.Sites,
		Interval:  cfg.SampleInterval,
		Publisher: pub,
		Metrics:   metrics,
		Logger:    logger.With(logging.String("component", "tracker")),
	})
	if err := tr.Start(); err != nil {
		log.Fatalf("failed to start tracker: %v", err)
	}
	defer tr.Stop()

	app := httpapi.NewApp(httpapi.Deps{
		Tracker:  tr,
		Gatherer: reg,
		Logger:   logger.With(logging.String("component", "http")),
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error(ctx, "fiber server stopped", logging.Err(err))
		}
	}()
	logger.Info(ctx, "listening",
		logging.String("port", cfg.Port),
		logging.Int("sites", len(cfg.Sites)),
		logging.String("interval", cfg.SampleInterval.String()))

	// Wait for termination signal
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error(ctx, "error during shutdown", logging.Err(err))
	}
}
