package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumos/internal/config"
	"github.com/wheelibin/lumos/internal/gateway"
	"github.com/wheelibin/lumos/internal/lumos"
	"github.com/wheelibin/lumos/internal/publish"
	"github.com/wheelibin/lumos/internal/repos"
)

func main() {

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		ReportCaller:    true,
	})
	logger.Info("lumosd starting")

	// read the config file
	cfg, err := config.InitialiseConfig()
	if err != nil {
		logger.Fatal(err)
	}
	logger.SetLevel(cfg.Level())

	db, err := repos.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal(err)
	}
	defer db.Close()

	// create/wire up services
	repo, err := repos.NewDeviceRepo(logger, db)
	if err != nil {
		logger.Fatal(err)
	}
	client := gateway.NewClient(*cfg, logger)
	app := lumos.NewLumos(logger, *cfg, client, repo)

	if err := app.Initialise(); err != nil {
		logger.Fatal(err)
	}

	if cfg.MQTT.Broker != "" {
		mqttClient, err := publish.Connect(cfg.MQTT)
		if err != nil {
			logger.Fatal(err)
		}
		defer mqttClient.Disconnect(1000)
		publisher := publish.NewEventPublisher(logger, mqttClient, cfg.MQTT.TopicPrefix)
		app.OnChange(publisher.Publish)
		logger.Info("Publishing changes", "broker", cfg.MQTT.Broker, "prefix", cfg.MQTT.TopicPrefix)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
	logger.Info("lumosd is closing")
}
