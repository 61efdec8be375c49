package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumos/internal/config"
	"github.com/wheelibin/lumos/internal/events"
	"github.com/wheelibin/lumos/internal/gateway"
	"github.com/wheelibin/lumos/internal/lumos"
	"github.com/wheelibin/lumos/internal/repos"
	"github.com/wheelibin/lumos/internal/tui"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {

	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename: "logs/lumos.log",
		MaxAge:   3,
	}, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("lumos starting")

	cfg, err := config.InitialiseConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger.SetLevel(cfg.Level())

	db, err := repos.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	repo, err := repos.NewDeviceRepo(logger, db)
	if err != nil {
		log.Fatal(err)
	}
	client := gateway.NewClient(*cfg, logger)
	app := lumos.NewLumos(logger, *cfg, client, repo)

	if err := app.Initialise(); err != nil {
		log.Fatal(err)
	}

	states, err := app.LightStates()
	if err != nil {
		log.Fatal(err)
	}
	ui := tui.NewLumosTUI(states)

	// refresh the table from the recorded state after every change
	app.OnChange(func(e events.DeviceEvent) {
		states, err := app.LightStates()
		if err != nil {
			logger.Error(err)
			return
		}
		ui.RefreshLights(states)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	// close the UI when signalled
	go func() {
		<-ctx.Done()
		ui.Quit()
	}()

	if err := ui.Run(); err != nil {
		logger.Error(err)
	}

	cancel()
	<-done
	logger.Info("lumos is closing")
}
