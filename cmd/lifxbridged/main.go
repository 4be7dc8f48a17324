package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wheelibin/lifxbridge/internal/config"
	"github.com/wheelibin/lifxbridge/internal/coordinator"
	"github.com/wheelibin/lifxbridge/internal/lifx"
	"github.com/wheelibin/lifxbridge/internal/lights"
	"github.com/wheelibin/lifxbridge/internal/repos"
)

func main() {

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		ReportCaller:    true,
	})
	logger.Info("lifxbridged starting")

	// read the config file
	cfg, err := config.ReadConfig()
	if err != nil {
		logger.Fatal(err)
	}
	switch cfg.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	}

	api := lifx.NewClient(logger, cfg.AccessToken, nil)
	defer api.Close()

	// check the token before doing anything else so a bad one is
	// reported as exactly that
	valid, err := api.ValidateToken()
	var connErr *lifx.ConnectionError
	switch {
	case err == nil && !valid:
		logger.Fatal("invalid access token, check accessToken in your config")
	case errors.As(err, &connErr):
		logger.Fatal("cannot connect to the LIFX cloud", "err", err)
	case err != nil:
		logger.Error("unexpected error validating access token", "err", err)
		logger.Fatal("setup failed")
	}

	// create/wire up services
	coord := coordinator.New(logger, api, cfg.PollInterval())
	ls := lights.NewLightService(logger, api, coord)

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Fatal("error opening snapshot db", "err", err)
	}
	defer db.Close()

	repo, err := repos.NewLightRepo(logger, db)
	if err != nil {
		logger.Fatal(err)
	}

	// persist every successful refresh so last-known state survives restarts
	coord.AddListener(func(update coordinator.Update) {
		if update.Err != nil {
			return
		}
		if err := repo.ReplaceAll(update.Lights); err != nil {
			logger.Error("error persisting light snapshot", "err", err)
		}
	})

	if err := coord.Initialise(); err != nil {
		logger.Fatal(err)
	}
	logger.Info("initial refresh complete", "lights", len(ls.All()))

	stopChannel := make(chan bool, 1)
	quitChannel := make(chan os.Signal, 1)

	// start the polling loop
	go coord.Run(stopChannel)

	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	<-quitChannel

	// cleanup before exit
	stopChannel <- true
	fmt.Println("lifxbridge is closing")
}
