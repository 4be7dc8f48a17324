package main

import (
	"github.com/charmbracelet/log"
	"github.com/wheelibin/lifxbridge/internal/config"
	"github.com/wheelibin/lifxbridge/internal/coordinator"
	"github.com/wheelibin/lifxbridge/internal/lifx"
	"github.com/wheelibin/lifxbridge/internal/lights"
	"github.com/wheelibin/lifxbridge/internal/tui"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {

	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename: "logs/lifxbridge.log",
		MaxAge:   3,
	}, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("lifxbridge starting")

	// read the config file
	cfg, err := config.ReadConfig()
	if err != nil {
		logger.Fatal(err)
	}

	api := lifx.NewClient(logger, cfg.AccessToken, nil)
	defer api.Close()

	// create/wire up services
	coord := coordinator.New(logger, api, cfg.PollInterval())
	ls := lights.NewLightService(logger, api, coord)

	updateChannel := make(chan coordinator.Update, 1)
	coord.AddListener(func(update coordinator.Update) {
		// drop updates the UI hasn't consumed yet, only the latest matters
		select {
		case updateChannel <- update:
		default:
		}
	})

	if err := coord.Initialise(); err != nil {
		logger.Fatal(err)
	}

	stopChannel := make(chan bool, 1)

	// start the polling loop
	go coord.Run(stopChannel)

	// run the terminal UI
	ui := tui.NewLifxTUI(ls.All())

	go func() {
		for update := range updateChannel {
			ui.RefreshLights(ls.All(), update.Err)
		}
	}()

	if err := ui.Run(); err != nil {
		logger.Error(err)
	}

	// cleanup before exit
	stopChannel <- true
	logger.Info("lifxbridge is closing")
}
