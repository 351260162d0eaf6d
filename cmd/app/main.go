package main

import (
	"context"

	"hostel/config"
	"hostel/di"
	"hostel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()

	if err := app.Bootstrap.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap ledger state")
	}

	app.HTTP.Serve()
}
