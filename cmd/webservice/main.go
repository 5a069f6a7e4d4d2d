package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/Indrajitpadhiyar/Bagify/internal/app"
	"github.com/Indrajitpadhiyar/Bagify/internal/infrastructure/database/mongodb"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()
	app.SetupLogger(config)

	if config.JWTConfig.Secret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := mongodb.ConnectToMongoDB(config.MongoURI(), config.MongoDBConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Client().Disconnect(context.Background())

	server := app.App{
		DB:     db,
		Config: config,
	}

	if err := server.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize the application")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to stop server cleanly")
	}
}
