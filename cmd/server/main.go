package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/mangal/internal/config"
	"github.com/example/mangal/internal/database"
	"github.com/example/mangal/internal/handlers"
	"github.com/example/mangal/internal/middleware"
	"github.com/example/mangal/internal/routes"
)

func main() {
	cfg := config.Load()

	log := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "mangal-store").
		Logger()
	if !cfg.Production() {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}

	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName:      "Mangal Store Backend",
		ErrorHandler: handlers.ErrorHandler(cfg, log),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(log))

	routes.Register(app, db, cfg, log)

	log.Info().Str("port", cfg.AppPort).Msg("starting server")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal().Err(err).Msg("fiber.Listen error")
	}
}
