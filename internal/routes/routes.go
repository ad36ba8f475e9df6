package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/example/mangal/internal/config"
	"github.com/example/mangal/internal/handlers"
	"github.com/example/mangal/internal/services"
	"github.com/example/mangal/internal/stores"
)

// Register wires up all HTTP routes with the default SMTP mailer.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	mailer := services.NewSMTPMailer(
		cfg.SMTPAddress,
		cfg.SMTPHost,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.SMTPFrom,
		cfg.AdminEmail,
	)
	RegisterWithMailer(app, db, cfg, log, mailer)
}

// RegisterWithMailer wires up all HTTP routes around the given mailer.
// Tests use this to substitute the email collaborator.
func RegisterWithMailer(app *fiber.App, db *gorm.DB, cfg *config.Config, log zerolog.Logger, mailer services.OrderMailer) {
	accountStore := stores.NewAccountStore(db)
	reviewStore := stores.NewReviewStore(db)
	orderStore := stores.NewOrderStore(db)

	placement := services.NewOrderPlacement(orderStore, mailer, cfg.NotifyTimeout, log)

	authHandler := handlers.NewAuthHandler(accountStore)
	profileHandler := handlers.NewProfileHandler(accountStore)
	reviewHandler := handlers.NewReviewHandler(reviewStore)
	orderHandler := handlers.NewOrderHandler(placement, orderStore)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/profile", profileHandler.Update)

	api.Get("/reviews", reviewHandler.List)
	api.Post("/reviews", reviewHandler.Create)

	api.Post("/orders", orderHandler.Create)
	api.Get("/orders", orderHandler.List)
	api.Get("/orders/:id", orderHandler.Get)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
	})
}
