package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mangal/internal/stores"
	"github.com/example/mangal/internal/validators"
)

// AuthHandler bundles dependencies for registration and login.
type AuthHandler struct {
	accounts *stores.AccountStore
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(accounts *stores.AccountStore) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

type registerRequest struct {
	FIO      string `json:"fio" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user account and returns the profile.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := validators.ParseBody(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Register(req.FIO, req.Phone, req.Email, req.Password, time.Now())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user.Profile())
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns the profile. There is no session
// or token; the client keeps the profile locally.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := validators.ParseBody(c, &req); err != nil {
		return err
	}

	profile, err := h.accounts.VerifyCredentials(req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}
