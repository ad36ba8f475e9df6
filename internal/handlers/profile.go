package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/mangal/internal/stores"
	"github.com/example/mangal/internal/validators"
)

// ProfileHandler manages profile updates.
type ProfileHandler struct {
	accounts *stores.AccountStore
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(accounts *stores.AccountStore) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

type updateProfileRequest struct {
	FIO          string `json:"fio" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required"`
	CurrentEmail string `json:"currentEmail" validate:"required"`
}

// Update rewrites the profile of the account matching currentEmail.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := validators.ParseBody(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Update(req.FIO, req.Phone, req.Email, req.CurrentEmail)
	if err != nil {
		return err
	}

	return c.JSON(user.Profile())
}
