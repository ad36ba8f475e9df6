package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mangal/internal/models"
	"github.com/example/mangal/internal/stores"
)

// ReviewHandler manages review endpoints.
type ReviewHandler struct {
	reviews *stores.ReviewStore
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviews *stores.ReviewStore) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List returns all reviews, most recent first.
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	reviews, err := h.reviews.ListAll()
	if err != nil {
		return err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return c.JSON(reviews)
}

type createReviewRequest struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// Create validates and stores a review. Validation failures come back as an
// array of messages, matching what the storefront expects.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"invalid request body"},
		})
	}

	req.Author = strings.TrimSpace(req.Author)
	req.Content = strings.TrimSpace(req.Content)

	var messages []string
	if req.Author == "" {
		messages = append(messages, "author is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		messages = append(messages, "rating must be an integer between 1 and 5")
	}
	if req.Content == "" {
		messages = append(messages, "content is required")
	}
	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			messages = append(messages, "date must be RFC 3339")
		} else {
			date = parsed
		}
	}
	if len(messages) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	review, err := h.reviews.Append(req.Author, req.Rating, req.Content, date)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}
