package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mangal/internal/apperrors"
	"github.com/example/mangal/internal/models"
	"github.com/example/mangal/internal/services"
	"github.com/example/mangal/internal/stores"
	"github.com/example/mangal/internal/utils"
	"github.com/example/mangal/internal/validators"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	placement *services.OrderPlacement
	orders    *stores.OrderStore
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(placement *services.OrderPlacement, orders *stores.OrderStore) *OrderHandler {
	return &OrderHandler{placement: placement, orders: orders}
}

type orderItemRequest struct {
	ID       int     `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gt=0"`
}

type createOrderRequest struct {
	UserEmail string             `json:"userEmail" validate:"required"`
	UserName  string             `json:"userName" validate:"required"`
	UserPhone string             `json:"userPhone" validate:"required"`
	Items     []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total     *float64           `json:"total" validate:"required,gte=0"`
	Date      string             `json:"date" validate:"required"`
}

// Create runs the order placement workflow for one checkout attempt.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := validators.ParseBody(c, &req); err != nil {
		return err
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return apperrors.New(apperrors.CodeValidation, "date must be RFC 3339")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	order, err := h.placement.Place(c.Context(), services.PlaceOrderInput{
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		UserPhone: req.UserPhone,
		Items:     items,
		Total:     *req.Total,
		Date:      date,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// List returns orders newest first, paginated.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	orders, total, err := h.orders.List(pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []models.Order{}
	}

	return c.JSON(fiber.Map{
		"data": orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// Get reads back a single order with its items.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apperrors.New(apperrors.CodeValidation, "invalid order id")
	}

	order, err := h.orders.GetByID(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(order)
}
