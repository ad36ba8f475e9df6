package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/mangal/internal/apperrors"
	"github.com/example/mangal/internal/models"
	"github.com/example/mangal/internal/stores"
	"github.com/example/mangal/internal/utils"
)

// PlaceOrderInput is one checkout attempt: purchaser identity, cart contents
// and the client-computed total.
type PlaceOrderInput struct {
	UserEmail string
	UserName  string
	UserPhone string
	Items     []models.OrderItem
	Total     float64
	Date      time.Time
}

// OrderPlacement orchestrates a checkout: validate the cart and purchaser,
// persist the order, notify the operator and the purchaser by email.
//
// The steps run strictly in sequence with no persisted intermediate state.
// A notification failure is surfaced to the caller even though the order is
// already durable; the error log carries the order id so operators can
// reconcile.
type OrderPlacement struct {
	orders        *stores.OrderStore
	mailer        OrderMailer
	notifyTimeout time.Duration
	log           zerolog.Logger
}

// NewOrderPlacement constructs the workflow.
func NewOrderPlacement(orders *stores.OrderStore, mailer OrderMailer, notifyTimeout time.Duration, log zerolog.Logger) *OrderPlacement {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &OrderPlacement{
		orders:        orders,
		mailer:        mailer,
		notifyTimeout: notifyTimeout,
		log:           log,
	}
}

// Place runs the whole workflow and returns the persisted order on success.
func (s *OrderPlacement) Place(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	// The client total is trusted and stored as-is; a divergence from the
	// recomputed sum is a data-quality signal, not a failure.
	recomputed := 0.0
	for _, item := range input.Items {
		recomputed += item.Subtotal()
	}
	if math.Abs(recomputed-input.Total) > 0.01 {
		s.log.Warn().
			Float64("client_total", input.Total).
			Float64("recomputed_total", recomputed).
			Str("user_email", input.UserEmail).
			Msg("order total mismatch")
	}

	order, err := s.orders.Append(input.UserEmail, input.UserName, input.UserPhone, input.Total, input.Items, input.Date)
	if err != nil {
		s.log.Error().Err(err).Str("stage", "persist").Msg("order placement failed")
		return nil, err
	}

	if err := s.notify(ctx, order); err != nil {
		s.log.Error().Err(err).Str("stage", "notify").Uint("order_id", order.ID).
			Msg("order persisted but notification failed")
		return nil, apperrors.Wrap(apperrors.CodeNotification, err, "order stored but notification failed")
	}

	return order, nil
}

func (s *OrderPlacement) validate(input PlaceOrderInput) error {
	if len(input.Items) == 0 {
		return apperrors.New(apperrors.CodeValidation, "cart is empty")
	}
	if strings.TrimSpace(input.UserName) == "" ||
		strings.TrimSpace(input.UserEmail) == "" ||
		strings.TrimSpace(input.UserPhone) == "" {
		return apperrors.New(apperrors.CodeValidation, "purchaser name, email and phone are required")
	}
	if !utils.ValidEmail(input.UserEmail) {
		return apperrors.New(apperrors.CodeValidation, "purchaser email is malformed")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return apperrors.New(apperrors.CodeValidation, "item quantity must be a positive integer")
		}
		if item.Price < 0 {
			return apperrors.New(apperrors.CodeValidation, "item price must be non-negative")
		}
	}
	if input.Total < 0 {
		return apperrors.New(apperrors.CodeValidation, "total must be non-negative")
	}
	return nil
}

// notify attempts both sends even when the first fails, so a broken operator
// mailbox does not suppress the customer confirmation. Either failure makes
// the whole step fail.
func (s *OrderPlacement) notify(ctx context.Context, order *models.Order) error {
	notification := OrderNotification{
		OrderID:   order.ID,
		UserName:  order.UserName,
		UserEmail: order.UserEmail,
		UserPhone: order.UserPhone,
		Details:   RenderOrderDetails(order.Items, order.Total),
		Total:     order.Total,
	}

	adminErr := s.sendBounded(ctx, func() error {
		return s.mailer.SendAdminOrderAlert(notification)
	})
	customerErr := s.sendBounded(ctx, func() error {
		return s.mailer.SendCustomerConfirmation(notification)
	})

	if adminErr != nil {
		return adminErr
	}
	return customerErr
}

// sendBounded runs one send with a deadline so a stalled SMTP connection
// cannot hang the request.
func (s *OrderPlacement) sendBounded(ctx context.Context, send func() error) error {
	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- send()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
