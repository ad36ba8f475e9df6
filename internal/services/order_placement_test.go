package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/mangal/internal/apperrors"
	"github.com/example/mangal/internal/database"
	"github.com/example/mangal/internal/models"
	"github.com/example/mangal/internal/stores"
)

type stubMailer struct {
	adminErr     error
	customerErr  error
	delay        time.Duration
	adminSent    int
	customerSent int
	last         OrderNotification
}

func (m *stubMailer) SendAdminOrderAlert(n OrderNotification) error {
	time.Sleep(m.delay)
	m.adminSent++
	m.last = n
	return m.adminErr
}

func (m *stubMailer) SendCustomerConfirmation(n OrderNotification) error {
	time.Sleep(m.delay)
	m.customerSent++
	m.last = n
	return m.customerErr
}

func newWorkflow(t *testing.T, mailer OrderMailer, timeout time.Duration) (*OrderPlacement, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	placement := NewOrderPlacement(stores.NewOrderStore(db), mailer, timeout, zerolog.Nop())
	return placement, db
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		UserEmail: "ivan@example.com",
		UserName:  "Иванов Иван",
		UserPhone: "+79990000001",
		Items: []models.OrderItem{
			{Name: "Мангал разборный", Price: 100, Quantity: 2},
			{Name: "Шампур", Price: 50, Quantity: 1},
		},
		Total: 250,
		Date:  time.Now(),
	}
}

func orderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	return count
}

func TestPlaceSucceedsAndNotifiesBothParties(t *testing.T) {
	mailer := &stubMailer{}
	placement, db := newWorkflow(t, mailer, time.Second)

	order, err := placement.Place(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 250.0, order.Total)
	assert.EqualValues(t, 1, orderCount(t, db))

	assert.Equal(t, 1, mailer.adminSent)
	assert.Equal(t, 1, mailer.customerSent)
	assert.Contains(t, mailer.last.Details, "Мангал разборный — 2 шт. — 200.00 ₽")
	assert.Contains(t, mailer.last.Details, "Итого: 250.00 ₽")
	assert.Equal(t, "+79990000001", mailer.last.UserPhone)
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	mailer := &stubMailer{}
	placement, db := newWorkflow(t, mailer, time.Second)

	input := validInput()
	input.Items = nil

	_, err := placement.Place(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Zero(t, orderCount(t, db))
	assert.Zero(t, mailer.adminSent)
}

func TestPlaceRejectsIncompleteIdentity(t *testing.T) {
	mailer := &stubMailer{}
	placement, db := newWorkflow(t, mailer, time.Second)

	input := validInput()
	input.UserPhone = "   "

	_, err := placement.Place(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Zero(t, orderCount(t, db))
}

func TestPlaceRejectsMalformedEmail(t *testing.T) {
	mailer := &stubMailer{}
	placement, db := newWorkflow(t, mailer, time.Second)

	input := validInput()
	input.UserEmail = "not-an-email"

	_, err := placement.Place(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Zero(t, orderCount(t, db))
}

func TestPlaceRejectsNonPositiveQuantity(t *testing.T) {
	mailer := &stubMailer{}
	placement, db := newWorkflow(t, mailer, time.Second)

	input := validInput()
	input.Items[0].Quantity = 0

	_, err := placement.Place(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Zero(t, orderCount(t, db))
}

// A notification failure is surfaced to the caller even though the order is
// already durable, and the second send is still attempted.
func TestPlaceNotifyFailureLeavesOrderPersisted(t *testing.T) {
	mailer := &stubMailer{adminErr: assert.AnError}
	placement, db := newWorkflow(t, mailer, time.Second)

	_, err := placement.Place(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotification))

	assert.EqualValues(t, 1, orderCount(t, db))
	assert.Equal(t, 1, mailer.adminSent)
	assert.Equal(t, 1, mailer.customerSent)
}

func TestPlaceNotifyTimeout(t *testing.T) {
	mailer := &stubMailer{delay: 200 * time.Millisecond}
	placement, db := newWorkflow(t, mailer, 20*time.Millisecond)

	_, err := placement.Place(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotification))
	assert.EqualValues(t, 1, orderCount(t, db))
}

// The client total is trusted: a mismatch is logged, not rejected.
func TestPlaceTrustsClientTotal(t *testing.T) {
	mailer := &stubMailer{}
	placement, _ := newWorkflow(t, mailer, time.Second)

	input := validInput()
	input.Total = 999

	order, err := placement.Place(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 999.0, order.Total)
}
