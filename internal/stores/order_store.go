package stores

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/mangal/internal/apperrors"
	"github.com/example/mangal/internal/models"
)

// OrderStore persists order headers together with their line items.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore constructs an OrderStore.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Append durably writes the order header and every line item inside a single
// transaction, so a failed item write never leaves an orphaned header.
// Returns the fully materialized order including its assigned identity.
func (s *OrderStore) Append(userEmail, userName, userPhone string, total float64, items []models.OrderItem, date time.Time) (*models.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "order must contain at least one item")
	}

	order := models.Order{
		UserEmail: userEmail,
		UserName:  userName,
		UserPhone: userPhone,
		Total:     total,
		Date:      date,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, err, "failed to store order")
	}

	order.Items = items
	return &order, nil
}

// GetByID reads back one order with its items.
func (s *OrderStore) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
		}
		return nil, apperrors.Wrap(apperrors.CodePersistence, err, "failed to load order")
	}
	return &order, nil
}

// List returns orders newest first with their items, plus the total count.
func (s *OrderStore) List(limit, offset int) ([]models.Order, int64, error) {
	var total int64
	if err := s.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodePersistence, err, "failed to count orders")
	}

	var orders []models.Order
	if err := s.db.Preload("Items").
		Order("date desc").
		Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodePersistence, err, "failed to list orders")
	}

	return orders, total, nil
}
