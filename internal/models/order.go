package models

import "time"

// Order holds the header of a placed order. Purchaser fields are
// denormalized copies taken at checkout time, not live references.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserEmail string      `gorm:"not null" json:"userEmail"`
	UserName  string      `gorm:"not null" json:"userName"`
	UserPhone string      `gorm:"not null" json:"userPhone"`
	Total     float64     `gorm:"not null" json:"total"`
	Date      time.Time   `gorm:"not null;index" json:"date"`
	Items     []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one line of an order. The product name is denormalized;
// there is no persisted catalog to reference.
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"-"`
	OrderID  uint    `gorm:"index;not null" json:"-"`
	Name     string  `gorm:"not null" json:"name"`
	Price    float64 `gorm:"not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
}

// Subtotal returns price multiplied by quantity for this line.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
