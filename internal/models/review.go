package models

import "time"

// Review is a user-submitted product review. Immutable once stored; the
// author is free text with no link to a User.
type Review struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Author  string    `gorm:"not null" json:"author"`
	Rating  int       `gorm:"not null" json:"rating"`
	Content string    `gorm:"not null" json:"content"`
	Date    time.Time `gorm:"not null;index" json:"date"`
}
