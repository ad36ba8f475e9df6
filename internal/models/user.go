package models

import "time"

// User represents a registered customer account. Email and phone are each
// unique across all accounts; the storage constraints are the authoritative
// guarantee even when handlers pre-check only the email.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	FIO          string    `gorm:"not null" json:"fio"`
	Phone        string    `gorm:"uniqueIndex;not null" json:"phone"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Date         time.Time `gorm:"not null" json:"date"`
}

// Profile is the shape of a user returned to clients: never the id, never
// any password material.
type Profile struct {
	FIO   string `json:"fio"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Profile projects the client-visible fields of a user.
func (u *User) Profile() Profile {
	return Profile{FIO: u.FIO, Email: u.Email, Phone: u.Phone}
}
