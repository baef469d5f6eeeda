package models

import (
	"time"
)

// User model. PasswordHash stays empty for federated (Google) accounts.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name         string    `gorm:"size:120" json:"name"`
	PasswordHash []byte    `json:"-"`
	Provider     string    `gorm:"size:32;not null;default:local" json:"-"`
	GoogleID     string    `gorm:"size:64;index" json:"-"`
	Avatar       string    `gorm:"size:512" json:"-"`
}
