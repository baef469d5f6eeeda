package models

import "time"

// Transaction references its category by slug, not by store id, so shared
// default categories work without per-user copies.
type Transaction struct {
	ID         uint      `gorm:"primaryKey" json:"_id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
	OwnerKey   string    `gorm:"size:64;not null;index:idx_tx_owner_date" json:"-"`
	UserID     *uint     `gorm:"index" json:"-"`
	Date       string    `gorm:"size:10;not null;index:idx_tx_owner_date" json:"date"` // YYYY-MM-DD
	CategoryID string    `gorm:"size:64;not null;index" json:"categoryId"`
	Type       string    `gorm:"size:16;not null" json:"type"`
	Amount     float64   `gorm:"not null" json:"amount"`
}
