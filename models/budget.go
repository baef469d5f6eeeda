package models

import "time"

// Budget holds a monthly spending limit per category. The (OwnerKey, CategoryID,
// Month) triple is the natural key; Key is its colon-joined string form. Both
// carry unique indexes so the store is the final arbiter against races.
type Budget struct {
	ID         uint      `gorm:"primaryKey" json:"_id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
	Key        string    `gorm:"size:160;uniqueIndex" json:"id"` // ownerKey:categoryId:month
	OwnerKey   string    `gorm:"size:64;not null;uniqueIndex:idx_budget_triple" json:"-"`
	UserID     *uint     `gorm:"index" json:"-"`
	CategoryID string    `gorm:"size:64;not null;uniqueIndex:idx_budget_triple" json:"categoryId"`
	Month      string    `gorm:"size:7;not null;uniqueIndex:idx_budget_triple" json:"month"` // YYYY-MM
	Limit      float64   `gorm:"not null" json:"limit"`
}
