package models

import "time"

// SharedOwnerKey is the reserved owner key for globally visible default categories.
const SharedOwnerKey = "__shared__"

// Category types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Category is identified by a slug unique per owner. Shared defaults live under
// SharedOwnerKey and are visible to everyone but owned by nobody.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	Slug      string    `gorm:"size:64;not null;uniqueIndex:idx_owner_slug" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	Icon      string    `gorm:"size:16" json:"icon,omitempty"`
	OwnerKey  string    `gorm:"size:64;not null;index;uniqueIndex:idx_owner_slug" json:"-"`
	UserID    *uint     `gorm:"index" json:"-"`
}
