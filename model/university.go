package model

import (
	"time"
)

// University is a catalog entry. The catalog is static reference data
// seeded from a fixed dataset; user state lives in Selection.
type University struct {
	ID             string    `gorm:"primaryKey;type:varchar(50)" json:"id"` // e.g. "usa-1"
	Name           string    `gorm:"not null;uniqueIndex" json:"name"`
	Country        string    `gorm:"type:varchar(100);not null" json:"country"`
	Major          string    `gorm:"type:varchar(200)" json:"major"`
	Fee            string    `gorm:"type:varchar(50)" json:"fee"`
	AcceptanceRate string    `gorm:"type:varchar(20)" json:"acceptance_rate"` // Low, Medium, High
	Description    string    `gorm:"type:text" json:"description"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
