package model

import (
	"time"
)

// SelectionStatus is the status of a university in the user's selection.
// Absence of a row means the university is unselected.
type SelectionStatus string

const (
	StatusShortlisted SelectionStatus = "shortlisted"
	StatusLocked      SelectionStatus = "locked"
)

// IsValid reports whether s is a member of the closed status set
func (s SelectionStatus) IsValid() bool {
	return s == StatusShortlisted || s == StatusLocked
}

// Selection is a user's per-university selection record. A university id
// holds at most one status at any time; shortlisted and locked are
// mutually exclusive by construction (single status column, unique row).
type Selection struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;uniqueIndex:idx_user_university" json:"user_id"`
	UniversityID string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_university" json:"university_id"`
	Status       SelectionStatus `gorm:"type:varchar(20);not null;default:'shortlisted'" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Selection
func (Selection) TableName() string {
	return "user_universities"
}
