package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilchouksey/uniadvisor-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidTransition is returned when a selection operation is not
// legal from the university's current state. It is never coerced into a
// different transition.
var ErrInvalidTransition = errors.New("invalid selection transition")

// SelectionOp is an operation on a university's selection state
type SelectionOp string

const (
	OpShortlist SelectionOp = "shortlist"
	OpLock      SelectionOp = "lock"
	OpUnlock    SelectionOp = "unlock"
	OpRemove    SelectionOp = "remove"
)

// IsValid reports whether op is a member of the closed op set
func (op SelectionOp) IsValid() bool {
	switch op {
	case OpShortlist, OpLock, OpUnlock, OpRemove:
		return true
	}
	return false
}

// StatusUnselected is the implicit state of a university with no
// selection record.
const StatusUnselected model.SelectionStatus = ""

// NextStatus is the pure guard table of the selection state machine:
//
//	Unselected  --shortlist--> Shortlisted
//	Shortlisted --lock------->  Locked
//	Shortlisted --remove----->  Unselected
//	Locked      --unlock----->  Shortlisted
//
// There is no direct Locked -> Unselected edge; a locked university must
// be unlocked before it can be removed. Every other combination returns
// ErrInvalidTransition.
func NextStatus(current model.SelectionStatus, op SelectionOp) (model.SelectionStatus, error) {
	switch op {
	case OpShortlist:
		if current == StatusUnselected {
			return model.StatusShortlisted, nil
		}
	case OpLock:
		if current == model.StatusShortlisted {
			return model.StatusLocked, nil
		}
	case OpUnlock:
		if current == model.StatusLocked {
			return model.StatusShortlisted, nil
		}
	case OpRemove:
		if current == model.StatusShortlisted {
			return StatusUnselected, nil
		}
	}
	return current, fmt.Errorf("%w: cannot %s from %q", ErrInvalidTransition, op, statusLabel(current))
}

func statusLabel(s model.SelectionStatus) string {
	if s == StatusUnselected {
		return "unselected"
	}
	return string(s)
}

// SelectionService applies state machine transitions against the
// database. Each transition runs in one transaction over the single row
// for (user, university), so a university id is never observable in two
// states at once; locking rewrites the same row, which removes the id
// from the shortlisted set as part of the same transition.
type SelectionService struct {
	db *gorm.DB
}

// NewSelectionService creates a new selection service
func NewSelectionService(db *gorm.DB) *SelectionService {
	return &SelectionService{db: db}
}

// List returns the user's selection records
func (s *SelectionService) List(ctx context.Context, userID uint) ([]model.Selection, error) {
	var selections []model.Selection
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&selections).Error; err != nil {
		return nil, err
	}
	return selections, nil
}

// Apply validates op against the university's current state and, if
// legal, applies it atomically. The returned record is nil after a
// remove. An illegal op returns ErrInvalidTransition with no state
// change.
func (s *SelectionService) Apply(ctx context.Context, userID uint, universityID string, op SelectionOp) (*model.Selection, error) {
	var result *model.Selection

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Selection
		current := StatusUnselected
		found := true

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND university_id = ?", userID, universityID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
		} else if err != nil {
			return err
		} else {
			current = existing.Status
		}

		next, err := NextStatus(current, op)
		if err != nil {
			return err
		}

		switch {
		case next == StatusUnselected:
			// remove from Shortlisted
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result = nil
		case !found:
			created := model.Selection{
				UserID:       userID,
				UniversityID: universityID,
				Status:       next,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			result = &created
		default:
			existing.Status = next
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = &existing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
