package gateway

import (
	"context"
	"errors"

	"github.com/sahilchouksey/uniadvisor-api/model"
	"gorm.io/gorm"
)

// GormGateway implements Gateway against the Postgres store
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway creates a new GORM-backed gateway
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

// GetProfile returns the onboarding profile, or nil if never saved
func (g *GormGateway) GetProfile(ctx context.Context, id Identity) (*model.Onboarding, error) {
	var profile model.Onboarding
	err := g.db.WithContext(ctx).Where("user_id = ?", id.UserID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile creates the profile row on first save and updates it after.
// The model's BeforeSave hook clears scores whose paired status is not
// "taken", so the invariant holds on every persisted write.
func (g *GormGateway) SaveProfile(ctx context.Context, id Identity, profile *model.Onboarding) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	profile.UserID = id.UserID

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Onboarding
		err := tx.Where("user_id = ?", id.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(profile).Error
		}
		if err != nil {
			return err
		}
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return tx.Save(profile).Error
	})
}

// ListSelections returns the user's selection records
func (g *GormGateway) ListSelections(ctx context.Context, id Identity) ([]model.Selection, error) {
	var selections []model.Selection
	if err := g.db.WithContext(ctx).
		Where("user_id = ?", id.UserID).
		Order("created_at ASC").
		Find(&selections).Error; err != nil {
		return nil, err
	}
	return selections, nil
}

// UpsertSelection writes a selection status without transition checks;
// those belong to the selection state machine in front of this call.
func (g *GormGateway) UpsertSelection(ctx context.Context, id Identity, universityID string, status model.SelectionStatus) error {
	var existing model.Selection
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND university_id = ?", id.UserID, universityID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g.db.WithContext(ctx).Create(&model.Selection{
			UserID:       id.UserID,
			UniversityID: universityID,
			Status:       status,
		}).Error
	}
	if err != nil {
		return err
	}
	existing.Status = status
	return g.db.WithContext(ctx).Save(&existing).Error
}

// RemoveSelection deletes a selection record
func (g *GormGateway) RemoveSelection(ctx context.Context, id Identity, universityID string) error {
	result := g.db.WithContext(ctx).
		Where("user_id = ? AND university_id = ?", id.UserID, universityID).
		Delete(&model.Selection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
