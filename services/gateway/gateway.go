package gateway

import (
	"context"

	"github.com/sahilchouksey/uniadvisor-api/model"
)

// Identity is the caller identity implied by the session
type Identity struct {
	UserID uint
}

// Gateway is the persistence contract the advising engine needs: profile
// and selection snapshots, keyed by caller identity. It does not
// prescribe a storage technology.
type Gateway interface {
	// GetProfile returns the onboarding profile, or nil if never saved
	GetProfile(ctx context.Context, id Identity) (*model.Onboarding, error)
	// SaveProfile creates or updates the profile. Score fields are
	// cleared unless their paired status is "taken" before the write.
	SaveProfile(ctx context.Context, id Identity, profile *model.Onboarding) error
	// ListSelections returns the user's selection records
	ListSelections(ctx context.Context, id Identity) ([]model.Selection, error)
	// UpsertSelection writes a selection status. Transition guards must
	// already have been satisfied by the caller.
	UpsertSelection(ctx context.Context, id Identity, universityID string, status model.SelectionStatus) error
	// RemoveSelection deletes a selection record (valid only from the
	// shortlisted state).
	RemoveSelection(ctx context.Context, id Identity, universityID string) error
}
