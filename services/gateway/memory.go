package gateway

import (
	"context"
	"sort"
	"sync"

	"github.com/sahilchouksey/uniadvisor-api/model"
	"gorm.io/gorm"
)

// MemoryGateway is an in-memory Gateway. It backs the live advising
// session's local snapshot (profile store + selection store) and doubles
// as the test double for the GORM adapter.
type MemoryGateway struct {
	mu         sync.Mutex
	profiles   map[uint]*model.Onboarding
	selections map[uint]map[string]model.SelectionStatus
}

// NewMemoryGateway creates an empty in-memory gateway
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		profiles:   make(map[uint]*model.Onboarding),
		selections: make(map[uint]map[string]model.SelectionStatus),
	}
}

// GetProfile returns a copy of the stored profile, or nil if never saved
func (m *MemoryGateway) GetProfile(ctx context.Context, id Identity) (*model.Onboarding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id.UserID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// SaveProfile stores a normalized copy of the profile
func (m *MemoryGateway) SaveProfile(ctx context.Context, id Identity, profile *model.Onboarding) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	cp := *profile
	cp.UserID = id.UserID
	cp.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[id.UserID] = &cp
	return nil
}

// ListSelections returns the user's selection records ordered by id
func (m *MemoryGateway) ListSelections(ctx context.Context, id Identity) ([]model.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := m.selections[id.UserID]
	out := make([]model.Selection, 0, len(byID))
	for universityID, status := range byID {
		out = append(out, model.Selection{
			UserID:       id.UserID,
			UniversityID: universityID,
			Status:       status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UniversityID < out[j].UniversityID })
	return out, nil
}

// UpsertSelection writes a selection status
func (m *MemoryGateway) UpsertSelection(ctx context.Context, id Identity, universityID string, status model.SelectionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selections[id.UserID] == nil {
		m.selections[id.UserID] = make(map[string]model.SelectionStatus)
	}
	m.selections[id.UserID][universityID] = status
	return nil
}

// RemoveSelection deletes a selection record
func (m *MemoryGateway) RemoveSelection(ctx context.Context, id Identity, universityID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := m.selections[id.UserID]
	if _, ok := byID[universityID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(byID, universityID)
	return nil
}
