package gateway

import (
	"context"
	"testing"

	"github.com/sahilchouksey/uniadvisor-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMemoryGatewayProfileRoundTrip(t *testing.T) {
	m := NewMemoryGateway()
	ctx := context.Background()
	id := Identity{UserID: 1}

	p, err := m.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, p, "never-saved profile reads back as nil")

	score := "7.5"
	profile := &model.Onboarding{
		IeltsToeflStatus: model.ExamScheduled,
		IeltsToeflScore:  &score,
		GreGmatStatus:    model.ExamNotTaken,
		SOPStatus:        model.SOPDraft,
	}
	require.NoError(t, m.SaveProfile(ctx, id, profile))

	p, err = m.GetProfile(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.IeltsToeflScore, "score must be cleared unless status is taken")
	assert.Equal(t, model.SOPDraft, p.SOPStatus)
}

func TestMemoryGatewayRejectsInvalidProfile(t *testing.T) {
	m := NewMemoryGateway()
	profile := &model.Onboarding{
		IeltsToeflStatus: model.ExamStatus("someday"),
		GreGmatStatus:    model.ExamNotTaken,
		SOPStatus:        model.SOPNotStarted,
	}
	err := m.SaveProfile(context.Background(), Identity{UserID: 1}, profile)
	assert.Error(t, err)

	p, gerr := m.GetProfile(context.Background(), Identity{UserID: 1})
	require.NoError(t, gerr)
	assert.Nil(t, p, "rejected write must not mutate state")
}

func TestMemoryGatewaySelections(t *testing.T) {
	m := NewMemoryGateway()
	ctx := context.Background()
	id := Identity{UserID: 7}

	require.NoError(t, m.UpsertSelection(ctx, id, "uk-1", model.StatusShortlisted))
	require.NoError(t, m.UpsertSelection(ctx, id, "usa-1", model.StatusShortlisted))
	require.NoError(t, m.UpsertSelection(ctx, id, "uk-1", model.StatusLocked))

	selections, err := m.ListSelections(ctx, id)
	require.NoError(t, err)
	require.Len(t, selections, 2)

	// Upsert rewrote the record: uk-1 holds exactly one status
	for _, s := range selections {
		if s.UniversityID == "uk-1" {
			assert.Equal(t, model.StatusLocked, s.Status)
		}
	}

	require.NoError(t, m.RemoveSelection(ctx, id, "usa-1"))
	err = m.RemoveSelection(ctx, id, "usa-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Other users are isolated
	other, err := m.ListSelections(ctx, Identity{UserID: 8})
	require.NoError(t, err)
	assert.Empty(t, other)
}
