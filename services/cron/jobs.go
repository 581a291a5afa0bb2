package cron

import (
	"context"
	"fmt"
	"time"
)

// SweepPendingDispatch wakes every parked command in the dispatcher.
// Runs every minute so transient backend outages recover quickly.
func (m *CronManager) SweepPendingDispatch() {
	jobName := "sweep_pending_dispatch"

	if m.dispatcher == nil {
		m.logJobComplete(jobName, "No dispatcher configured")
		return
	}

	pending := m.dispatcher.PendingCount()
	if pending == 0 {
		m.logJobComplete(jobName, "Nothing pending")
		return
	}

	m.dispatcher.SweepPending()
	m.logJobComplete(jobName, fmt.Sprintf("Woke %d pending commands", pending))
}

// PurgeExpiredTokens removes blacklist rows whose tokens have expired.
// Runs hourly; expired tokens fail signature validation anyway, the rows
// are just dead weight.
func (m *CronManager) PurgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobName := "purge_expired_tokens"

	removed, err := m.blacklist.PurgeExpired(ctx)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to purge expired tokens: %w", err))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired rows", removed))
}
