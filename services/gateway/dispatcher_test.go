package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() DispatcherOptions {
	return DispatcherOptions{
		InlineAttempts: 1,
		MaxAttempts:    3,
		BaseBackoff:    time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		AttemptTimeout: time.Second,
	}
}

func waitResult(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for dispatch result")
		return Result{}
	}
}

func TestDispatcherApplies(t *testing.T) {
	d := NewDispatcher(testOptions())
	defer d.Close()

	applied := false
	token, results := d.Enqueue("u1", func(ctx context.Context) error {
		applied = true
		return nil
	}, nil)

	r := waitResult(t, results)
	assert.Equal(t, token, r.Token)
	assert.Equal(t, ResultApplied, r.Status)
	assert.True(t, applied)
}

func TestDispatcherPerKeyOrdering(t *testing.T) {
	d := NewDispatcher(testOptions())
	defer d.Close()

	var mu sync.Mutex
	var order []int
	var chans []<-chan Result

	for i := 0; i < 10; i++ {
		i := i
		_, results := d.Enqueue("usa-1", func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}, nil)
		chans = append(chans, results)
	}

	for _, results := range chans {
		r := waitResult(t, results)
		require.Equal(t, ResultApplied, r.Status)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 10)
	for i, got := range order {
		assert.Equal(t, i, got, "writes for the same key must stay in order")
	}
}

func TestDispatcherRetriesTransientFailure(t *testing.T) {
	d := NewDispatcher(testOptions())
	defer d.Close()

	attempts := 0
	_, results := d.Enqueue("u1", func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("gateway unreachable")
		}
		return nil
	}, nil)

	r := waitResult(t, results)
	assert.Equal(t, ResultPendingRetry, r.Status)

	r = waitResult(t, results)
	assert.Equal(t, ResultApplied, r.Status)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 0, d.PendingCount())
}

func TestDispatcherRejectsAndReverts(t *testing.T) {
	d := NewDispatcher(testOptions())
	defer d.Close()

	reverted := false
	boom := errors.New("still down")
	_, results := d.Enqueue("u1", func(ctx context.Context) error {
		return boom
	}, func() {
		reverted = true
	})

	r := waitResult(t, results)
	require.Equal(t, ResultPendingRetry, r.Status)

	r = waitResult(t, results)
	assert.Equal(t, ResultRejected, r.Status)
	assert.ErrorIs(t, r.Err, boom)
	assert.True(t, reverted, "optimistic change must be reverted on rejection")
}

func TestDispatcherNonTransientRejectsImmediately(t *testing.T) {
	opts := testOptions()
	opts.IsTransient = func(error) bool { return false }
	d := NewDispatcher(opts)
	defer d.Close()

	attempts := 0
	reverted := false
	_, results := d.Enqueue("u1", func(ctx context.Context) error {
		attempts++
		return errors.New("validation failed")
	}, func() { reverted = true })

	r := waitResult(t, results)
	assert.Equal(t, ResultRejected, r.Status)
	assert.Equal(t, 1, attempts)
	assert.True(t, reverted)
}

func TestDispatcherSweepWakesParkedCommand(t *testing.T) {
	opts := testOptions()
	opts.BaseBackoff = time.Hour
	opts.MaxBackoff = time.Hour
	d := NewDispatcher(opts)
	defer d.Close()

	attempts := 0
	_, results := d.Enqueue("u1", func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return errors.New("gateway unreachable")
		}
		return nil
	}, nil)

	r := waitResult(t, results)
	require.Equal(t, ResultPendingRetry, r.Status)
	require.Equal(t, 1, d.PendingCount())

	// Without the sweep the command would sleep for an hour
	d.SweepPending()

	r = waitResult(t, results)
	assert.Equal(t, ResultApplied, r.Status)
	assert.Equal(t, 0, d.PendingCount())
}

func TestDispatcherEnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(testOptions())
	d.Close()

	_, results := d.Enqueue("u1", func(ctx context.Context) error { return nil }, nil)
	r := waitResult(t, results)
	assert.Equal(t, ResultRejected, r.Status)
	assert.ErrorIs(t, r.Err, ErrDispatcherClosed)
}
