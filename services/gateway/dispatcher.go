package gateway

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ResultStatus is the outcome of a dispatched mutation
type ResultStatus string

const (
	// ResultApplied means the gateway accepted the write
	ResultApplied ResultStatus = "applied"
	// ResultPendingRetry means the write failed transiently and is
	// parked for a later retry; local optimistic state is preserved.
	ResultPendingRetry ResultStatus = "pending-retry"
	// ResultRejected means the write was abandoned and the optimistic
	// change reverted.
	ResultRejected ResultStatus = "rejected"
)

// Result reports the outcome of a dispatched command. Token is the
// reconciliation token handed back by Enqueue.
type Result struct {
	Token  string
	Status ResultStatus
	Err    error
}

// ErrDispatcherClosed is returned for commands enqueued after Close
var ErrDispatcherClosed = errors.New("dispatcher closed")

// DispatcherOptions tunes retry behaviour
type DispatcherOptions struct {
	// InlineAttempts is how many times a command is tried back to back
	// before it is parked as pending-retry.
	InlineAttempts int
	// MaxAttempts is the total attempt budget; once spent the command
	// is reverted and rejected.
	MaxAttempts    int
	BaseBackoff    time.Duration
	MaxBackoff     time.Duration
	AttemptTimeout time.Duration
	// IsTransient classifies errors worth retrying. Non-transient
	// failures reject immediately.
	IsTransient func(error) bool
}

func (o *DispatcherOptions) setDefaults() {
	if o.InlineAttempts <= 0 {
		o.InlineAttempts = 3
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 8
	}
	if o.BaseBackoff <= 0 {
		o.BaseBackoff = 200 * time.Millisecond
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = 30 * time.Second
	}
	if o.AttemptTimeout <= 0 {
		o.AttemptTimeout = 10 * time.Second
	}
	if o.IsTransient == nil {
		o.IsTransient = func(err error) bool { return !errors.Is(err, context.Canceled) }
	}
}

type command struct {
	token   string
	apply   func(context.Context) error
	revert  func()
	results chan Result
}

// Dispatcher serializes mutations per queue key (one FIFO goroutine per
// key) so writes for the same university never reach the gateway out of
// order. Mutations are applied optimistically by the caller before
// Enqueue; the revert callback undoes the optimistic change when a
// command is rejected.
type Dispatcher struct {
	opts   DispatcherOptions
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	queues map[string]chan *command
	sweep  chan struct{}
	closed bool

	pending atomic.Int32
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher with the given options
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	opts.setDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		queues: make(map[string]chan *command),
		sweep:  make(chan struct{}),
	}
}

// Enqueue schedules a mutation on the FIFO queue for key and returns a
// reconciliation token plus a channel that receives the outcome. The
// channel is buffered; callers are free to abandon it (fire and forget).
func (d *Dispatcher) Enqueue(key string, apply func(context.Context) error, revert func()) (string, <-chan Result) {
	cmd := &command{
		token:   uuid.New().String(),
		apply:   apply,
		revert:  revert,
		results: make(chan Result, 4),
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		cmd.results <- Result{Token: cmd.token, Status: ResultRejected, Err: ErrDispatcherClosed}
		return cmd.token, cmd.results
	}
	q, ok := d.queues[key]
	if !ok {
		q = make(chan *command, 64)
		d.queues[key] = q
		d.wg.Add(1)
		go d.worker(q)
	}
	d.mu.Unlock()

	q <- cmd
	return cmd.token, cmd.results
}

// PendingCount reports how many commands are parked awaiting retry
func (d *Dispatcher) PendingCount() int {
	return int(d.pending.Load())
}

// SweepPending wakes every parked command so it retries now instead of
// waiting out its backoff. Driven by the cron sweeper.
func (d *Dispatcher) SweepPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	close(d.sweep)
	d.sweep = make(chan struct{})
}

// Close stops the dispatcher and waits for workers to drain
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}

func (d *Dispatcher) worker(q chan *command) {
	defer d.wg.Done()
	for {
		select {
		case cmd := <-q:
			d.process(cmd)
		case <-d.ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) process(cmd *command) {
	parked := false
	defer func() {
		if parked {
			d.pending.Add(-1)
		}
	}()

	for attempt := 1; ; attempt++ {
		actx, cancel := context.WithTimeout(d.ctx, d.opts.AttemptTimeout)
		err := cmd.apply(actx)
		cancel()

		if err == nil {
			emit(cmd, Result{Token: cmd.token, Status: ResultApplied})
			return
		}

		if d.ctx.Err() != nil || !d.opts.IsTransient(err) || attempt >= d.opts.MaxAttempts {
			if cmd.revert != nil {
				cmd.revert()
			}
			log.Printf("sync: rejecting command %s after %d attempts: %v", cmd.token, attempt, err)
			emit(cmd, Result{Token: cmd.token, Status: ResultRejected, Err: err})
			return
		}

		if attempt >= d.opts.InlineAttempts && !parked {
			parked = true
			d.pending.Add(1)
			emit(cmd, Result{Token: cmd.token, Status: ResultPendingRetry, Err: err})
		}

		// The worker blocks here, which keeps later commands for the
		// same key behind this one and preserves per-key ordering.
		select {
		case <-time.After(d.backoff(attempt)):
		case <-d.sweepChan():
		case <-d.ctx.Done():
		}
	}
}

func (d *Dispatcher) backoff(attempt int) time.Duration {
	b := d.opts.BaseBackoff << (attempt - 1)
	if b > d.opts.MaxBackoff || b <= 0 {
		b = d.opts.MaxBackoff
	}
	return b
}

func (d *Dispatcher) sweepChan() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sweep
}

func emit(cmd *command, r Result) {
	select {
	case cmd.results <- r:
	default:
	}
}
