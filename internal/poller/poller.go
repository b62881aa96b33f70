// Package poller turns a fire-and-forget processing request into an
// observable, terminating state transition by polling the recording
// snapshot until the server reports completion.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mfriedel/voicenotes/internal/api"
)

// Status is the lifecycle state of one processing job.
type Status int

const (
	StatusPending Status = iota
	StatusPolling
	StatusCompleted
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPolling:
		return "polling"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether no further automatic transition occurs.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// API is the slice of the recordings API the poller needs. Credentials are
// the caller's concern; implementations bind a session token.
type API interface {
	StartProcessing(ctx context.Context, recordingID string, kind api.ProcessKind) error
	GetRecording(ctx context.Context, recordingID string) (*api.Recording, error)
}

// Result is delivered to onTerminal exactly once: the completed snapshot,
// or the error that ended the job.
type Result struct {
	Recording *api.Recording
	Err       error
}

// DefaultPollInterval is how often the recording snapshot is re-fetched.
const DefaultPollInterval = 2 * time.Second

type Options struct {
	// PollInterval overrides DefaultPollInterval when > 0.
	PollInterval time.Duration
}

// Handle owns one running job. Cancel stops it without a terminal callback.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	status Status
}

// Run starts processing of recordingID with the given kind and polls the
// snapshot until it completes or fails. onTerminal is invoked exactly once
// with the final snapshot or error, and never after a successful Cancel.
// Polls are issued strictly one at a time.
func Run(ctx context.Context, client API, recordingID string, kind api.ProcessKind, onTerminal func(Result), opts Options) *Handle {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
		status: StatusPending,
	}
	go h.run(ctx, client, recordingID, kind, onTerminal, interval)
	return h
}

func (h *Handle) run(ctx context.Context, client API, recordingID string, kind api.ProcessKind, onTerminal func(Result), interval time.Duration) {
	defer close(h.done)
	defer h.cancel()

	if err := client.StartProcessing(ctx, recordingID, kind); err != nil {
		h.finish(StatusFailed, Result{Err: err}, onTerminal)
		return
	}
	if !h.transition(StatusPending, StatusPolling) {
		return // cancelled while the start request was in flight
	}

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			rec, err := client.GetRecording(ctx, recordingID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				// A single poll failure is terminal; polling must not
				// run forever on a broken connection.
				h.finish(StatusFailed, Result{Err: fmt.Errorf("polling %s job: %w", kind, err)}, onTerminal)
				return
			}
			if rec.Completed() {
				h.finish(StatusCompleted, Result{Recording: rec}, onTerminal)
				return
			}
		}
	}
}

// finish moves to a terminal status and delivers the result, unless the
// job was cancelled in the meantime.
func (h *Handle) finish(status Status, res Result, onTerminal func(Result)) {
	h.mu.Lock()
	if h.status.Terminal() {
		h.mu.Unlock()
		return
	}
	h.status = status
	h.mu.Unlock()
	onTerminal(res)
}

func (h *Handle) transition(from, to Status) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != from {
		return false
	}
	h.status = to
	return true
}

// Status returns the job's current state.
func (h *Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Done is closed when the poll loop has fully exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Cancel stops the job. When it returns, no further network calls are
// issued and onTerminal will not be invoked. Cancelling a job that already
// reached a terminal state is a no-op. Must not be called from within
// onTerminal.
func (h *Handle) Cancel() {
	h.mu.Lock()
	if h.status.Terminal() {
		h.mu.Unlock()
		return
	}
	h.status = StatusCancelled
	h.mu.Unlock()

	h.cancel()
	<-h.done
}
