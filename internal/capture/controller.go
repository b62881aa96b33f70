// Package capture owns the microphone resource and assembles an opaque
// encoded audio payload from the chunks the device delivers.
package capture

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"
)

// State is the capture session state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

var (
	// ErrPermissionDenied means the platform refused microphone access.
	ErrPermissionDenied = errors.New("microphone permission denied")
	// ErrDeviceUnavailable means no usable audio input device was found.
	ErrDeviceUnavailable = errors.New("audio input device unavailable")
	// ErrAlreadyRecording is returned by Start while a session is live.
	ErrAlreadyRecording = errors.New("a recording is already in progress")
)

// Device is an exclusive audio input source. Acquire opens the stream and
// delivers encoded chunks to sink in arrival order until Release, which
// flushes any buffered audio before returning. The chunk container format
// is opaque to the controller.
type Device interface {
	Acquire(ctx context.Context, sink func(chunk []byte)) error
	Release() error
}

// ticker abstracts time.Ticker so tests can drive the elapsed counter.
type ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type realTicker struct{ *time.Ticker }

func (t realTicker) Chan() <-chan time.Time { return t.C }

func newRealTicker(d time.Duration) ticker { return realTicker{time.NewTicker(d)} }

// Controller drives one capture session at a time through the
// Idle -> Recording -> Stopped -> Idle lifecycle. The device and the
// elapsed-seconds ticker are held exactly while the state is Recording;
// every exit from Recording releases both before the transition completes.
type Controller struct {
	device    Device
	newTicker func(time.Duration) ticker

	mu       sync.Mutex
	state    State
	stopping bool
	elapsed  int
	chunks   [][]byte
	payload  []byte
	lastErr  error
	stopTick chan struct{}
}

type ControllerOption func(*Controller)

// WithTicker replaces the per-second ticker, used by tests.
func WithTicker(factory func(time.Duration) ticker) ControllerOption {
	return func(c *Controller) { c.newTicker = factory }
}

func NewController(device Device, opts ...ControllerOption) *Controller {
	c := &Controller{
		device:    device,
		newTicker: newRealTicker,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start requests microphone access and begins buffering chunks. It blocks
// until the device grants or denies the stream. On failure the state stays
// Idle and the error is retained in LastError; retrying Start is valid.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateRecording {
		c.mu.Unlock()
		return ErrAlreadyRecording
	}
	c.elapsed = 0
	c.chunks = nil
	c.payload = nil
	c.lastErr = nil
	c.mu.Unlock()

	// Chunks may start arriving before Acquire returns; the sink buffers
	// them in arrival order regardless.
	if err := c.device.Acquire(ctx, c.appendChunk); err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.state = StateIdle
		c.mu.Unlock()
		return err
	}

	stop := make(chan struct{})
	c.mu.Lock()
	c.state = StateRecording
	c.stopTick = stop
	c.mu.Unlock()

	go c.countSeconds(stop)
	return nil
}

func (c *Controller) appendChunk(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	buf := make([]byte, len(chunk))
	copy(buf, chunk)
	c.mu.Lock()
	c.chunks = append(c.chunks, buf)
	c.mu.Unlock()
}

func (c *Controller) countSeconds(stop <-chan struct{}) {
	tk := c.newTicker(time.Second)
	defer tk.Stop()
	for {
		select {
		case <-tk.Chan():
			c.mu.Lock()
			// stopping covers the window where Stop has begun teardown but
			// the state is not yet Stopped; elapsed must freeze at that point.
			if c.state == StateRecording && !c.stopping {
				c.elapsed++
			}
			c.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// Stop finalizes the buffered chunks into the payload, releases the device
// and cancels the ticker, then transitions to Stopped. Calling Stop when
// not Recording is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != StateRecording || c.stopping {
		c.mu.Unlock()
		return
	}
	c.stopping = true
	stop := c.stopTick
	c.stopTick = nil
	c.mu.Unlock()

	close(stop)
	// Release flushes the final chunk through the sink before returning.
	err := c.device.Release()

	c.mu.Lock()
	c.payload = bytes.Join(c.chunks, nil)
	c.chunks = nil
	if err != nil {
		c.lastErr = err
	}
	c.state = StateStopped
	c.stopping = false
	c.mu.Unlock()
}

// Reset discards the session and returns to Idle. If called while
// Recording it performs the full Stop teardown first so the device is
// never leaked.
func (c *Controller) Reset() {
	c.Stop()
	c.mu.Lock()
	c.payload = nil
	c.chunks = nil
	c.elapsed = 0
	c.lastErr = nil
	c.state = StateIdle
	c.mu.Unlock()
}

// Close releases the device if a session is live. It exists so callers can
// defer teardown on every exit path.
func (c *Controller) Close() error {
	c.Reset()
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ElapsedSeconds is the number of whole seconds recorded so far. It stops
// advancing the moment Stop is called.
func (c *Controller) ElapsedSeconds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Payload is the finalized audio, present only after Stop.
func (c *Controller) Payload() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload
}

func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
