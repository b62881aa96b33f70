package capture

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
)

const chunkSize = 4096

// FFmpegDevice captures the default microphone by streaming an encoded
// container from an ffmpeg subprocess. The container bytes are passed
// through opaquely; no decoding happens on this side.
type FFmpegDevice struct {
	inputFormat string // e.g. avfoundation, pulse, alsa
	inputDevice string // e.g. ":default", "default"
	logger      *slog.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	readErr chan error
}

func NewFFmpegDevice(inputFormat, inputDevice string, logger *slog.Logger) *FFmpegDevice {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FFmpegDevice{
		inputFormat: inputFormat,
		inputDevice: inputDevice,
		logger:      logger,
	}
}

// CheckFFmpeg reports whether the ffmpeg binary is installed.
func CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}
	return nil
}

// Acquire starts ffmpeg reading the input device and streams encoded Ogg
// chunks to sink as they arrive. It returns once audio is flowing, or with
// ErrPermissionDenied / ErrDeviceUnavailable if ffmpeg exits before
// producing any output.
func (d *FFmpegDevice) Acquire(ctx context.Context, sink func(chunk []byte)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cmd != nil {
		return ErrAlreadyRecording
	}

	cmd := exec.Command("ffmpeg",
		"-f", d.inputFormat,
		"-i", d.inputDevice,
		"-ac", "1",
		"-ar", "16000",
		"-f", "ogg",
		"pipe:1",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	var stderrTail strings.Builder
	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			stderrTail.WriteString(line + "\n")
			d.logger.Debug("ffmpeg", slog.String("line", line))
		}
	}()

	firstData := make(chan struct{})
	readErr := make(chan error, 1)
	go func() {
		var seen bool
		buf := make([]byte, chunkSize)
		for {
			n, err := stdout.Read(buf)
			if n > 0 {
				if !seen {
					seen = true
					close(firstData)
				}
				sink(buf[:n])
			}
			if err != nil {
				if err != io.EOF {
					readErr <- err
				}
				close(readErr)
				return
			}
		}
	}()

	// Wait for audio to flow or for ffmpeg to bail out (no device, no
	// permission). cmd.Wait must only be called from Release, so failure
	// is detected via stream EOF before any data arrived.
	select {
	case <-firstData:
		d.cmd = cmd
		d.stdout = stdout
		d.readErr = readErr
		return nil
	case err, ok := <-readErr:
		werr := cmd.Wait()
		<-stderrDone
		if !ok || err == nil {
			err = werr
		}
		return classifyStartFailure(err, stderrTail.String())
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return ctx.Err()
	}
}

func classifyStartFailure(err error, stderr string) error {
	lower := strings.ToLower(stderr)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "not permitted") {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, firstLine(stderr))
	}
	return fmt.Errorf("%w: %v: %s", ErrDeviceUnavailable, err, firstLine(stderr))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Release asks ffmpeg to finalize the stream, drains the remaining chunks
// and reaps the process. Safe to call once per successful Acquire.
func (d *FFmpegDevice) Release() error {
	d.mu.Lock()
	cmd := d.cmd
	readErr := d.readErr
	d.cmd = nil
	d.stdout = nil
	d.readErr = nil
	d.mu.Unlock()

	if cmd == nil {
		return nil
	}

	// SIGINT makes ffmpeg flush and close the container cleanly.
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}

	// The reader goroutine owns stdout; wait for it to hit EOF so the
	// final chunk reaches the sink before Release returns.
	if err, ok := <-readErr; ok && err != nil {
		d.logger.Warn("ffmpeg stream read failed", slog.String("error", err.Error()))
	}
	// ffmpeg exits non-zero on SIGINT; that is the normal stop path.
	_ = cmd.Wait()
	return nil
}
