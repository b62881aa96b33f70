// Package usecases wires the capture, API, session and cache layers into
// the operations the CLI exposes.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/session"
	"github.com/mfriedel/voicenotes/internal/store"
)

// ErrNotLoggedIn means no session is available for an authenticated call.
var ErrNotLoggedIn = errors.New("not logged in: run 'voicenotes login <session-id>' first")

// Upload sends a captured audio payload to the API as a new recording.
type Upload struct {
	API         *api.Client
	Session     *session.Session
	Index       *store.Index
	DefaultTags []string
}

// UploadOptions describes the recording to create around the payload.
type UploadOptions struct {
	Title    string
	Tags     []string
	Notes    string
	Audio    []byte
	Duration float64 // seconds
}

// Execute uploads the payload. On failure the caller keeps the payload, so
// the user can retry saving without re-recording.
func (u *Upload) Execute(ctx context.Context, opts UploadOptions) (*api.Recording, error) {
	if u.Session == nil {
		return nil, ErrNotLoggedIn
	}
	if len(opts.Audio) == 0 {
		return nil, fmt.Errorf("nothing to upload: empty audio payload")
	}

	tags := append([]string{}, u.DefaultTags...)
	tags = append(tags, opts.Tags...)

	rec, err := u.API.CreateRecording(ctx, u.Session.Token, api.CreateRecording{
		Title:    opts.Title,
		Audio:    opts.Audio,
		Tags:     tags,
		Notes:    opts.Notes,
		Duration: opts.Duration,
	})
	if err != nil {
		return nil, fmt.Errorf("saving recording: %w", err)
	}

	if u.Index != nil {
		_ = u.Index.Upsert(rec) // cache write failures are not upload failures
	}
	return rec, nil
}
