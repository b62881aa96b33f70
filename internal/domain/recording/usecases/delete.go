package usecases

import (
	"context"
	"fmt"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/session"
	"github.com/mfriedel/voicenotes/internal/store"
)

// Delete removes a recording server-side, then drops it from the cache.
// The cache is only touched after the server confirms.
type Delete struct {
	API     *api.Client
	Session *session.Session
	Index   *store.Index
}

func (d *Delete) Execute(ctx context.Context, recordingID string) error {
	if d.Session == nil {
		return ErrNotLoggedIn
	}
	if err := d.API.DeleteRecording(ctx, d.Session.Token, recordingID); err != nil {
		return fmt.Errorf("deleting recording: %w", err)
	}
	if d.Index != nil {
		_ = d.Index.Delete(recordingID)
	}
	return nil
}
