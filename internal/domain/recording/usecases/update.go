package usecases

import (
	"context"
	"fmt"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/session"
	"github.com/mfriedel/voicenotes/internal/store"
)

// Update edits a recording's metadata (title, tags, notes) server-side and
// refreshes the cached snapshot.
type Update struct {
	API     *api.Client
	Session *session.Session
	Index   *store.Index
}

func (u *Update) Execute(ctx context.Context, recordingID string, req api.UpdateRecording) error {
	if u.Session == nil {
		return ErrNotLoggedIn
	}
	if err := u.API.UpdateRecording(ctx, u.Session.Token, recordingID, req); err != nil {
		return fmt.Errorf("updating recording: %w", err)
	}
	if u.Index != nil {
		if rec, err := u.API.GetRecording(ctx, u.Session.Token, recordingID); err == nil {
			_ = u.Index.Upsert(rec)
		}
	}
	return nil
}
