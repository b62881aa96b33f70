package usecases

import (
	"context"
	"fmt"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/session"
	"github.com/mfriedel/voicenotes/internal/store"
)

// List fetches the session's recordings and refreshes the local cache.
type List struct {
	API     *api.Client
	Session *session.Session
	Index   *store.Index
}

func (l *List) Execute(ctx context.Context) ([]api.Recording, error) {
	if l.Session == nil {
		return nil, ErrNotLoggedIn
	}
	recs, err := l.API.ListRecordings(ctx, l.Session.Token)
	if err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	if l.Index != nil {
		_ = l.Index.UpsertAll(recs)
	}
	return recs, nil
}

// Cached lists from the local index without touching the network.
func (l *List) Cached() ([]store.Entry, error) {
	if l.Index == nil {
		return nil, fmt.Errorf("local cache unavailable")
	}
	return l.Index.List()
}
