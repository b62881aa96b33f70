package usecases

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/poller"
	"github.com/mfriedel/voicenotes/internal/session"
	"github.com/mfriedel/voicenotes/internal/store"
)

// Process starts server-side processing for a recording and tracks each
// requested kind to a terminal state. Kinds run as independent jobs; one
// job failing never corrupts another.
type Process struct {
	API          *api.Client
	Session      *session.Session
	Index        *store.Index
	PollInterval time.Duration
}

// sessionAPI binds the session token to the narrow surface the poller needs.
type sessionAPI struct {
	client *api.Client
	token  string
}

func (s sessionAPI) StartProcessing(ctx context.Context, recordingID string, kind api.ProcessKind) error {
	return s.client.StartProcessing(ctx, s.token, recordingID, kind)
}

func (s sessionAPI) GetRecording(ctx context.Context, recordingID string) (*api.Recording, error) {
	return s.client.GetRecording(ctx, s.token, recordingID)
}

// Execute runs one poller per kind and blocks until every kind reaches a
// terminal state or ctx is cancelled. notify is called once per kind with
// its terminal result; it may be nil. A failing kind is terminal only for
// itself: its siblings keep polling to their own terminal states, so only
// ctx cancellation stops jobs early.
func (p *Process) Execute(ctx context.Context, recordingID string, kinds []api.ProcessKind, notify func(kind api.ProcessKind, res poller.Result)) error {
	if p.Session == nil {
		return ErrNotLoggedIn
	}

	client := sessionAPI{client: p.API, token: p.Session.Token}
	opts := poller.Options{PollInterval: p.PollInterval}

	var g errgroup.Group
	for _, kind := range kinds {
		g.Go(func() error {
			results := make(chan poller.Result, 1)
			handle := poller.Run(ctx, client, recordingID, kind, func(r poller.Result) {
				results <- r
			}, opts)

			select {
			case res := <-results:
				if notify != nil {
					notify(kind, res)
				}
				if res.Err != nil {
					return fmt.Errorf("%s: %w", kind, res.Err)
				}
				if p.Index != nil && res.Recording != nil {
					_ = p.Index.Upsert(res.Recording)
				}
				return nil
			case <-ctx.Done():
				handle.Cancel()
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}
