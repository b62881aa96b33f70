package usecases

import (
	"context"
	"fmt"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/session"
)

// Login exchanges an identity-provider session ID for an API session and
// persists it.
type Login struct {
	API      *api.Client
	Sessions *session.Store
}

func (l *Login) Execute(ctx context.Context, sessionID string) (*session.Session, error) {
	profile, err := l.API.Profile(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	sess := &session.Session{
		Token: profile.SessionToken,
		User: session.User{
			ID:      profile.ID,
			Email:   profile.Email,
			Name:    profile.Name,
			Picture: profile.Picture,
		},
	}
	if err := l.Sessions.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout clears the persisted session.
type Logout struct {
	Sessions *session.Store
}

func (l *Logout) Execute() error {
	return l.Sessions.Clear()
}
