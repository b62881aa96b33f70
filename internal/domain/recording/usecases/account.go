package usecases

import (
	"context"
	"fmt"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/session"
)

// Account exposes the logged-in user's profile and referral standing.
type Account struct {
	API     *api.Client
	Session *session.Session
}

func (a *Account) Profile(ctx context.Context) (*api.User, error) {
	if a.Session == nil {
		return nil, ErrNotLoggedIn
	}
	user, err := a.API.UserProfile(ctx, a.Session.Token)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return user, nil
}

func (a *Account) Referral(ctx context.Context) (*api.Referral, error) {
	if a.Session == nil {
		return nil, ErrNotLoggedIn
	}
	ref, err := a.API.Referral(ctx, a.Session.Token)
	if err != nil {
		return nil, fmt.Errorf("fetching referral info: %w", err)
	}
	return ref, nil
}
