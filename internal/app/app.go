package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mfriedel/voicenotes/config"
	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/capture"
	"github.com/mfriedel/voicenotes/internal/domain/recording/usecases"
	"github.com/mfriedel/voicenotes/internal/session"
	"github.com/mfriedel/voicenotes/internal/store"
)

// App holds the wired-up components. The session is restored once at
// startup and handed explicitly to everything that needs it.
type App struct {
	API      *api.Client
	Capture  *capture.Controller
	Upload   *usecases.Upload
	Process  *usecases.Process
	List     *usecases.List
	Delete   *usecases.Delete
	Update   *usecases.Update
	Account  *usecases.Account
	Login    *usecases.Login
	Logout   *usecases.Logout
	Sessions *session.Store
	Session  *session.Session // nil when logged out
	Index    *store.Index
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	client := api.New(cfg.APIBaseURL, api.WithLogger(logger))

	sessions := session.NewStore(cfg.StateDir)
	sess, err := sessions.Restore()
	if err != nil && err != session.ErrNoSession {
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	index, err := store.Open(filepath.Join(cfg.StateDir, "recordings.db"))
	if err != nil {
		// The cache is an optimization; run without it rather than fail.
		logger.Warn("recording cache unavailable", slog.String("error", err.Error()))
		index = nil
	}

	device := capture.NewFFmpegDevice(cfg.InputFormat, cfg.InputDevice, logger)
	controller := capture.NewController(device)

	return &App{
		API:     client,
		Capture: controller,
		Upload: &usecases.Upload{
			API:         client,
			Session:     sess,
			Index:       index,
			DefaultTags: cfg.DefaultTags,
		},
		Process: &usecases.Process{
			API:          client,
			Session:      sess,
			Index:        index,
			PollInterval: cfg.PollInterval,
		},
		List:     &usecases.List{API: client, Session: sess, Index: index},
		Delete:   &usecases.Delete{API: client, Session: sess, Index: index},
		Update:   &usecases.Update{API: client, Session: sess, Index: index},
		Account:  &usecases.Account{API: client, Session: sess},
		Login:    &usecases.Login{API: client, Sessions: sessions},
		Logout:   &usecases.Logout{Sessions: sessions},
		Sessions: sessions,
		Session:  sess,
		Index:    index,
	}, nil
}

// Close releases the capture device (if live) and the cache.
func (a *App) Close() error {
	_ = a.Capture.Close()
	if a.Index != nil {
		return a.Index.Close()
	}
	return nil
}
