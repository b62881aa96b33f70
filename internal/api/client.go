// Package api implements the HTTP client for the voicenotes recordings API.
package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("session token rejected")
	ErrNotFound     = errors.New("recording not found")
)

const defaultTimeout = 30 * time.Second

// apiError matches the server's error body: {"detail": "..."}.
type apiError struct {
	Detail string `json:"detail"`
}

// Client talks to the recordings API. It holds no credentials: every
// authenticated call takes the session token explicitly.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:   resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")).SetTimeout(defaultTimeout),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.New().String())
		return nil
	})
	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.Debug("api call",
			slog.String("method", resp.Request.Method),
			slog.String("url", resp.Request.URL),
			slog.Int("status", resp.StatusCode()),
			slog.Duration("took", resp.Time()),
		)
		return nil
	})
	return c
}

// Profile exchanges an identity-provider session ID for a user profile and
// session token. This is the only unauthenticated call besides Health.
func (c *Client) Profile(ctx context.Context, sessionID string) (*Profile, error) {
	var (
		profile Profile
		apiErr  apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Session-ID", sessionID).
		SetResult(&profile).
		SetError(&apiErr).
		Get("/api/auth/profile")
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if resp.IsError() {
		return nil, c.asError(resp, &apiErr)
	}
	return &profile, nil
}

// UserProfile fetches the logged-in user's account record.
func (c *Client) UserProfile(ctx context.Context, token string) (*User, error) {
	var (
		user   User
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&user).
		SetError(&apiErr).
		Get("/api/user/profile")
	if err != nil {
		return nil, fmt.Errorf("fetching user profile: %w", err)
	}
	if resp.IsError() {
		return nil, c.asError(resp, &apiErr)
	}
	return &user, nil
}

// Referral fetches the account's referral code and discount summary.
func (c *Client) Referral(ctx context.Context, token string) (*Referral, error) {
	var (
		ref    Referral
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&ref).
		SetError(&apiErr).
		Get("/api/user/referral")
	if err != nil {
		return nil, fmt.Errorf("fetching referral info: %w", err)
	}
	if resp.IsError() {
		return nil, c.asError(resp, &apiErr)
	}
	return &ref, nil
}

// Health checks that the API is reachable.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/api/")
	if err != nil {
		return fmt.Errorf("reaching API: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("API unhealthy (HTTP %d)", resp.StatusCode())
	}
	return nil
}

// CreateRecording uploads a captured audio payload and returns the created
// recording. The payload bytes are passed through opaquely as base64.
func (c *Client) CreateRecording(ctx context.Context, token string, req CreateRecording) (*Recording, error) {
	body := struct {
		Title     string   `json:"title"`
		AudioData string   `json:"audio_data"`
		Tags      []string `json:"tags"`
		Notes     string   `json:"notes"`
		Duration  float64  `json:"duration"`
	}{
		Title:     req.Title,
		AudioData: base64.StdEncoding.EncodeToString(req.Audio),
		Tags:      req.Tags,
		Notes:     req.Notes,
		Duration:  req.Duration,
	}
	if body.Tags == nil {
		body.Tags = []string{}
	}

	var (
		rec    Recording
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetResult(&rec).
		SetError(&apiErr).
		Post("/api/recordings")
	if err != nil {
		return nil, fmt.Errorf("uploading recording: %w", err)
	}
	if resp.IsError() {
		return nil, c.asError(resp, &apiErr)
	}
	return &rec, nil
}

// StartProcessing triggers server-side processing for a recording. The
// server acknowledges only; completion is observed by polling GetRecording.
func (c *Client) StartProcessing(ctx context.Context, token, recordingID string, kind ProcessKind) error {
	body := struct {
		RecordingID string `json:"recording_id"`
		Type        string `json:"type"`
	}{RecordingID: recordingID, Type: string(kind)}

	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetError(&apiErr).
		Post("/api/recordings/" + recordingID + "/process")
	if err != nil {
		return fmt.Errorf("starting %s processing: %w", kind, err)
	}
	if resp.IsError() {
		return c.asError(resp, &apiErr)
	}
	return nil
}

// GetRecording fetches the current snapshot of a recording.
func (c *Client) GetRecording(ctx context.Context, token, recordingID string) (*Recording, error) {
	var (
		rec    Recording
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&rec).
		SetError(&apiErr).
		Get("/api/recordings/" + recordingID)
	if err != nil {
		return nil, fmt.Errorf("fetching recording: %w", err)
	}
	if resp.IsError() {
		return nil, c.asError(resp, &apiErr)
	}
	return &rec, nil
}

// ListRecordings returns the current session's recordings, newest first.
func (c *Client) ListRecordings(ctx context.Context, token string) ([]Recording, error) {
	var (
		recs   []Recording
		apiErr apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&recs).
		SetError(&apiErr).
		Get("/api/recordings")
	if err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	if resp.IsError() {
		return nil, c.asError(resp, &apiErr)
	}
	return recs, nil
}

// UpdateRecording changes a recording's editable metadata.
func (c *Client) UpdateRecording(ctx context.Context, token, recordingID string, req UpdateRecording) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(req).
		SetError(&apiErr).
		Put("/api/recordings/" + recordingID)
	if err != nil {
		return fmt.Errorf("updating recording: %w", err)
	}
	if resp.IsError() {
		return c.asError(resp, &apiErr)
	}
	return nil
}

// DeleteRecording removes a recording.
func (c *Client) DeleteRecording(ctx context.Context, token, recordingID string) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(&apiErr).
		Delete("/api/recordings/" + recordingID)
	if err != nil {
		return fmt.Errorf("deleting recording: %w", err)
	}
	if resp.IsError() {
		return c.asError(resp, &apiErr)
	}
	return nil
}

func (c *Client) asError(resp *resty.Response, apiErr *apiError) error {
	detail := apiErr.Detail
	if detail == "" {
		detail = strings.TrimSpace(string(resp.Body()))
	}
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	}
	return fmt.Errorf("api error (HTTP %d): %s", resp.StatusCode(), detail)
}
