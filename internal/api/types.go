package api

import (
	"fmt"
	"time"
)

// Recording status values as reported by the server.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ProcessKind selects the kind of server-side processing for a recording.
type ProcessKind string

const (
	KindFull     ProcessKind = "full"
	KindSummary  ProcessKind = "summary"
	KindChapters ProcessKind = "chapters"
)

// ParseKind validates a user-supplied processing kind so that invalid
// values never reach the API.
func ParseKind(s string) (ProcessKind, error) {
	switch ProcessKind(s) {
	case KindFull, KindSummary, KindChapters:
		return ProcessKind(s), nil
	}
	return "", fmt.Errorf("unknown processing kind %q (expected full, summary or chapters)", s)
}

func (k ProcessKind) String() string { return string(k) }

// Recording is the server's view of an uploaded recording. Transcript,
// summary and chapters are populated once processing completes.
type Recording struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Title      string    `json:"title"`
	AudioData  string    `json:"audio_data"` // base64-encoded payload
	Transcript *string   `json:"transcript,omitempty"`
	Summary    *string   `json:"summary,omitempty"`
	Chapters   *string   `json:"chapters,omitempty"`
	Tags       []string  `json:"tags"`
	Notes      string    `json:"notes"`
	Duration   *float64  `json:"duration,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Completed reports whether server-side processing has finished.
func (r *Recording) Completed() bool { return r.Status == StatusCompleted }

// Profile is returned by the identity hand-off endpoint.
type Profile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture,omitempty"`
	SessionToken string `json:"session_token"`
}

// User is the full account record served by the user endpoints.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Picture            string    `json:"picture,omitempty"`
	SubscriptionStatus string    `json:"subscription_status"`
	ReferralCode       string    `json:"referral_code"`
	DiscountAmount     float64   `json:"discount_amount"`
	CreatedAt          time.Time `json:"created_at"`
}

// Referral is the referral code and discount summary for the account.
type Referral struct {
	ReferralCode   string  `json:"referral_code"`
	DiscountAmount float64 `json:"discount_amount"`
	MonthlyCost    float64 `json:"monthly_cost"`
}

// CreateRecording holds everything needed to upload a captured payload.
type CreateRecording struct {
	Title    string
	Audio    []byte // opaque encoded audio, uploaded as base64
	Tags     []string
	Notes    string
	Duration float64 // seconds
}

// UpdateRecording carries the metadata fields the server allows updating.
type UpdateRecording struct {
	Title string   `json:"title,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	Notes string   `json:"notes,omitempty"`
}
