package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSendsSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/profile", r.URL.Path)
		assert.Equal(t, "sess-123", r.Header.Get("X-Session-ID"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":            "u1",
			"email":         "pat@example.com",
			"name":          "Pat",
			"session_token": "tok-abc",
		})
	}))
	defer srv.Close()

	profile, err := New(srv.URL).Profile(context.Background(), "sess-123")
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", profile.Email)
	assert.Equal(t, "tok-abc", profile.SessionToken)
}

func TestProfileRejectedSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid session"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Profile(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid session")
}

func TestCreateRecordingEncodesAudio(t *testing.T) {
	payload := []byte{0x4f, 0x67, 0x67, 0x53, 0x00, 0x01} // raw container bytes

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/recordings", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

		var body struct {
			Title     string   `json:"title"`
			AudioData string   `json:"audio_data"`
			Tags      []string `json:"tags"`
			Notes     string   `json:"notes"`
			Duration  float64  `json:"duration"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Standup", body.Title)
		assert.Equal(t, base64.StdEncoding.EncodeToString(payload), body.AudioData)
		assert.Equal(t, []string{"work"}, body.Tags)
		assert.InDelta(t, 12.0, body.Duration, 0.001)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Recording{
			ID:        "r1",
			Title:     body.Title,
			AudioData: body.AudioData,
			Tags:      body.Tags,
			Status:    StatusUploaded,
			CreatedAt: time.Now().UTC(),
		})
	}))
	defer srv.Close()

	rec, err := New(srv.URL).CreateRecording(context.Background(), "tok-abc", CreateRecording{
		Title:    "Standup",
		Audio:    payload,
		Tags:     []string{"work"},
		Duration: 12.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.ID)
	assert.Equal(t, StatusUploaded, rec.Status)

	roundTripped, err := base64.StdEncoding.DecodeString(rec.AudioData)
	require.NoError(t, err)
	assert.Equal(t, payload, roundTripped)
}

func TestCreateRecordingNeverSendsNullTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, "[]", string(body["tags"]))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Recording{ID: "r1", Status: StatusUploaded})
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateRecording(context.Background(), "tok", CreateRecording{Title: "t", Audio: []byte{1}})
	require.NoError(t, err)
}

func TestStartProcessingBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recordings/r1/process", r.URL.Path)

		var body struct {
			RecordingID string `json:"recording_id"`
			Type        string `json:"type"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r1", body.RecordingID)
		assert.Equal(t, "summary", body.Type)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Processing started"})
	}))
	defer srv.Close()

	err := New(srv.URL).StartProcessing(context.Background(), "tok", "r1", KindSummary)
	assert.NoError(t, err)
}

func TestGetRecordingNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Recording not found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetRecording(context.Background(), "tok", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRecordings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recordings", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Recording{
			{ID: "r2", Title: "Later", Status: StatusCompleted},
			{ID: "r1", Title: "Earlier", Status: StatusUploaded},
		})
	}))
	defer srv.Close()

	recs, err := New(srv.URL).ListRecordings(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "r2", recs[0].ID)
	assert.True(t, recs[0].Completed())
	assert.False(t, recs[1].Completed())
}

func TestDeleteRecording(t *testing.T) {
	deleted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/recordings/r1", r.URL.Path)
		deleted = true
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Recording deleted"})
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteRecording(context.Background(), "tok", "r1"))
	assert.True(t, deleted)
}

func TestUserProfileAndReferral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/user/profile":
			json.NewEncoder(w).Encode(User{
				ID:                 "u1",
				Email:              "pat@example.com",
				Name:               "Pat",
				SubscriptionStatus: "trial",
				ReferralCode:       "abc12345",
			})
		case "/api/user/referral":
			json.NewEncoder(w).Encode(Referral{
				ReferralCode:   "abc12345",
				DiscountAmount: 0.5,
				MonthlyCost:    1.5,
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := New(srv.URL)

	user, err := client.UserProfile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "trial", user.SubscriptionStatus)
	assert.Equal(t, "abc12345", user.ReferralCode)

	ref, err := client.Referral(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "abc12345", ref.ReferralCode)
	assert.InDelta(t, 1.5, ref.MonthlyCost, 0.001)
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"full", "summary", "chapters"} {
		kind, err := ParseKind(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, kind.String())
	}

	_, err := ParseKind("transcribe")
	assert.Error(t, err)
}
