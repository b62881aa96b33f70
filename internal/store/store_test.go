package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfriedel/voicenotes/internal/api"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "recordings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestUpsertAndList(t *testing.T) {
	idx := openTestIndex(t)

	older := &api.Recording{
		ID:        "r1",
		Title:     "First",
		Status:    api.StatusUploaded,
		Duration:  f64Ptr(10.5),
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := &api.Recording{
		ID:         "r2",
		Title:      "Second",
		Status:     api.StatusCompleted,
		Transcript: strPtr("hello"),
		Summary:    strPtr("a summary"),
		CreatedAt:  time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, idx.Upsert(older))
	require.NoError(t, idx.Upsert(newer))

	entries, err := idx.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "r2", entries[0].ID, "newest first")
	assert.True(t, entries[0].HasTranscript)
	assert.True(t, entries[0].HasSummary)

	assert.Equal(t, "r1", entries[1].ID)
	assert.InDelta(t, 10.5, entries[1].Duration, 0.001)
	assert.False(t, entries[1].HasTranscript)
}

func TestUpsertUpdatesInPlace(t *testing.T) {
	idx := openTestIndex(t)

	rec := &api.Recording{
		ID:        "r1",
		Title:     "Note",
		Status:    api.StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, idx.Upsert(rec))

	rec.Status = api.StatusCompleted
	rec.Transcript = strPtr("done")
	require.NoError(t, idx.Upsert(rec))

	entries, err := idx.List()
	require.NoError(t, err)
	require.Len(t, entries, 1, "upsert must not duplicate rows")
	assert.Equal(t, api.StatusCompleted, entries[0].Status)
	assert.True(t, entries[0].HasTranscript)
}

func TestUpsertAllReplacesSnapshot(t *testing.T) {
	idx := openTestIndex(t)

	recs := []api.Recording{
		{ID: "r1", Title: "One", Status: api.StatusUploaded, CreatedAt: time.Now().UTC()},
		{ID: "r2", Title: "Two", Status: api.StatusUploaded, CreatedAt: time.Now().UTC()},
	}
	require.NoError(t, idx.UpsertAll(recs))

	recs[0].Status = api.StatusCompleted
	require.NoError(t, idx.UpsertAll(recs))

	entries, err := idx.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		if e.ID == "r1" {
			assert.Equal(t, api.StatusCompleted, e.Status)
		}
	}
}

func TestDelete(t *testing.T) {
	idx := openTestIndex(t)

	require.NoError(t, idx.Upsert(&api.Recording{
		ID: "r1", Title: "Note", Status: api.StatusUploaded, CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, idx.Delete("r1"))

	entries, err := idx.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, idx.Delete("r1"), "deleting an absent row must succeed")
}
