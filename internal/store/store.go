// Package store keeps a local SQLite index of recording metadata so the
// list command works without a network round-trip. It is a read cache of
// server state, never a source of truth.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mfriedel/voicenotes/internal/api"
)

// Entry is one cached recording. Audio payloads are never cached locally.
type Entry struct {
	ID            string
	Title         string
	Status        string
	Duration      float64
	HasTranscript bool
	HasSummary    bool
	CreatedAt     time.Time
	SyncedAt      time.Time
}

// Index is the local recording metadata cache.
type Index struct {
	db *sql.DB
}

func Open(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS recordings (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		duration REAL NOT NULL DEFAULT 0,
		has_transcript INTEGER NOT NULL DEFAULT 0,
		has_summary INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		synced_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_recordings_created_at ON recordings(created_at);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Upsert records the latest server snapshot of a recording.
func (i *Index) Upsert(rec *api.Recording) error {
	var duration float64
	if rec.Duration != nil {
		duration = *rec.Duration
	}

	query := `
	INSERT INTO recordings (id, title, status, duration, has_transcript, has_summary, created_at, synced_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		status = excluded.status,
		duration = excluded.duration,
		has_transcript = excluded.has_transcript,
		has_summary = excluded.has_summary,
		synced_at = excluded.synced_at
	`
	_, err := i.db.Exec(query,
		rec.ID, rec.Title, rec.Status, duration,
		rec.Transcript != nil, rec.Summary != nil,
		rec.CreatedAt, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("caching recording %s: %w", rec.ID, err)
	}
	return nil
}

// UpsertAll caches a full listing in one transaction.
func (i *Index) UpsertAll(recs []api.Recording) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("caching recordings: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for idx := range recs {
		rec := &recs[idx]
		var duration float64
		if rec.Duration != nil {
			duration = *rec.Duration
		}
		_, err := tx.Exec(`
		INSERT INTO recordings (id, title, status, duration, has_transcript, has_summary, created_at, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			duration = excluded.duration,
			has_transcript = excluded.has_transcript,
			has_summary = excluded.has_summary,
			synced_at = excluded.synced_at`,
			rec.ID, rec.Title, rec.Status, duration,
			rec.Transcript != nil, rec.Summary != nil,
			rec.CreatedAt, now,
		)
		if err != nil {
			return fmt.Errorf("caching recording %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// List returns cached recordings, newest first.
func (i *Index) List() ([]Entry, error) {
	rows, err := i.db.Query(`
	SELECT id, title, status, duration, has_transcript, has_summary, created_at, synced_at
	FROM recordings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing cached recordings: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Status, &e.Duration,
			&e.HasTranscript, &e.HasSummary, &e.CreatedAt, &e.SyncedAt); err != nil {
			return nil, fmt.Errorf("scanning cached recording: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete drops a recording from the cache after the server confirms the
// delete; the cache is never mutated optimistically.
func (i *Index) Delete(id string) error {
	if _, err := i.db.Exec(`DELETE FROM recordings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("removing cached recording %s: %w", id, err)
	}
	return nil
}

func (i *Index) Close() error {
	return i.db.Close()
}
