package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	sess := &Session{
		Token: "tok-abc",
		User:  User{ID: "u1", Email: "pat@example.com", Name: "Pat"},
	}
	require.NoError(t, store.Save(sess))
	assert.False(t, sess.SavedAt.IsZero(), "save must stamp the session")

	restored, err := store.Restore()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", restored.Token)
	assert.Equal(t, "pat@example.com", restored.User.Email)
}

func TestRestoreWithoutSession(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Restore()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRestoreRejectsEmptyToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte(`{"token":""}`), 0o600))

	_, err := NewStore(dir).Restore()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionFileIsPrivate(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(&Session{Token: "tok"}))

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewStore(dir)

	require.NoError(t, store.Save(&Session{Token: "tok"}))
	_, err := store.Restore()
	assert.NoError(t, err)
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(&Session{Token: "tok"}))

	require.NoError(t, store.Clear())
	_, err := store.Restore()
	assert.ErrorIs(t, err, ErrNoSession)

	assert.NoError(t, store.Clear(), "clearing an absent session must succeed")
}
