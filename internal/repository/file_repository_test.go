package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	repo := NewFileRepository(dir)
	ctx := context.Background()

	// Test case 1: a document that was never saved is empty
	entries, err := repo.Load(ctx, DocSessions)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Test case 2: saved entries come back, and the directory is created
	require.NoError(t, repo.Save(ctx, DocSessions, map[string]string{"ramesh": "abc"}))
	entries, err = repo.Load(ctx, DocSessions)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ramesh": "abc"}, entries)

	data, err := os.ReadFile(filepath.Join(dir, "sessions.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ramesh":"abc"}`, string(data))

	// Test case 3: no temporary files are left behind
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileRepositoryCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "passwords.json"), []byte("{not json"), 0o600))
	repo := NewFileRepository(dir)

	_, err := repo.Load(context.Background(), DocPasswords)
	assert.Error(t, err)
}

func TestFileRepositoryEmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("  \n"), 0o600))
	repo := NewFileRepository(dir)

	entries, err := repo.Load(context.Background(), DocNotes)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileRepositoryRejectsUnsafeNames(t *testing.T) {
	repo := NewFileRepository(t.TempDir())

	for _, name := range []string{"", "../etc", "a/b", ".hidden"} {
		_, err := repo.Load(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidDocument, "document %q", name)
		assert.ErrorIs(t, repo.Save(context.Background(), name, nil), ErrInvalidDocument, "document %q", name)
	}
}
