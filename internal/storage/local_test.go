package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "clip.mp3", strings.NewReader("mp3-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/audio/clip.mp3", url)

	data, err := os.ReadFile(filepath.Join(dir, "clip.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))
}

func TestLocalStore_BaseNamesFilename(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../escape.mp3", strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, "/audio/escape.mp3", url)
	assert.FileExists(t, filepath.Join(dir, "escape.mp3"))
}

func TestLocalStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "audio")

	_, err := NewLocalStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
}
