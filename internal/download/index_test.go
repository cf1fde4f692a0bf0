package download_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbomb79/Trawl/internal/download"
	"github.com/hbomb79/Trawl/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileAt(t *testing.T, path string, size int, modifiedAt time.Time) {
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	require.NoError(t, os.Chtimes(path, modifiedAt, modifiedAt))
}

func Test_Index_InitialScanPairsThumbnails(t *testing.T) {
	root := t.TempDir()
	now := time.Now()
	writeFileAt(t, filepath.Join(root, "older.mp4"), 1024, now.Add(-time.Hour))
	writeFileAt(t, filepath.Join(root, "newer.webm"), 2048, now)
	writeFileAt(t, filepath.Join(root, "newer_thumb.jpg"), 64, now)
	require.NoError(t, os.Mkdir(filepath.Join(root, "subdir"), 0755))

	index := download.NewIndex(root, logger.Get("IndexTest"))
	entries := index.Snapshot()

	// Thumbnails and directories never appear as entries of their own.
	require.Len(t, entries, 2)

	assert.Equal(t, "newer.webm", entries[0].Filename, "listing is newest-first")
	assert.Equal(t, int64(2048), entries[0].Size)
	assert.True(t, entries[0].HasThumbnail)
	assert.Equal(t, "newer_thumb.jpg", entries[0].Thumbnail)

	assert.Equal(t, "older.mp4", entries[1].Filename)
	assert.False(t, entries[1].HasThumbnail)
	assert.Empty(t, entries[1].Thumbnail)
}

func Test_Index_SnapshotIsACopy(t *testing.T) {
	root := t.TempDir()
	writeFileAt(t, filepath.Join(root, "a.mp4"), 10, time.Now())

	index := download.NewIndex(root, logger.Get("IndexTest"))
	first := index.Snapshot()
	first[0].Filename = "mutated"

	assert.Equal(t, "a.mp4", index.Snapshot()[0].Filename)
}

func Test_Index_EmptyRootYieldsEmptySnapshot(t *testing.T) {
	index := download.NewIndex(t.TempDir(), logger.Get("IndexTest"))
	assert.Empty(t, index.Snapshot())
}
