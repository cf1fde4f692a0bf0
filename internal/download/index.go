package download

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hbomb79/Trawl/pkg/logger"
	"github.com/rjeczalik/notify"
)

// forceRescanInterval guards against missed filesystem events; the index
// rescans on this cadence regardless of the watcher.
const forceRescanInterval = time.Second * 30

type (
	// Entry describes one downloaded video in the storage root.
	// Generated thumbnails are folded into their video's entry rather
	// than listed separately.
	Entry struct {
		Filename     string    `json:"filename"`
		Size         int64     `json:"size"`
		SizeMB       float64   `json:"size_mb"`
		ModifiedAt   time.Time `json:"modified_at"`
		HasThumbnail bool      `json:"has_thumbnail"`
		Thumbnail    string    `json:"thumbnail,omitempty"`
	}

	// Index maintains an in-memory listing of the storage root, kept
	// fresh by an OS filesystem watcher while running. Snapshot is safe
	// to call whether or not the watcher is running; the index falls
	// back to its last scan.
	Index struct {
		mu      sync.Mutex
		root    string
		entries []Entry
		log     logger.Logger
	}
)

func NewIndex(root string, log logger.Logger) *Index {
	index := &Index{root: root, log: log}
	index.rescan()
	return index
}

// Run watches the storage root for changes until the context is
// cancelled, rescanning on every event (and periodically as a safety
// net).
func (index *Index) Run(ctx context.Context) error {
	events := make(chan notify.EventInfo, 8)
	if err := notify.Watch(index.root, events, notify.All); err != nil {
		return err
	}
	defer notify.Stop(events)

	ticker := time.NewTicker(forceRescanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-events:
			index.rescan()
		case <-ticker.C:
			index.rescan()
		case <-ctx.Done():
			return nil
		}
	}
}

// Snapshot returns the most recent listing, sorted by modification time
// (newest first).
func (index *Index) Snapshot() []Entry {
	index.mu.Lock()
	defer index.mu.Unlock()

	out := make([]Entry, len(index.entries))
	copy(out, index.entries)
	return out
}

func (index *Index) rescan() {
	dirEntries, err := os.ReadDir(index.root)
	if err != nil {
		index.log.Emit(logger.WARNING, "Failed to scan storage root %s: %v\n", index.root, err)
		return
	}

	thumbnails := make(map[string]string)
	for _, entry := range dirEntries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), thumbnailSuffix) {
			stem := strings.TrimSuffix(entry.Name(), thumbnailSuffix)
			thumbnails[stem] = entry.Name()
		}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), thumbnailSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		thumbnail, hasThumbnail := thumbnails[stem]
		entries = append(entries, Entry{
			Filename:     entry.Name(),
			Size:         info.Size(),
			SizeMB:       math.Round(float64(info.Size())/(1024*1024)*100) / 100,
			ModifiedAt:   info.ModTime(),
			HasThumbnail: hasThumbnail,
			Thumbnail:    thumbnail,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModifiedAt.After(entries[j].ModifiedAt)
	})

	index.mu.Lock()
	index.entries = entries
	index.mu.Unlock()
}
