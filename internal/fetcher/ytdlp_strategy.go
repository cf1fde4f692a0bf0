package fetcher

import (
	"context"
	"errors"

	"github.com/hbomb79/Trawl/internal/ytdlp"
	"github.com/hbomb79/Trawl/pkg/logger"
)

// Extractor is the delegated media extraction capability. Implementations
// must return ytdlp.ErrUnsupported (wrapped or not) when the URL's site is
// simply not one they know how to extract.
type Extractor interface {
	Extract(ctx context.Context, url string, flat bool) (*ytdlp.Info, error)
}

// extractorStrategy asks the delegated extractor (in flat mode) whether it
// recognises the page URL directly. An unsupported site is an expected
// outcome and yields nothing; so does any other failure, which is logged
// and contained here.
type extractorStrategy struct {
	extractor Extractor
	log       logger.Logger
}

func (strategy *extractorStrategy) extract(ctx context.Context, pageURL string) []VideoRecord {
	info, err := strategy.extractor.Extract(ctx, pageURL, true)
	if err != nil {
		if !errors.Is(err, ytdlp.ErrUnsupported) {
			strategy.log.Emit(logger.WARNING, "Delegated extraction of %s abandoned: %v\n", pageURL, err)
		}
		return nil
	}

	if info == nil {
		return nil
	}

	if info.IsPlaylist() {
		records := make([]VideoRecord, 0, len(info.Entries))
		for _, entry := range info.Entries {
			if entry == nil {
				continue
			}

			records = append(records, VideoRecord{
				URL:       entryURL(entry),
				Title:     titleOrUnknown(entry.Title),
				Duration:  entry.DurationSeconds(),
				ViewCount: entry.ViewCount,
				Method:    MethodYtdlpPlaylist,
			})
		}
		return records
	}

	record := VideoRecord{
		URL:       singleURL(info, pageURL),
		Title:     titleOrUnknown(info.Title),
		Duration:  info.DurationSeconds(),
		ViewCount: info.ViewCount,
		Method:    MethodYtdlpSingle,
	}

	// Flat mode reports no codec detail, so every format URL is kept
	// as-is; the enrichment pass applies the video-only filtering.
	for _, format := range info.Formats {
		if format.URL != "" {
			record.Formats = append(record.Formats, Format{URL: format.URL})
		}
	}

	return []VideoRecord{record}
}

// entryURL prefers the canonical page URL of a playlist entry over the
// raw extractor URL.
func entryURL(entry *ytdlp.Info) string {
	if entry.WebpageURL != "" {
		return entry.WebpageURL
	}
	return entry.URL
}

// singleURL prefers the extractor's canonical page URL, falling back to
// the URL the caller asked about.
func singleURL(info *ytdlp.Info, requested string) string {
	if info.WebpageURL != "" {
		return info.WebpageURL
	}
	return requested
}

func titleOrUnknown(title string) string {
	if title == "" {
		return "Unknown"
	}
	return title
}
