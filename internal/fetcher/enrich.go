package fetcher

import (
	"context"

	"github.com/hbomb79/Trawl/internal/ytdlp"
	"github.com/hbomb79/Trawl/pkg/logger"
)

// Thumbnailer converts a remote thumbnail image into an embeddable
// data-URI representation. An empty string means the thumbnail could not
// be produced; that is never an error.
type Thumbnailer interface {
	FetchBase64(ctx context.Context, url string) string
}

// enricher performs the per-record second pass: a full (non-flat)
// extraction layering title, duration, view count, uploader, upload date,
// thumbnail and format detail onto each record. Failure for one record
// leaves that record exactly as it was.
type enricher struct {
	extractor   Extractor
	thumbnailer Thumbnailer
	log         logger.Logger
}

func (enricher *enricher) enrichAll(ctx context.Context, records []VideoRecord) {
	for i := range records {
		enricher.enrich(ctx, &records[i])
	}
}

func (enricher *enricher) enrich(ctx context.Context, record *VideoRecord) {
	info, err := enricher.extractor.Extract(ctx, record.URL, false)
	if err != nil || info == nil {
		enricher.log.Emit(logger.DEBUG, "Skipping enrichment for %s: %v\n", record.URL, err)
		return
	}

	// Fields are layered on, never cleared: an absent value from the
	// extractor leaves whatever a strategy already discovered.
	if info.Title != "" {
		record.Title = info.Title
	}
	if duration := info.DurationSeconds(); duration != nil {
		record.Duration = duration
		record.DurationString = FormatDuration(duration)
	}
	if info.ViewCount != nil {
		record.ViewCount = info.ViewCount
	}
	if info.Uploader != "" {
		record.Uploader = info.Uploader
	}
	if info.UploadDate != "" {
		record.UploadDate = info.UploadDate
	}

	if info.Thumbnail != "" {
		record.ThumbnailURL = info.Thumbnail
		if encoded := enricher.thumbnailer.FetchBase64(ctx, info.Thumbnail); encoded != "" {
			record.ThumbnailBase64 = encoded
		}
	}

	if formats := videoOnlyFormats(info.Formats); len(formats) > 0 {
		record.Formats = formats
	}
}

// videoOnlyFormats drops audio-only entries (those whose video codec is
// the "none" sentinel) and maps the remainder into the record shape.
func videoOnlyFormats(formats []ytdlp.FormatInfo) []Format {
	var out []Format
	for _, format := range formats {
		if format.VCodec == "none" {
			continue
		}

		var quality interface{} = "unknown"
		if format.Height > 0 {
			quality = format.Height
		}

		out = append(out, Format{
			FormatID: format.FormatID,
			Ext:      format.Ext,
			Quality:  quality,
			Filesize: format.Filesize,
			URL:      format.URL,
		})
	}

	return out
}
