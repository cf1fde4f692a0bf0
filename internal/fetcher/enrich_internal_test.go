package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/hbomb79/Trawl/internal/ytdlp"
	"github.com/hbomb79/Trawl/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Enricher_LayersFieldsWithoutClearing(t *testing.T) {
	views := int64(9000)
	target := &enricher{
		extractor: &stubExtractor{infos: map[string]*ytdlp.Info{
			"https://example.com/v": {
				Title:      "Enriched",
				Duration:   3661,
				ViewCount:  &views,
				Uploader:   "channel",
				UploadDate: "20260101",
				Thumbnail:  "https://example.com/t.jpg",
			},
		}},
		thumbnailer: &stubThumbnailer{encoded: "data:image/jpeg;base64,AAAA"},
		log:         logger.Get("Test"),
	}

	record := VideoRecord{URL: "https://example.com/v", Type: "direct", Method: MethodRegex}
	target.enrich(context.Background(), &record)

	assert.Equal(t, "Enriched", record.Title)
	require.NotNil(t, record.Duration)
	assert.Equal(t, 3661, *record.Duration)
	assert.Equal(t, "01:01:01", record.DurationString)
	assert.Equal(t, &views, record.ViewCount)
	assert.Equal(t, "channel", record.Uploader)
	assert.Equal(t, "20260101", record.UploadDate)
	assert.Equal(t, "https://example.com/t.jpg", record.ThumbnailURL)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", record.ThumbnailBase64)

	// The discovery-time fields survive enrichment untouched.
	assert.Equal(t, "direct", record.Type)
	assert.Equal(t, MethodRegex, record.Method)
}

func Test_Enricher_AbsentFieldsLeaveRecordUnchanged(t *testing.T) {
	target := &enricher{
		extractor:   &stubExtractor{infos: map[string]*ytdlp.Info{"https://example.com/v": {}}},
		thumbnailer: &stubThumbnailer{},
		log:         logger.Get("Test"),
	}

	duration := 30
	record := VideoRecord{URL: "https://example.com/v", Title: "From HTML", Duration: &duration}
	target.enrich(context.Background(), &record)

	assert.Equal(t, "From HTML", record.Title)
	assert.Equal(t, &duration, record.Duration)
	assert.Empty(t, record.ThumbnailURL)
}

func Test_Enricher_ExtractionFailureLeavesRecordAsIs(t *testing.T) {
	target := &enricher{
		extractor:   &stubExtractor{err: errors.New("timed out")},
		thumbnailer: &stubThumbnailer{},
		log:         logger.Get("Test"),
	}

	record := VideoRecord{URL: "https://example.com/v", Title: "Original"}
	target.enrich(context.Background(), &record)
	assert.Equal(t, "Original", record.Title)
}

func Test_Enricher_ThumbnailFailureKeepsURLOnly(t *testing.T) {
	target := &enricher{
		extractor: &stubExtractor{infos: map[string]*ytdlp.Info{
			"https://example.com/v": {Thumbnail: "https://example.com/t.jpg"},
		}},
		thumbnailer: &stubThumbnailer{encoded: ""},
		log:         logger.Get("Test"),
	}

	record := VideoRecord{URL: "https://example.com/v"}
	target.enrich(context.Background(), &record)

	assert.Equal(t, "https://example.com/t.jpg", record.ThumbnailURL)
	assert.Empty(t, record.ThumbnailBase64)
}

func Test_VideoOnlyFormats(t *testing.T) {
	formats := []ytdlp.FormatInfo{
		{FormatID: "140", Ext: "m4a", VCodec: "none", ACodec: "mp4a"},
		{FormatID: "137", Ext: "mp4", VCodec: "avc1", Height: 1080, Filesize: 1024, URL: "https://cdn/v137"},
		{FormatID: "hls", Ext: "mp4", VCodec: "avc1"},
	}

	out := videoOnlyFormats(formats)

	require.Len(t, out, 2)
	assert.Equal(t, "137", out[0].FormatID)
	assert.Equal(t, 1080, out[0].Quality)
	assert.Equal(t, int64(1024), out[0].Filesize)
	assert.Equal(t, "unknown", out[1].Quality, "missing height maps to the unknown sentinel")
}
