package fetcher

import "fmt"

// Method identifies which discovery strategy produced a VideoRecord.
type Method string

const (
	MethodHTMLVideoTag  Method = "html_video_tag"
	MethodHTMLSourceTag Method = "html_source_tag"
	MethodIframeEmbed   Method = "iframe_embed"
	MethodYtdlpSingle   Method = "yt-dlp_single"
	MethodYtdlpPlaylist Method = "yt-dlp_playlist"
	MethodRegex         Method = "regex_extraction"
)

// Strategy names as they appear in FetchResult.MethodsUsed. These identify
// the strategy that ran, not the per-record detection method.
const (
	strategyHTML   = "html_parsing"
	strategyYtdlp  = "yt-dlp"
	strategyDirect = "direct_links"
)

type (
	// VideoRecord is the canonical output unit of the discovery pipeline.
	// Only URL and Method are guaranteed; everything else depends on which
	// strategy produced the record and whether it was enriched afterwards.
	VideoRecord struct {
		URL            string  `json:"url"`
		Title          string  `json:"title,omitempty"`
		Duration       *int    `json:"duration,omitempty"`
		DurationString string  `json:"duration_string,omitempty"`
		ViewCount      *int64  `json:"view_count,omitempty"`
		Uploader       string  `json:"uploader,omitempty"`
		UploadDate     string  `json:"upload_date,omitempty"`
		Type           string  `json:"type,omitempty"`
		Method         Method  `json:"method"`

		// Present only for records discovered via a native <video> tag.
		Poster   string `json:"poster,omitempty"`
		Controls *bool  `json:"controls,omitempty"`
		Autoplay *bool  `json:"autoplay,omitempty"`

		// Present only after the enrichment pass succeeds for this record.
		ThumbnailURL    string `json:"thumbnail_url,omitempty"`
		ThumbnailBase64 string `json:"thumbnail_base64,omitempty"`

		Formats []Format `json:"formats,omitempty"`
	}

	// Format describes a single downloadable rendition of a video. In flat
	// extraction mode only the URL is known; enrichment fills the rest.
	Format struct {
		FormatID string `json:"format_id,omitempty"`
		Ext      string `json:"ext,omitempty"`

		// Quality is the format height in pixels, or the string "unknown"
		// when the extractor does not report one.
		Quality  interface{} `json:"quality,omitempty"`
		Filesize int64       `json:"filesize,omitempty"`
		URL      string      `json:"url"`
	}

	// FetchResult is the envelope returned by the orchestrator. MethodsUsed
	// lists each strategy (in call order, at most once) that yielded at
	// least one record. Errors holds stringified orchestrator failures;
	// contained per-strategy failures never appear here.
	FetchResult struct {
		URL         string        `json:"url"`
		Videos      []VideoRecord `json:"videos"`
		Errors      []string      `json:"errors"`
		MethodsUsed []string      `json:"methods_used"`
	}
)

// FormatDuration renders a duration in seconds as MM:SS, or HH:MM:SS once
// the duration reaches an hour. A nil duration renders as "Unknown".
func FormatDuration(seconds *int) string {
	if seconds == nil {
		return "Unknown"
	}

	secs := *seconds
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	remainder := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, remainder)
	}
	return fmt.Sprintf("%02d:%02d", minutes, remainder)
}
