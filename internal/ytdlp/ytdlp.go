// Package ytdlp wraps the yt-dlp binary as the delegated media extractor.
// The same capability is exposed in two modes: a cheap "flat" extraction
// which only returns identifying fields, and a full extraction which
// resolves formats, thumbnails and uploader metadata. Both are served by
// Extract with a mode flag so the integrations cannot drift apart.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hbomb79/Trawl/pkg/logger"
)

// ErrUnsupported signals that yt-dlp has no extractor for the given URL.
// Callers are expected to treat this as an empty result, not a failure.
var ErrUnsupported = errors.New("url is not supported by the media extractor")

type (
	Config struct {
		BinaryPath string `yaml:"binary_path" env:"YTDLP_BIN_PATH" env-default:"yt-dlp"`
	}

	// Info mirrors the subset of yt-dlp's -J output the fetcher cares
	// about. A playlist response carries its videos in Entries; a single
	// video response leaves Entries nil.
	Info struct {
		ID         string       `json:"id"`
		Type       string       `json:"_type"`
		Title      string       `json:"title"`
		Uploader   string       `json:"uploader"`
		UploadDate string       `json:"upload_date"`
		Duration   float64      `json:"duration"`
		ViewCount  *int64       `json:"view_count"`
		Thumbnail  string       `json:"thumbnail"`
		URL        string       `json:"url"`
		WebpageURL string       `json:"webpage_url"`
		Formats    []FormatInfo `json:"formats"`
		Entries    []*Info      `json:"entries"`
	}

	FormatInfo struct {
		FormatID string `json:"format_id"`
		Ext      string `json:"ext"`
		Height   int    `json:"height"`
		VCodec   string `json:"vcodec"`
		ACodec   string `json:"acodec"`
		Filesize int64  `json:"filesize"`
		URL      string `json:"url"`
	}

	DownloadRequest struct {
		URL            string
		OutputTemplate string

		// FormatID selects an exact format when set; otherwise Quality
		// (a yt-dlp format selector such as "best") is used.
		FormatID string
		Quality  string
	}

	Client struct {
		config Config
		log    logger.Logger
	}
)

func NewClient(config Config, log logger.Logger) *Client {
	return &Client{config: config, log: log}
}

// IsPlaylist reports whether this info describes a container of videos
// rather than a single video.
func (info *Info) IsPlaylist() bool {
	return info.Type == "playlist" || len(info.Entries) > 0
}

// DurationSeconds returns the video duration truncated to whole seconds,
// or nil when yt-dlp did not report one.
func (info *Info) DurationSeconds() *int {
	if info.Duration <= 0 {
		return nil
	}

	secs := int(info.Duration)
	return &secs
}

// Extract runs yt-dlp in JSON mode against the URL. Flat mode skips the
// per-video deep fetch (playlist entries come back as stubs and formats
// carry no codec detail), which is considerably cheaper for discovery.
func (client *Client) Extract(ctx context.Context, url string, flat bool) (*Info, error) {
	args := []string{"-J", "--quiet", "--no-warnings"}
	if flat {
		args = append(args, "--flat-playlist")
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, client.config.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if isUnsupportedOutput(stderr.String()) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, url)
		}
		return nil, fmt.Errorf("extractor failed for %s: %v: %s", url, err, strings.TrimSpace(stderr.String()))
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("failed to decode extractor output for %s: %w", url, err)
	}

	return &info, nil
}

// Download invokes yt-dlp's real download capability, materialising the
// video on disk according to the request's output template. Playlist
// expansion is always disabled and filenames are restricted to a safe
// character set.
func (client *Client) Download(ctx context.Context, request DownloadRequest) error {
	args := []string{
		"--quiet", "--no-warnings",
		"--no-playlist",
		"--restrict-filenames",
		"-o", request.OutputTemplate,
	}

	if request.FormatID != "" {
		args = append(args, "-f", request.FormatID)
	} else {
		quality := request.Quality
		if quality == "" {
			quality = "best"
		}
		args = append(args, "-f", quality)
	}
	args = append(args, request.URL)

	client.log.Emit(logger.DEBUG, "Invoking %s with args %v\n", client.config.BinaryPath, args)
	cmd := exec.CommandContext(ctx, client.config.BinaryPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("download of %s failed: %v: %s", request.URL, err, strings.TrimSpace(string(output)))
	}

	return nil
}

// isUnsupportedOutput sniffs yt-dlp's stderr for the messages it emits
// when it simply has no extractor for a site, as opposed to a genuine
// network or extraction failure.
func isUnsupportedOutput(stderr string) bool {
	return strings.Contains(stderr, "Unsupported URL") ||
		strings.Contains(stderr, "is not a valid URL") ||
		strings.Contains(stderr, "No video formats found")
}
