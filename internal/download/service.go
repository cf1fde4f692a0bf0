// Package download materialises videos on local storage via the delegated
// extractor and generates a local thumbnail for each by sampling a frame
// from the downloaded file.
package download

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hbomb79/Trawl/internal/ffmpeg"
	"github.com/hbomb79/Trawl/internal/ytdlp"
	"github.com/hbomb79/Trawl/pkg/logger"
)

const (
	maxTitleLength    = 100
	thumbnailMaxWidth = 300
	thumbnailSuffix   = "_thumb.jpg"
)

type (
	Config struct {
		// StorageRoot is the directory downloaded videos (and their
		// generated thumbnails) are written to. Created idempotently
		// when the service is constructed.
		StorageRoot string `yaml:"download_dir" env:"DOWNLOAD_DIR"`
	}

	// extractor is the slice of the delegated extractor's capability the
	// download service needs: metadata extraction and the download itself.
	extractor interface {
		Extract(ctx context.Context, url string, flat bool) (*ytdlp.Info, error)
		Download(ctx context.Context, request ytdlp.DownloadRequest) error
	}

	// Result is the envelope for a single download operation. It is
	// always returned by value and never raised as an error: a failed
	// download is Success=false with Error populated.
	Result struct {
		Success       bool    `json:"success"`
		Error         string  `json:"error,omitempty"`
		Filename      string  `json:"filename,omitempty"`
		Filepath      string  `json:"filepath,omitempty"`
		Filesize      int64   `json:"filesize,omitempty"`
		FilesizeMB    float64 `json:"filesize_mb,omitempty"`
		ThumbnailPath string  `json:"thumbnail_path,omitempty"`
		Title         string  `json:"title,omitempty"`
		Duration      *int    `json:"duration,omitempty"`
		Uploader      string  `json:"uploader,omitempty"`
	}

	Service struct {
		config       Config
		ffmpegConfig ffmpeg.Config
		extractor    extractor
		index        *Index
		log          logger.Logger
	}
)

// New constructs the download service, creating the storage root if it is
// missing. An existing file at the storage root path is an error.
func New(config Config, ffmpegConfig ffmpeg.Config, extractor extractor, log logger.Logger) (*Service, error) {
	if info, err := os.Stat(config.StorageRoot); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("storage root '%s' is not a directory", config.StorageRoot)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(config.StorageRoot, os.ModeDir|os.ModePerm); err != nil {
			return nil, fmt.Errorf("storage root '%s' could not be created: %w", config.StorageRoot, err)
		}
	} else {
		return nil, fmt.Errorf("storage root '%s' could not be accessed: %w", config.StorageRoot, err)
	}

	return &Service{
		config:       config,
		ffmpegConfig: ffmpegConfig,
		extractor:    extractor,
		index:        NewIndex(config.StorageRoot, log),
		log:          log,
	}, nil
}

// Index exposes the storage index so the service container can run its
// filesystem watcher alongside the other long-lived services.
func (service *Service) Index() *Index { return service.index }

// DownloadVideo fetches the video behind the URL onto local storage and
// attempts to generate a companion thumbnail beside it. The operation is
// two-phase: metadata is extracted first (to derive a sanitised filename
// from the title), then the real download runs with that filename
// template. The returned Result always reflects the outcome; this method
// never returns an error directly.
func (service *Service) DownloadVideo(ctx context.Context, url string, quality string, formatID string) *Result {
	info, err := service.extractor.Extract(ctx, url, false)
	if err != nil {
		return failure(fmt.Sprintf("failed to extract video metadata: %v", err))
	}

	title := info.Title
	if title == "" {
		title = "video"
	}
	stem := filenameStem(title)

	request := ytdlp.DownloadRequest{
		URL:            url,
		OutputTemplate: filepath.Join(service.config.StorageRoot, stem+".%(ext)s"),
		FormatID:       formatID,
		Quality:        quality,
	}
	if err := service.extractor.Download(ctx, request); err != nil {
		return failure(err.Error())
	}

	downloadedPath, size, err := service.locateDownload(stem)
	if err != nil {
		return failure(err.Error())
	}

	thumbnailPath := service.generateThumbnail(ctx, downloadedPath)

	service.log.Emit(logger.SUCCESS, "Downloaded %s to %s (%d bytes)\n", url, downloadedPath, size)
	return &Result{
		Success:       true,
		Filename:      filepath.Base(downloadedPath),
		Filepath:      downloadedPath,
		Filesize:      size,
		FilesizeMB:    math.Round(float64(size)/(1024*1024)*100) / 100,
		ThumbnailPath: thumbnailPath,
		Title:         title,
		Duration:      info.DurationSeconds(),
		Uploader:      info.Uploader,
	}
}

// locateDownload scans the storage root for the first file whose name
// contains the sanitised title stem. yt-dlp controls the final extension
// (and may remux), so the exact filename cannot be predicted up front.
// Concurrent downloads sharing a title prefix can race here; the scan is
// first-match-wins.
func (service *Service) locateDownload(stem string) (string, int64, error) {
	entries, err := os.ReadDir(service.config.StorageRoot)
	if err != nil {
		return "", 0, fmt.Errorf("failed to scan storage root: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), thumbnailSuffix) {
			continue
		}
		if !strings.Contains(entry.Name(), stem) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		return filepath.Join(service.config.StorageRoot, entry.Name()), info.Size(), nil
	}

	return "", 0, errors.New("Download completed but file not found")
}

// generateThumbnail probes the downloaded video and writes its middle
// frame beside it as '<name>_thumb.jpg'. Every failure here is contained:
// a download without a thumbnail is still a successful download.
func (service *Service) generateThumbnail(ctx context.Context, videoPath string) string {
	metadata, err := ffmpeg.ProbeVideo(service.ffmpegConfig, videoPath)
	if err != nil {
		service.log.Emit(logger.WARNING, "Thumbnail generation for %s skipped: %v\n", videoPath, err)
		return ""
	}
	if metadata.FrameRate <= 0 {
		service.log.Emit(logger.WARNING, "Thumbnail generation for %s skipped: unreadable frame rate\n", videoPath)
		return ""
	}

	middleFrame := metadata.TotalFrames() / 2
	atSeconds := float64(middleFrame) / metadata.FrameRate

	extension := filepath.Ext(videoPath)
	thumbnailPath := strings.TrimSuffix(videoPath, extension) + thumbnailSuffix
	if err := ffmpeg.ExtractFrameJPEG(ctx, service.ffmpegConfig, videoPath, thumbnailPath, atSeconds, thumbnailMaxWidth); err != nil {
		service.log.Emit(logger.WARNING, "Thumbnail generation for %s failed: %v\n", videoPath, err)
		return ""
	}

	return thumbnailPath
}

// FilePath resolves a bare filename inside the storage root, rejecting
// anything that would escape it.
func (service *Service) FilePath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("illegal filename '%s'", filename)
	}

	path := filepath.Join(service.config.StorageRoot, filename)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	return path, nil
}

// ListDownloads returns the current contents of the storage root as seen
// by the storage index.
func (service *Service) ListDownloads() []Entry {
	return service.index.Snapshot()
}

// filenameStem sanitises a video title for use as a filename: characters
// unsafe on common filesystems are stripped, whitespace collapses to
// underscores (mirroring yt-dlp's --restrict-filenames output so the
// post-download scan can find the file), and the result is capped at 100
// characters. A title that sanitises away entirely falls back to a
// unique generated stem.
func filenameStem(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		}
		return r
	}, title)

	cleaned = strings.Join(strings.Fields(cleaned), "_")
	if runes := []rune(cleaned); len(runes) > maxTitleLength {
		cleaned = string(runes[:maxTitleLength])
	}

	if cleaned == "" {
		return "video-" + uuid.NewString()[:8]
	}
	return cleaned
}

func failure(message string) *Result {
	return &Result{Success: false, Error: message}
}
