package fetcher

import (
	"context"
	"regexp"
	"strings"

	"github.com/hbomb79/Trawl/pkg/logger"
)

// directLinkPatterns match direct video file links in raw page text: bare
// http(s) URLs, src="..." attribute values, and url:"..." style script
// literals. Matches across patterns are NOT deduplicated here; the global
// merge pass owns deduplication.
var directLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://[^\s<>"']+\.(?:mp4|avi|mov|wmv|flv|webm|mkv|m4v)`),
	regexp.MustCompile(`(?i)src=["']([^"']+\.(?:mp4|avi|mov|wmv|flv|webm|mkv|m4v))["']`),
	regexp.MustCompile(`(?i)url:["']([^"']+\.(?:mp4|avi|mov|wmv|flv|webm|mkv|m4v))["']`),
}

// regexStrategy re-fetches the page independently of the HTML strategy and
// scans the raw response text for direct video file links.
type regexStrategy struct {
	pages PageFetcher
	log   logger.Logger
}

func (strategy *regexStrategy) extract(ctx context.Context, pageURL string) []VideoRecord {
	body, err := strategy.pages.FetchPage(ctx, pageURL)
	if err != nil {
		strategy.log.Emit(logger.WARNING, "Direct link scan of %s abandoned: %v\n", pageURL, err)
		return nil
	}

	content := string(body)
	var records []VideoRecord
	for _, pattern := range directLinkPatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			candidate := match[0]
			if len(match) > 1 {
				candidate = match[1]
			}

			if !strings.HasPrefix(candidate, "http") {
				candidate = resolveURL(pageURL, candidate)
			}

			if !IsVideoURL(candidate) {
				continue
			}

			records = append(records, VideoRecord{
				URL:    candidate,
				Type:   "direct",
				Method: MethodRegex,
			})
		}
	}

	return records
}
