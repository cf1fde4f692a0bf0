package fetcher

import (
	"net/url"
	"regexp"
	"strings"
)

// videoExtensions is the fixed set of path suffixes treated as direct
// video files.
var videoExtensions = []string{
	".mp4", ".avi", ".mov", ".wmv", ".flv",
	".webm", ".mkv", ".m4v", ".3gp", ".ogv",
}

// videoDomains is the fixed set of known video-hosting domains. Matching
// is deliberately loose (substring of the host, so "m.youtube.com"
// matches) which also admits lookalikes such as "notyoutube.com.evil.com";
// see IsVideoURL.
var videoDomains = []string{
	"youtube.com", "youtu.be", "vimeo.com", "dailymotion.com",
	"twitch.tv", "facebook.com", "instagram.com", "tiktok.com",
	"twitter.com", "x.com", "rumble.com", "bitchute.com",
}

var embedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)youtube\.com/embed/`),
	regexp.MustCompile(`(?i)vimeo\.com/video/`),
	regexp.MustCompile(`(?i)dailymotion\.com/embed/`),
	regexp.MustCompile(`(?i)player\.twitch\.tv/`),
	regexp.MustCompile(`(?i)facebook\.com/plugins/video`),
}

// IsVideoURL reports whether the URL points at a video: either its path
// ends in a known video file extension, or its host contains a known
// video-hosting domain. Malformed URLs classify as false.
func IsVideoURL(rawURL string) bool {
	parsed, err := url.Parse(strings.ToLower(rawURL))
	if err != nil {
		return false
	}

	for _, ext := range videoExtensions {
		if strings.HasSuffix(parsed.Path, ext) {
			return true
		}
	}

	for _, domain := range videoDomains {
		if strings.Contains(parsed.Host, domain) {
			return true
		}
	}

	return false
}

// IsVideoEmbed reports whether the URL matches a known embedded-player
// path for one of the major video platforms.
func IsVideoEmbed(rawURL string) bool {
	for _, pattern := range embedPatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}

	return false
}
