package ytdlp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleVideoJSON = `{
	"id": "abc123",
	"_type": "video",
	"title": "Some Video",
	"uploader": "channel",
	"upload_date": "20260515",
	"duration": 125.4,
	"view_count": 1000,
	"thumbnail": "https://i.example.com/t.jpg",
	"webpage_url": "https://example.com/watch?v=abc123",
	"formats": [
		{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.2"},
		{"format_id": "137", "ext": "mp4", "height": 1080, "vcodec": "avc1", "filesize": 52428800, "url": "https://cdn.example.com/v"}
	]
}`

const flatPlaylistJSON = `{
	"_type": "playlist",
	"title": "Some Playlist",
	"entries": [
		{"title": "First", "url": "https://example.com/1", "duration": 30},
		{"title": "Second", "webpage_url": "https://example.com/2"}
	]
}`

func Test_Info_DecodesSingleVideoOutput(t *testing.T) {
	var info Info
	require.NoError(t, json.Unmarshal([]byte(singleVideoJSON), &info))

	assert.False(t, info.IsPlaylist())
	assert.Equal(t, "Some Video", info.Title)
	assert.Equal(t, "channel", info.Uploader)
	assert.Equal(t, "20260515", info.UploadDate)
	assert.Equal(t, "https://example.com/watch?v=abc123", info.WebpageURL)
	require.NotNil(t, info.ViewCount)
	assert.Equal(t, int64(1000), *info.ViewCount)

	require.Len(t, info.Formats, 2)
	assert.Equal(t, "none", info.Formats[0].VCodec)
	assert.Equal(t, 1080, info.Formats[1].Height)
	assert.Equal(t, int64(52428800), info.Formats[1].Filesize)
}

func Test_Info_DecodesFlatPlaylistOutput(t *testing.T) {
	var info Info
	require.NoError(t, json.Unmarshal([]byte(flatPlaylistJSON), &info))

	assert.True(t, info.IsPlaylist())
	require.Len(t, info.Entries, 2)
	assert.Equal(t, "First", info.Entries[0].Title)
	assert.Equal(t, "https://example.com/1", info.Entries[0].URL)
	assert.Equal(t, "https://example.com/2", info.Entries[1].WebpageURL)
}

func Test_Info_IsPlaylist(t *testing.T) {
	assert.True(t, (&Info{Type: "playlist"}).IsPlaylist())
	assert.True(t, (&Info{Entries: []*Info{{}}}).IsPlaylist())
	assert.False(t, (&Info{Type: "video"}).IsPlaylist())
	assert.False(t, (&Info{}).IsPlaylist())
}

func Test_Info_DurationSeconds(t *testing.T) {
	require.NotNil(t, (&Info{Duration: 125.4}).DurationSeconds())
	assert.Equal(t, 125, *(&Info{Duration: 125.4}).DurationSeconds())
	assert.Nil(t, (&Info{}).DurationSeconds())
	assert.Nil(t, (&Info{Duration: -1}).DurationSeconds())
}

func Test_IsUnsupportedOutput(t *testing.T) {
	tests := []struct {
		name     string
		stderr   string
		expected bool
	}{
		{"unsupported url", "ERROR: Unsupported URL: https://example.com/page", true},
		{"invalid url", "ERROR: 'foo' is not a valid URL.", true},
		{"no formats", "ERROR: No video formats found!", true},
		{"network failure", "ERROR: Unable to download webpage: timed out", false},
		{"empty", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, isUnsupportedOutput(test.stderr))
		})
	}
}
