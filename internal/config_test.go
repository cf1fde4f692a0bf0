package internal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbomb79/Trawl/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configFixture = `
fetcher:
  timeout_seconds: 25
ytdlp:
  binary_path: /opt/yt-dlp
downloads:
  download_dir: /tmp/trawl-test-downloads
api:
  host_address: 127.0.0.1:9999
`

func Test_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configFixture), 0644))

	var config internal.TrawlConfig
	require.NoError(t, config.LoadFromFile(path))

	assert.Equal(t, 25, config.Fetcher.TimeoutSeconds)
	assert.Equal(t, "/opt/yt-dlp", config.YtDlp.BinaryPath)
	assert.Equal(t, "/tmp/trawl-test-downloads", config.Downloads.StorageRoot)
	assert.Equal(t, "127.0.0.1:9999", config.Api.HostAddr)
}

func Test_LoadFromFile_MissingFile(t *testing.T) {
	var config internal.TrawlConfig
	assert.Error(t, config.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func Test_LoadFromEnv_AppliesDefaults(t *testing.T) {
	var config internal.TrawlConfig
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, 10, config.Fetcher.TimeoutSeconds)
	assert.Equal(t, "yt-dlp", config.YtDlp.BinaryPath)
	assert.Equal(t, "0.0.0.0:8080", config.Api.HostAddr)
	assert.Contains(t, config.Downloads.StorageRoot, filepath.Join("trawl", "downloads"))
}

func Test_LoadFromEnv_EnvironmentOverrides(t *testing.T) {
	t.Setenv("YTDLP_BIN_PATH", "/usr/local/bin/yt-dlp")
	t.Setenv("DOWNLOAD_DIR", "/data/videos")

	var config internal.TrawlConfig
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "/usr/local/bin/yt-dlp", config.YtDlp.BinaryPath)
	assert.Equal(t, "/data/videos", config.Downloads.StorageRoot)
}
