package internal

import (
	"fmt"
	"path/filepath"

	"github.com/hbomb79/Trawl/internal/api"
	"github.com/hbomb79/Trawl/internal/download"
	"github.com/hbomb79/Trawl/internal/fetcher"
	"github.com/hbomb79/Trawl/internal/ytdlp"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"

	ffmpegcfg "github.com/hbomb79/Trawl/internal/ffmpeg"
)

const trawlUserDirSuffix = "trawl"

// TrawlConfig is the struct used to contain the various user config
// supplied by file, environment, or manually inside the code.
type TrawlConfig struct {
	Fetcher   fetcher.Config   `yaml:"fetcher"`
	YtDlp     ytdlp.Config     `yaml:"ytdlp"`
	Ffmpeg    ffmpegcfg.Config `yaml:"ffmpeg"`
	Downloads download.Config  `yaml:"downloads"`
	Api       api.RestConfig   `yaml:"api"`
}

// LoadFromFile reads a YAML configuration file into the config,
// overlaying any environment variable overrides afterwards.
func (config *TrawlConfig) LoadFromFile(configPath string) error {
	if err := cleanenv.ReadConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to load configuration from '%s': %w", configPath, err)
	}

	return config.applyDefaults()
}

// LoadFromEnv populates the config purely from environment variables and
// struct defaults; used when no config file is provided.
func (config *TrawlConfig) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	return config.applyDefaults()
}

// applyDefaults fills in the download directory when the user supplied
// none: a 'trawl/downloads' directory inside their home directory.
func (config *TrawlConfig) applyDefaults() error {
	if config.Downloads.StorageRoot != "" {
		return nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("failed to derive default download directory: %w", err)
	}

	config.Downloads.StorageRoot = filepath.Join(home, trawlUserDirSuffix, "downloads")
	return nil
}
