// Package ffmpeg exposes the two video-decode primitives the downloader
// needs: probing a file for its duration and frame rate, and sampling a
// single frame out of it as a JPEG. Both are backed by the ffmpeg/ffprobe
// binaries on the host machine.
package ffmpeg

type Config struct {
	FfmpegBinaryPath  string `yaml:"ffmpeg_binary" env:"FFMPEG_BINARY_PATH" env-default:"ffmpeg"`
	FfprobeBinaryPath string `yaml:"ffprobe_binary" env:"FFPROBE_BINARY_PATH" env-default:"ffprobe"`
}
