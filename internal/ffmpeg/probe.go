package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/floostack/transcoder/ffmpeg"
)

// VideoMetadata is the subset of ffprobe output needed to pick a
// representative frame: the container duration and the frame rate of the
// first video stream.
type VideoMetadata struct {
	DurationSecs float64
	FrameRate    float64
}

// TotalFrames estimates the frame count from duration and frame rate.
func (metadata *VideoMetadata) TotalFrames() int {
	return int(metadata.DurationSecs * metadata.FrameRate)
}

// ProbeVideo reads the file's metadata using ffprobe. An error is
// returned if the file cannot be probed at all; a zero FrameRate (an
// unreadable or absent video stream) is reported via the metadata rather
// than an error so callers can decide how to degrade.
func ProbeVideo(config Config, path string) (*VideoMetadata, error) {
	transcoderInstance := ffmpeg.New(&ffmpeg.Config{
		FfmpegBinPath:  config.FfmpegBinaryPath,
		FfprobeBinPath: config.FfprobeBinaryPath,
	}).Input(path)

	metadata, err := transcoderInstance.GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("failed to extract metadata for %s using ffprobe: %w", path, err)
	}

	output := &VideoMetadata{}
	if duration, err := strconv.ParseFloat(metadata.GetFormat().GetDuration(), 64); err == nil {
		output.DurationSecs = duration
	}

	for _, stream := range metadata.GetStreams() {
		if stream.GetCodecType() != "video" {
			continue
		}

		output.FrameRate = parseFrameRate(stream.GetAvgFrameRate())
		break
	}

	return output, nil
}

// parseFrameRate converts ffprobe's rational frame rate notation (e.g.
// "30000/1001") into a float, returning 0 for anything unparseable.
func parseFrameRate(rate string) float64 {
	if rate == "" {
		return 0
	}

	parts := strings.SplitN(rate, "/", 2)
	numerator, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	if len(parts) == 1 {
		return numerator
	}

	denominator, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || denominator == 0 {
		return 0
	}

	return numerator / denominator
}
