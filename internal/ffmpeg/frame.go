package ffmpeg

import (
	"context"
	"fmt"

	"github.com/floostack/transcoder/ffmpeg"
)

// ExtractFrameJPEG seeks to the given timestamp in the video and writes a
// single frame to outputPath as a JPEG, downscaling to at most maxWidth
// pixels wide (height follows, preserving aspect ratio). Frames narrower
// than maxWidth are written at their native size.
func ExtractFrameJPEG(ctx context.Context, config Config, videoPath string, outputPath string, atSeconds float64, maxWidth int) error {
	seekTime := fmt.Sprintf("%.3f", atSeconds)
	vframes := 1
	// -2 keeps the scaled height divisible by two, which some encoders demand.
	videoFilter := fmt.Sprintf("scale='min(%d,iw)':-2", maxWidth)

	transcoderInstance := ffmpeg.
		New(&ffmpeg.Config{
			FfmpegBinPath:  config.FfmpegBinaryPath,
			FfprobeBinPath: config.FfprobeBinaryPath,
		}).
		Input(videoPath).
		Output(outputPath).
		WithContext(&ctx)

	progress, err := transcoderInstance.Start(ffmpeg.Options{
		SeekTime:    &seekTime,
		Vframes:     &vframes,
		VideoFilter: &videoFilter,
	})
	if err != nil {
		return fmt.Errorf("failed to extract frame from %s: %w", videoPath, err)
	}

	// Drain the progress channel; frame extraction finishes when it closes.
	for range progress {
	}

	return nil
}
