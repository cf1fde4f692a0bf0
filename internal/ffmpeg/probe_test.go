package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseFrameRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		expected float64
	}{
		{"ntsc rational", "30000/1001", 29.97002997002997},
		{"whole rational", "25/1", 25},
		{"bare number", "24", 24},
		{"empty", "", 0},
		{"zero denominator", "30/0", 0},
		{"garbage", "abc/def", 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.expected, parseFrameRate(test.rate), 0.0001)
		})
	}
}

func Test_TotalFrames(t *testing.T) {
	metadata := &VideoMetadata{DurationSecs: 10.5, FrameRate: 24}
	assert.Equal(t, 252, metadata.TotalFrames())

	empty := &VideoMetadata{}
	assert.Equal(t, 0, empty.TotalFrames())
}
