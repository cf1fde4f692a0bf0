package download

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func Test_FilenameStem(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"plain title", "My Great Video", "My_Great_Video"},
		{"unsafe characters stripped", `What? A "Video": <part 1/2>`, "What_A_Video_part_12"},
		{"whitespace collapsed", "  spaced \t out \n title ", "spaced_out_title"},
		{"already safe", "clip", "clip"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, filenameStem(test.title))
		})
	}
}

func Test_FilenameStem_CapsLength(t *testing.T) {
	stem := filenameStem(strings.Repeat("a", 500))
	assert.Len(t, stem, maxTitleLength)
}

func Test_FilenameStem_CapsLengthOnRuneBoundary(t *testing.T) {
	// 150 runes of 3 bytes each; the cap counts characters, not bytes,
	// and must never split a rune in half.
	stem := filenameStem(strings.Repeat("動", 150))

	assert.True(t, utf8.ValidString(stem))
	assert.Equal(t, maxTitleLength, utf8.RuneCountInString(stem))
}

func Test_FilenameStem_EmptyTitleFallsBackToUniqueStem(t *testing.T) {
	first := filenameStem(`\/:*?"<>|`)
	second := filenameStem("")

	assert.True(t, strings.HasPrefix(first, "video-"))
	assert.Greater(t, len(first), len("video-"))
	assert.NotEqual(t, first, second)
}
