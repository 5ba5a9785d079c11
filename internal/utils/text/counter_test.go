package text_test

import (
	"strings"
	"testing"

	"doc-genie/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "ASCII text",
			input:    "hello world",
			expected: 11,
		},
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
		{
			name:     "whitespace only",
			input:    " \t\n ",
			expected: 4,
		},
		{
			name:     "Japanese text",
			input:    "こんにちは世界",
			expected: 7,
		},
		{
			name:     "mixed English and Japanese",
			input:    "hello世界",
			expected: 7,
		},
		{
			name:     "text with emoji",
			input:    "Hello👋",
			expected: 6,
		},
		{
			name:     "emoji only",
			input:    "🚀✨🤖💡",
			expected: 4,
		},
		{
			name:     "flag emoji",
			input:    "🇯🇵",
			expected: 2, // Flag emojis are composed of 2 regional indicator symbols
		},
		{
			name:     "accented letters",
			input:    "café",
			expected: 4,
		},
		{
			name:     "zero-width space",
			input:    "hello​world",
			expected: 11,
		},
		{
			name:     "markdown article heading",
			input:    "# How DNS resolution works\n",
			expected: 27,
		},
		{
			name:     "generated article fragment",
			input:    "AIの発展により、新しい可能性が広がっています。",
			expected: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := text.CountRunes(tt.input)
			if result != tt.expected {
				t.Errorf("CountRunes(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCountRunesLongBody(t *testing.T) {
	// Content-limit checks compare rune counts against limits in the
	// thousands; byte counting would overshoot for multi-byte bodies.
	body := strings.Repeat("機械学習は面白い。", 1000)

	if got := text.CountRunes(body); got != 9000 {
		t.Errorf("CountRunes(long body) = %d, expected 9000", got)
	}
	if len(body) == text.CountRunes(body) {
		t.Error("multi-byte body must have more bytes than runes")
	}
}
