package transform

import (
	"reflect"
	"strings"
	"testing"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		cs   int
		want []string
	}{
		{"fits in one chunk", "short", 10, []string{"short"}},
		{"exact boundary", "abcdef", 3, []string{"abc", "def"}},
		{"uneven split", "abcdefg", 3, []string{"abc", "def", "g"}},
		{"empty text", "", 5, nil},
		{"zero size falls back to one chunk", "whole text", 0, []string{"whole text"}},
		{"negative size falls back to one chunk", "whole text", -3, []string{"whole text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Chunks(tt.text, tt.cs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chunks(%q, %d) = %v, want %v", tt.text, tt.cs, got, tt.want)
			}
		})
	}
}

func TestChunksKeepsRunesIntact(t *testing.T) {
	text := strings.Repeat("🇿🇼", 10)
	chunks := Chunks(text, 3)

	var rebuilt strings.Builder
	for _, chunk := range chunks {
		if !strings.Contains(chunk, "\U0001F1FF") && !strings.Contains(chunk, "\U0001F1FC") {
			t.Errorf("chunk %q lost its runes", chunk)
		}
		rebuilt.WriteString(chunk)
	}
	if rebuilt.String() != text {
		t.Error("chunks should reassemble to the original text")
	}
}

func TestSmartTruncate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{"short text untouched", "hello", 10, "hello"},
		{"breaks on word boundary", "one two three", 9, "one two"},
		{"no spaces hard cut", "abcdefghij", 4, "abcd"},
		{"exact length untouched", "exact", 5, "exact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SmartTruncate(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("SmartTruncate(%q, %d) = %q, want %q", tt.text, tt.maxLen, got, tt.want)
			}
		})
	}
}
