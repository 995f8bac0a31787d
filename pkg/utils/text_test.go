package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short title unchanged", "Mi 11X 5G", 20, "Mi 11X 5G"},
		{"long title gets ellipsis", "Samsung Galaxy S23 Ultra 5G", 14, "Samsung Galaxy..."},
		{"zero maxLen returns as-is", "x", 0, "x"},
		{"exact length unchanged", "abcde", 5, "abcde"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}
