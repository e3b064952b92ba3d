package util

import "testing"

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Café au lait", "Cafe au lait"},
		{"Résumé", "Resume"},
		{"naïve", "naive"},
		{"plain", "plain"},
		{"", ""},
		{"日本", "日本"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FoldAccents(tt.input); got != tt.expected {
				t.Errorf("FoldAccents(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
