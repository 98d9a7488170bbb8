package utils

import (
	"testing"
)

func TestEnsureSuffix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"github_webhook_db", "github_webhook_db.sqlite"},
		{"github_webhook_db.sqlite", "github_webhook_db.sqlite"},
		{"", ".sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EnsureSuffix(tt.input, ".sqlite")
			if got != tt.expected {
				t.Errorf("EnsureSuffix(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}
