package models

import (
	"testing"
)

func TestCleanTaskName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"legacy suffix stripped", "Boil rice 1716239022123", "Boil rice"},
		{"plain name unchanged", "Boil rice", "Boil rice"},
		{"exactly ten digits stripped", "Chop onions 1234567890", "Chop onions"},
		{"nine digits kept", "Chop onions 123456789", "Chop onions 123456789"},
		{"non-digit suffix kept", "Order 1716239022123a", "Order 1716239022123a"},
		{"digits without space kept", "Mix1716239022123", "Mix1716239022123"},
		{"no space at all", "1716239022123", "1716239022123"},
		{"multiple words before suffix", "Prep the walk-in 20240115093000", "Prep the walk-in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTaskName(tt.in); got != tt.want {
				t.Errorf("CleanTaskName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTaskTemplateDisplayName(t *testing.T) {
	template := TaskTemplate{Name: "Boil rice 1716239022123"}
	if got := template.DisplayName(); got != "Boil rice" {
		t.Errorf("expected 'Boil rice', got %q", got)
	}
}
