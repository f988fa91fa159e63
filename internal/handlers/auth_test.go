package handlers

import "testing"

func TestNormalizeLogin(t *testing.T) {
	tests := []struct {
		name  string
		login string
		want  string
	}{
		{"bare username", "admin", "admin@admin.local"},
		{"uppercase username lowered", "Admin", "admin@admin.local"},
		{"full email untouched", "owner@example.com", "owner@example.com"},
		{"email case preserved", "Owner@Example.com", "Owner@Example.com"},
		{"surrounding whitespace trimmed", "  admin  ", "admin@admin.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeLogin(tt.login); got != tt.want {
				t.Errorf("normalizeLogin(%q) = %q, want %q", tt.login, got, tt.want)
			}
		})
	}
}
