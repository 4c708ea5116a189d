package app

import "testing"

func TestSalutation(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		expected string
	}{
		// Morning: 5am-12pm
		{"5am morning start", 5, "Good morning!"},
		{"11am late morning", 11, "Good morning!"},

		// Afternoon: 12pm-5pm
		{"12pm afternoon start", 12, "Good afternoon!"},
		{"16pm late afternoon", 16, "Good afternoon!"},

		// Evening: 5pm-5am
		{"17pm evening start", 17, "Good evening!"},
		{"0am midnight", 0, "Good evening!"},
		{"4am pre-dawn", 4, "Good evening!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := salutation(tt.hour)
			if result != tt.expected {
				t.Errorf("salutation(%d) = %q, want %q", tt.hour, result, tt.expected)
			}
		})
	}
}
