package util

import "testing"

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"apache", false},
		{" apache ", false},
	}

	for _, tt := range tests {
		if got := IsEmpty(tt.in); got != tt.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got := IsNotEmpty(tt.in); got == tt.want {
			t.Errorf("IsNotEmpty(%q) = %v, want %v", tt.in, got, !tt.want)
		}
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alert-123", "alert-123"},
		{" alert 123 ", "alert-123"},
		{"tenant/asset", "tenant-asset"},
		{"key[1](copy)", "key1copy"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeKey(tt.in); got != tt.want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
