package util

import "testing"

func TestCalculateCVSSScore(t *testing.T) {
	tests := []struct {
		name   string
		vector string
		want   float64
	}{
		{
			name:   "cvss 3.1 critical",
			vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
			want:   9.8,
		},
		{
			name:   "cvss 3.1 medium",
			vector: "CVSS:3.1/AV:N/AC:H/PR:N/UI:N/S:U/C:L/I:L/A:N",
			want:   4.8,
		},
		{
			name:   "cvss 4.0",
			vector: "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N",
			want:   9.3,
		},
		{
			name:   "garbage",
			vector: "not-a-vector",
			want:   0,
		},
		{
			name:   "empty",
			vector: "",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCVSSScore(tt.vector)
			if got != tt.want {
				t.Errorf("CalculateCVSSScore(%q) = %v, want %v", tt.vector, got, tt.want)
			}
		})
	}
}

func TestHighestCVSSScore(t *testing.T) {
	vectors := []string{
		"CVSS:3.1/AV:N/AC:H/PR:N/UI:N/S:U/C:L/I:L/A:N",
		"CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		"bogus",
	}
	if got := HighestCVSSScore(vectors); got != 9.8 {
		t.Errorf("HighestCVSSScore = %v, want 9.8", got)
	}

	if got := HighestCVSSScore(nil); got != 0 {
		t.Errorf("HighestCVSSScore(nil) = %v, want 0", got)
	}
}
