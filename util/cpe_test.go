package util

import (
	"fmt"
	"testing"
)

func TestParsePlatformID(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       PlatformID
		wantErr    bool
	}{
		{
			name:       "cpe 2.3 full",
			identifier: "cpe:2.3:a:apache:http_server:2.4.54:*:*:*:*:*:*:*",
			want:       PlatformID{Vendor: "apache", Product: "http_server", Version: "2.4.54"},
		},
		{
			name:       "cpe 2.3 any version",
			identifier: "cpe:2.3:o:microsoft:windows_10:*:*:*:*:*:*:*:*",
			want:       PlatformID{Vendor: "microsoft", Product: "windows_10", Version: ""},
		},
		{
			name:       "cpe 2.3 na version",
			identifier: "cpe:2.3:h:cisco:asa_5505:-:*:*:*:*:*:*:*",
			want:       PlatformID{Vendor: "cisco", Product: "asa_5505", Version: ""},
		},
		{
			name:       "legacy cpe 2.2",
			identifier: "cpe:/a:openbsd:openssh:9.3",
			want:       PlatformID{Vendor: "openbsd", Product: "openssh", Version: "9.3"},
		},
		{
			name:       "purl with namespace",
			identifier: "pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1",
			want:       PlatformID{Vendor: "org.apache.logging.log4j", Product: "log4j-core", Version: "2.14.1"},
		},
		{
			name:       "purl without namespace",
			identifier: "pkg:npm/lodash@4.17.20",
			want:       PlatformID{Vendor: "npm", Product: "lodash", Version: "4.17.20"},
		},
		{
			name:       "unrecognized",
			identifier: "urn:uuid:1234",
			wantErr:    true,
		},
		{
			name:       "malformed cpe",
			identifier: "cpe:2.3:a",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlatformID(tt.identifier)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePlatformID(%q) succeeded, want error", tt.identifier)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlatformID(%q): %v", tt.identifier, err)
			}
			if got != tt.want {
				t.Errorf("ParsePlatformID(%q) = %+v, want %+v", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestParseSemanticVersion(t *testing.T) {
	intp := func(n int) *int { return &n }

	tests := []struct {
		version string
		want    ParsedVersion
	}{
		{"2.4.54", ParsedVersion{Major: intp(2), Minor: intp(4), Patch: intp(54)}},
		{"v1.2.3", ParsedVersion{Major: intp(1), Minor: intp(2), Patch: intp(3)}},
		{"go1.22.2", ParsedVersion{Major: intp(1), Minor: intp(22), Patch: intp(2)}},
		{"1.2", ParsedVersion{Major: intp(1), Minor: intp(2)}},
		{"", ParsedVersion{}},
	}

	for _, tt := range tests {
		got := ParseSemanticVersion(tt.version)
		if !intEq(got.Major, tt.want.Major) || !intEq(got.Minor, tt.want.Minor) || !intEq(got.Patch, tt.want.Patch) {
			t.Errorf("ParseSemanticVersion(%q) = %s, want %s", tt.version, fmtParsed(got), fmtParsed(&tt.want))
		}
	}
}

func intEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtParsed(p *ParsedVersion) string {
	show := func(v *int) string {
		if v == nil {
			return "nil"
		}
		return fmt.Sprintf("%d", *v)
	}
	return fmt.Sprintf("{%s,%s,%s}", show(p.Major), show(p.Minor), show(p.Patch))
}
