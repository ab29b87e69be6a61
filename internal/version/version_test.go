// Where: internal/version/version_test.go
// What: Tests for version string formatting.
// Why: Release builds rely on the injected metadata.
package version

import (
	"runtime/debug"
	"testing"
)

func TestGetVersion(t *testing.T) {
	origRead := readBuildInfo
	origVersion := Version
	t.Cleanup(func() {
		readBuildInfo = origRead
		Version = origVersion
	})

	tests := []struct {
		name     string
		linked   string
		info     *debug.BuildInfo
		ok       bool
		expected string
	}{
		{name: "linked", linked: "v1.2.0", expected: "v1.2.0"},
		{name: "no build info", ok: false, expected: "dev"},
		{name: "no revision", info: &debug.BuildInfo{}, ok: true, expected: "dev"},
		{
			name:     "clean",
			info:     &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}},
			ok:       true,
			expected: "0123456",
		},
		{
			name:     "dirty",
			info:     &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abcdef0"},
				{Key: "vcs.modified", Value: "true"},
			}},
			ok:       true,
			expected: "abcdef0 (dirty)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.linked
			readBuildInfo = func() (*debug.BuildInfo, bool) { return tt.info, tt.ok }
			if got := GetVersion(); got != tt.expected {
				t.Fatalf("GetVersion() = %q, want %q", got, tt.expected)
			}
		})
	}
}
