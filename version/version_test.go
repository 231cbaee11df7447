package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	if got := GetFullVersion(); got != "dev" {
		t.Errorf("expected dev, got %q", got)
	}

	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2026-10-01"
	defer func() { Version, GitCommit, BuildDate = "dev", "unknown", "unknown" }()

	want := "1.2.0 (commit abc123, built 2026-10-01)"
	if got := GetFullVersion(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
