package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	embedded := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	read := func() (*debug.BuildInfo, bool) { return embedded, true }

	tests := []struct {
		name                  string
		version, commit, date string
		want                  Info
	}{
		{"unstamped", "dev", "none", "unknown", Info{"v0.3.1", "abc123", "2026-01-02T03:04:05Z", true}},
		{"ldflags win", "v1.0.0", "fff", "today", Info{"v1.0.0", "fff", "today", true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.version, tt.commit, tt.date, read); got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveWithoutBuildInfo(t *testing.T) {
	got := resolve("dev", "none", "unknown", func() (*debug.BuildInfo, bool) { return nil, false })
	if got != (Info{Version: "dev", Commit: "none", Date: "unknown"}) {
		t.Errorf("resolve() = %+v", got)
	}
}

func TestResolveDevelVersion(t *testing.T) {
	bi := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	got := resolve("dev", "none", "unknown", func() (*debug.BuildInfo, bool) { return bi, true })
	if got.Version != "dev" {
		t.Errorf("Version = %q, want dev", got.Version)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} ") || !strings.HasSuffix(tmpl, "\n") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "version: ") {
		t.Errorf("String() = %q", String())
	}
}
