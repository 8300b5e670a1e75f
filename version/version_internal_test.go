package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevision(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		info *debug.BuildInfo
		ok   bool
		want string
	}{
		"no build info": {want: "unknown"},
		"no vcs": {
			info: &debug.BuildInfo{},
			ok:   true,
			want: "unknown",
		},
		"clean": {
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.modified", Value: "false"},
			}},
			ok:   true,
			want: "abc123",
		},
		"dirty": {
			info: &debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.modified", Value: "true"},
			}},
			ok:   true,
			want: "abc123-dirty",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := revision(func() (*debug.BuildInfo, bool) { return tc.info, tc.ok })
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestModuleVersion(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		info *debug.BuildInfo
		ok   bool
		want string
	}{
		"no build info": {want: "devel"},
		"devel":         {info: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, ok: true, want: "devel"},
		"tagged":        {info: &debug.BuildInfo{Main: debug.Module{Version: "v1.2.0"}}, ok: true, want: "v1.2.0"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := moduleVersion(func() (*debug.BuildInfo, bool) { return tc.info, tc.ok })
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		info Info
		want string
	}{
		"minimal": {
			info: Info{Version: "devel", Revision: "unknown", GoVersion: "go1.25.0", Platform: "linux/amd64"},
			want: "elevconf devel (rev unknown, go1.25.0 linux/amd64)",
		},
		"full": {
			info: Info{
				Version: "1.2.0", Revision: "abc123", Branch: "main",
				BuildUser: "ci", BuildDate: "2026-01-02",
				GoVersion: "go1.25.0", Platform: "linux/arm64",
			},
			want: "elevconf 1.2.0 (rev abc123 on main, go1.25.0 linux/arm64, built 2026-01-02 by ci)",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.info.String())
		})
	}
}
