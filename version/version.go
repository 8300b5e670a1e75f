// Package version reports build metadata for the elevconf binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = revision(debug.ReadBuildInfo)
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Branch    string `json:"branch,omitempty"`
	BuildUser string `json:"buildUser,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the current build metadata. A binary built without ldflags
// reports the module version recorded by the Go toolchain, or "devel".
func Get() Info {
	v := Version
	if v == "" {
		v = moduleVersion(debug.ReadBuildInfo)
	}

	return Info{
		Version:   v,
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  GoOS + "/" + GoArch,
	}
}

// String renders the info as a single line, e.g.
// "elevconf 1.2.0 (rev abc123, go1.25.0 linux/amd64)".
func (i Info) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "elevconf %s (rev %s", i.Version, i.Revision)

	if i.Branch != "" {
		fmt.Fprintf(&b, " on %s", i.Branch)
	}

	fmt.Fprintf(&b, ", %s %s", i.GoVersion, i.Platform)

	if i.BuildDate != "" {
		fmt.Fprintf(&b, ", built %s", i.BuildDate)

		if i.BuildUser != "" {
			fmt.Fprintf(&b, " by %s", i.BuildUser)
		}
	}

	b.WriteString(")")

	return b.String()
}

func moduleVersion(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "devel"
	}

	return info.Main.Version
}

func revision(read func() (*debug.BuildInfo, bool)) string {
	rev := "unknown"

	info, ok := read()
	if !ok {
		return rev
	}

	modified := false

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
