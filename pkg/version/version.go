package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// Defaults, overridden by ldflags or by build info.
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

// populateFromBuildInfo fills Version/Commit/BuildTime from the metadata the
// Go toolchain embeds (buildvcs). Values already set through ldflags win.
func populateFromBuildInfo() {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}

	get := func(key string) (string, bool) {
		for _, s := range bi.Settings {
			if s.Key == key {
				return s.Value, true
			}
		}
		return "", false
	}

	if Commit == "" {
		if rev, ok := get("vcs.revision"); ok && len(rev) >= 7 {
			Commit = rev[:7]
		}
	}

	if BuildTime == "" {
		if t, ok := get("vcs.time"); ok && t != "" {
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
			}
		}
	}

	if modified, ok := get("vcs.modified"); ok && modified == "true" {
		if !strings.HasSuffix(Version, "-dirty") {
			Version += "-dirty"
		}
	}

	if bi.Main.Version != "" && bi.Main.Version != "(devel)" && Version == "0.0.0-dev" {
		Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
}

// FormatVersion returns the version string shown by --version and the banner.
func FormatVersion() string {
	populateFromBuildInfo()

	var b strings.Builder
	b.WriteString(Version)
	if Commit != "" {
		b.WriteString(" (" + Commit)
		if BuildTime != "" {
			b.WriteString(", built " + BuildTime)
		}
		b.WriteString(")")
	}
	return b.String()
}
