package version

import "github.com/fatih/color"

// Build metadata for the lumina CLI. All of these can be overridden at
// build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each semver part tinted. Falls back to the
// plain string when the version does not split into three dotted parts.
func Colored() string {
	parts := splitSemver(Version)
	if parts == nil {
		return Version
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
}

func splitSemver(v string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] == '.' {
			parts = append(parts, v[start:i])
			start = i + 1
			if len(parts) == 2 {
				break
			}
		}
	}
	if len(parts) != 2 || start >= len(v) {
		return nil
	}
	parts = append(parts, v[start:])
	return parts
}
