// Package version carries the CLI's build metadata. Every variable can be
// overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colorized renders Version with each dotted part tinted, for banner
// output. Versions that are not dotted triples come back untinted, and an
// empty Version falls back to "dev".
func Colorized() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != len(partColors) {
		return v
	}
	tinted := make([]string, len(parts))
	for i, part := range parts {
		tinted[i] = partColors[i].Sprint(part)
	}
	return strings.Join(tinted, ".")
}
