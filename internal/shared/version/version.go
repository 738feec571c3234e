// Package version reports the build version of the service.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is set at build time with
// -ldflags "-X solarops/internal/shared/version.Current=v1.4.0".
var Current = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a semver release without a prerelease suffix.
func IsRelease(v string) bool {
	n := Normalize(v)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}

// Info is the version block served by the health endpoint.
type Info struct {
	Version string `json:"version"`
	Major   string `json:"major,omitempty"`
	Release bool   `json:"release"`
}

func Get() Info {
	n := Normalize(Current)
	info := Info{Version: Current, Release: IsRelease(Current)}
	if semver.IsValid(n) {
		info.Major = semver.Major(n)
	}
	return info
}
