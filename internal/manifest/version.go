package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is written into every new manifest.
const SchemaVersion = "1.1.0"

// supportedRange accepts manifests written by any 1.x release, including
// those that predate file recording.
const supportedRange = "^1"

var supported = semver.MustParse(SchemaVersion)

// Compatible reports whether a manifest with the given version can be read.
// A leading "v" is tolerated.
func Compatible(version string) (bool, error) {
	v, err := parseSemver(version)
	if err != nil {
		return false, fmt.Errorf("parsing manifest version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(supportedRange)
	if err != nil {
		return false, fmt.Errorf("parsing version constraint: %w", err)
	}
	return c.Check(v), nil
}

// Newer reports whether version was written by a newer schema than this
// build understands. Such manifests are still read when compatible.
func Newer(version string) bool {
	v, err := parseSemver(version)
	if err != nil {
		return false
	}
	return v.GreaterThan(supported)
}

func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
