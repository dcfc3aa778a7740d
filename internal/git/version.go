package git

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const opVersion = "version"

// Version is a parsed git version number.
type Version struct {
	Major int
	Minor int
	Patch int
	// Raw is the unparsed version line, e.g. "git version 2.43.0".
	Raw string
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether v is the given version or newer.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

var versionPattern = regexp.MustCompile(`git version (\d+)\.(\d+)(?:\.(\d+))?`)

// GitVersion reports the version of the configured git binary.
func (s *Service) GitVersion(ctx context.Context) (Version, error) {
	res, err := s.run(ctx, opVersion, "", "--version")
	if err != nil {
		return Version{}, err
	}
	if res.ExitCode != 0 {
		return Version{}, executionError(opVersion, res)
	}
	return parseGitVersion(res.Stdout)
}

// parseGitVersion extracts the numeric version from the banner line.
// Vendor suffixes like "2.39.3 (Apple Git-146)" are tolerated.
func parseGitVersion(out string) (Version, error) {
	matches := versionPattern.FindStringSubmatch(out)
	if matches == nil {
		return Version{}, NewEnvironmentError(opVersion,
			"cannot parse git version from "+strings.TrimSpace(out), nil)
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	patch := 0
	if matches[3] != "" {
		patch, _ = strconv.Atoi(matches[3])
	}

	return Version{
		Major: major,
		Minor: minor,
		Patch: patch,
		Raw:   strings.TrimSpace(out),
	}, nil
}
