package bump

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"
)

// ErrInvalidVersion is returned when a version string is not major.minor.patch[+build]
var ErrInvalidVersion = errors.New("invalid version")

// Version is a major.minor.patch triple with an optional numeric build counter.
// A zero Build means the version carries no build counter.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Build uint64
}

// Parse parses "1.2.3" or "1.2.3+4". Pre-release parts, non-numeric build
// metadata and components that cannot be incremented are rejected.
func Parse(s string) (Version, error) {
	sv, err := semver.Parse(strings.TrimSpace(s))
	if err != nil {
		return Version{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, s, err)
	}
	if len(sv.Pre) > 0 {
		return Version{}, fmt.Errorf("%w %q: pre-release versions are not supported", ErrInvalidVersion, s)
	}

	v := Version{Major: sv.Major, Minor: sv.Minor, Patch: sv.Patch}
	switch len(sv.Build) {
	case 0:
	case 1:
		build, err := strconv.ParseUint(sv.Build[0], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w %q: build counter must be a number", ErrInvalidVersion, s)
		}
		v.Build = build
	default:
		return Version{}, fmt.Errorf("%w %q: build counter must be a single number", ErrInvalidVersion, s)
	}

	// Every component must leave room for Next to add one
	for _, c := range []uint64{v.Major, v.Minor, v.Patch, v.Build} {
		if c == math.MaxUint64 {
			return Version{}, fmt.Errorf("%w %q: component too large to increment", ErrInvalidVersion, s)
		}
	}
	return v, nil
}

// String returns the canonical text, omitting the build suffix when it is zero
func (v Version) String() string {
	if v.Build == 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d+%d", v.Major, v.Minor, v.Patch, v.Build)
}

// Next returns the version after applying k.
// With incrementBuild the build counter is advanced by one, otherwise it is dropped.
// Next(None, ...) returns v unchanged.
func (v Version) Next(k Kind, incrementBuild bool) Version {
	if k == None {
		return v
	}

	next := v
	switch k {
	case Major:
		next.Major++
		next.Minor = 0
		next.Patch = 0
	case Minor:
		next.Minor++
		next.Patch = 0
	case Patch:
		next.Patch++
	}

	if incrementBuild {
		next.Build = v.Build + 1
	} else {
		next.Build = 0
	}
	return next
}
