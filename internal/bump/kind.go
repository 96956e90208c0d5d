// Package bump decides which part of a version to increment and computes the
// next version string.
package bump

import (
	"fmt"
	"strings"
)

// Kind is the magnitude of a version increment
type Kind int

const (
	// None means no increment was requested
	None Kind = iota
	Patch
	Minor
	Major
)

// priority lists the increment kinds from strongest to weakest.
// Labels and commit keywords are matched in this order.
var priority = []Kind{Major, Minor, Patch}

// String returns the label/keyword form of the kind
func (k Kind) String() string {
	switch k {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return "none"
	}
}

// ParseKind parses a kind name case-insensitively
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("invalid increment kind %q (expected major, minor or patch)", s)
}
