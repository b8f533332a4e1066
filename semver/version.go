package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionPattern captures the canonical MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]
// string form. All three numeric components are mandatory; the prerelease
// segment is everything between '-' and '+' (or end of string), the build
// segment is everything after '+'.
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([^+]+))?(?:\+(.+))?$`)

// segmentPattern constrains the content of prerelease and build segments to
// ASCII alphanumerics, dots, and hyphens.
var segmentPattern = regexp.MustCompile(`^[0-9A-Za-z.-]+$`)

// Version is an immutable semantic version value.
//
// Major, Minor, and Patch are non-negative; Prerelease and Build, when
// non-empty, contain only ASCII alphanumerics, dots, and hyphens. Ordering
// follows Compare: the version core is compared numerically, a stable version
// outranks the same core with a prerelease, and build metadata never
// participates in ordering.
//
// Construct a Version with Parse, MustParse, or a struct literal; values are
// compared and formatted, never mutated.
type Version struct {
	Major      int    `json:"major"`
	Minor      int    `json:"minor"`
	Patch      int    `json:"patch"`
	Prerelease string `json:"prerelease,omitempty"`
	Build      string `json:"build,omitempty"`
}

// ParseError reports a string that does not conform to the canonical version
// form. It is a usage error, distinct from a validation failure: callers that
// require a version must check for it explicitly.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid semantic version %q: %s", e.Input, e.Reason)
}

// Parse parses a canonical version string.
//
// Accepted shape: MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]. All three numeric
// components are mandatory ("1" and "1.0" fail); leading zeros are allowed
// and taken numerically ("01.0.0" parses as 1.0.0). An empty prerelease or
// build segment (trailing '-' or '+') is a parse failure, never an empty
// value.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, &ParseError{Input: s, Reason: "expected MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]"}
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, &ParseError{Input: s, Reason: "major component out of range"}
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, &ParseError{Input: s, Reason: "minor component out of range"}
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, &ParseError{Input: s, Reason: "patch component out of range"}
	}

	prerelease := m[4]
	if prerelease != "" && !segmentPattern.MatchString(prerelease) {
		return Version{}, &ParseError{Input: s, Reason: "prerelease contains characters outside [0-9A-Za-z.-]"}
	}

	build := m[5]
	if build != "" && !segmentPattern.MatchString(build) {
		return Version{}, &ParseError{Input: s, Reason: "build metadata contains characters outside [0-9A-Za-z.-]"}
	}

	return Version{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: prerelease,
		Build:      build,
	}, nil
}

// MustParse parses a canonical version string and panics on failure. Intended
// for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats the version in canonical form. For any v produced by Parse,
// Parse(v.String()) round-trips to an equal value.
func (v Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(v.Major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Minor))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Patch))
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// IsPrerelease reports whether the version carries a prerelease segment.
func (v Version) IsPrerelease() bool {
	return v.Prerelease != ""
}

// Compare returns -1, 0, or +1 when v orders below, equal to, or above o.
//
// The version core compares numerically, component by component. When cores
// are equal, a version without a prerelease outranks one with a prerelease.
// When both carry prereleases, the prerelease strings compare segment-wise
// (see comparePrerelease). Build metadata is never considered: two versions
// differing only in build are equal.
func (v Version) Compare(o Version) int {
	if c := compareInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, o.Patch); c != 0 {
		return c
	}
	switch {
	case v.Prerelease == "" && o.Prerelease == "":
		return 0
	case v.Prerelease == "":
		return 1
	case o.Prerelease == "":
		return -1
	}
	return comparePrerelease(v.Prerelease, o.Prerelease)
}

// Less reports whether v orders strictly below o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Equal reports whether v and o are equal for ordering purposes. Build
// metadata is ignored, so 1.0.0+x equals 1.0.0+y.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// comparePrerelease orders two non-empty prerelease strings.
//
// Both strings are split on '.'. Segments that are all ASCII digits compare
// numerically (so "2" < "10"); otherwise they compare byte-wise, with a
// purely numeric segment ordering below an alphanumeric one. When one side
// runs out of segments, the shorter side orders first. The rule is
// deterministic and locale-independent.
func comparePrerelease(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aNum := parseNumericSegment(as[i])
		bn, bNum := parseNumericSegment(bs[i])
		switch {
		case aNum && bNum:
			if c := compareInt(an, bn); c != 0 {
				return c
			}
		case aNum:
			return -1
		case bNum:
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return compareInt(len(as), len(bs))
}

// parseNumericSegment reports whether s consists solely of ASCII digits, and
// its numeric value when it does.
func parseNumericSegment(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
