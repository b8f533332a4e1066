// Package semver provides the semantic-version value type used to order
// contract revisions.
//
// A Version is parsed from the canonical MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]
// string form and compared with prerelease-aware precedence: a stable version
// outranks the same core with a prerelease, prerelease segments compare
// numerically when both sides are digits, and build metadata is informational
// only and never affects ordering.
//
// Basic usage:
//
//	v, err := semver.Parse("1.2.0-rc.1")
//	if err != nil {
//	    // not a version string
//	}
//	if v.Less(semver.MustParse("1.2.0")) {
//	    // prereleases order below the stable release
//	}
//
// Versions marshal to and from their canonical string form in both JSON and
// YAML.
package semver
