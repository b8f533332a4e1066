package registry

import (
	"regexp"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"

	"github.com/ekhoe-pll/pll-contracts/semver"
)

// MatchID checks a contract id against a discovery pattern. An empty pattern
// matches everything; '*' matches any run of characters ("order.*",
// "*-event").
func MatchID(id, pattern string) bool {
	if pattern == "" || pattern == id {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	regexPattern := regexp.QuoteMeta(pattern)
	regexPattern = strings.ReplaceAll(regexPattern, "\\*", ".*")
	regexPattern = "^" + regexPattern + "$"

	matched, err := regexp.MatchString(regexPattern, id)
	return err == nil && matched
}

// MatchVersion checks a contract version against a requested version
// expression. An empty expression matches any version. Otherwise the
// expression may be an exact version ("1.2.0"), a simple wildcard ("1.x",
// "2.x.x"), or a semver range constraint ("^1.0.0", ">= 1.2, < 2.0").
func MatchVersion(v semver.Version, requested string) bool {
	if requested == "" {
		return true
	}

	rendered := v.String()
	if rendered == requested {
		return true
	}

	if strings.Contains(requested, "x") {
		pattern := strings.ReplaceAll(requested, ".", "\\.")
		pattern = strings.ReplaceAll(pattern, "x", "[0-9]+")
		pattern = "^" + pattern + "$"
		if matched, err := regexp.MatchString(pattern, rendered); err == nil && matched {
			return true
		}
	}

	constraint, err := mmsemver.NewConstraint(requested)
	if err != nil {
		return false
	}
	parsed, err := mmsemver.NewVersion(rendered)
	if err != nil {
		return false
	}
	return constraint.Check(parsed)
}
