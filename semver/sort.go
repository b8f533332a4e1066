package semver

import "sort"

// SortDescending returns a new slice with the versions ordered highest first.
// The sort is stable: versions that compare equal (including those differing
// only in build metadata) preserve their input order. The input slice is not
// modified.
func SortDescending(versions []Version) []Version {
	sorted := make([]Version, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) > 0
	})
	return sorted
}

// Latest returns the highest version in the slice. The second return is false
// when the slice is empty. Among versions that compare equal, the earliest in
// input order wins.
func Latest(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	latest := versions[0]
	for _, v := range versions[1:] {
		if v.Compare(latest) > 0 {
			latest = v
		}
	}
	return latest, true
}
