// Package versions models the deployed versions of a site: tags, titles and the
// aliases pointing at them, plus the versions.json document stored on the deploy branch.
package versions

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a single deployed version of the site.
type Version struct {
	Tag   string
	Title string
}

// DisplayTitle returns the title, falling back to the tag when none was given.
func (v *Version) DisplayTitle() string {
	if v.Title == "" {
		return v.Tag
	}
	return v.Title
}

func (v *Version) String() string {
	if v.Title == "" {
		return v.Tag
	}
	return v.Tag + " (" + v.Title + ")"
}

// ParseSemverLike interprets a tag as a semantic version. Leading "v"/"V" are
// ignored. Tags that are not strict semver are coerced from their leading
// MAJOR[.MINOR[.PATCH]] numeric prefix, so "1.2" is 1.2.0 and "0.8_or_older" is 0.8.0.
func ParseSemverLike(tag string) (*semver.Version, bool) {
	trimmed := strings.TrimLeft(tag, "vV")
	if v, err := semver.StrictNewVersion(trimmed); err == nil {
		return v, true
	}

	end := strings.IndexFunc(trimmed, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	prefix := trimmed
	if end >= 0 {
		prefix = trimmed[:end]
	}
	if prefix == "" {
		return nil, false
	}

	parts := strings.Split(prefix, ".")
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	v, err := semver.StrictNewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, false
	}
	return v, true
}

// Compare orders two versions for listing and serialization. It returns a
// negative number when a sorts before b.
//
// The order has three tiers:
//   - both tags are semver-like: newest first
//   - only one is semver-like: the other one comes first
//   - neither is semver-like: reverse lexicographic
func Compare(a, b *Version) int {
	va, aIsSemver := ParseSemverLike(a.Tag)
	vb, bIsSemver := ParseSemverLike(b.Tag)

	switch {
	case aIsSemver && bIsSemver:
		if c := vb.Compare(va); c != 0 {
			return c
		}
		// 1.0 and 1.0.0 are equal as versions; keep the order stable anyway
		return strings.Compare(b.Tag, a.Tag)
	case aIsSemver:
		return 1
	case bIsSemver:
		return -1
	default:
		return strings.Compare(b.Tag, a.Tag)
	}
}
