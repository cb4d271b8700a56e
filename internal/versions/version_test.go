package versions_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"docver.dev/docver/internal/versions"
)

func tags(vs []*versions.Version) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Tag)
	}
	return out
}

func sortTags(in ...string) []string {
	vs := make([]*versions.Version, 0, len(in))
	for _, tag := range in {
		vs = append(vs, &versions.Version{Tag: tag})
	}
	slices.SortFunc(vs, versions.Compare)
	return tags(vs)
}

func TestParseSemverLike(t *testing.T) {
	tests := []struct {
		tag    string
		want   string
		semver bool
	}{
		{tag: "1.2.3", want: "1.2.3", semver: true},
		{tag: "v1.10.0", want: "1.10.0", semver: true},
		{tag: "V2.0.0-rc.1", want: "2.0.0-rc.1", semver: true},
		{tag: "1", want: "1.0.0", semver: true},
		{tag: "1.2", want: "1.2.0", semver: true},
		{tag: "v0.8_or_older", want: "0.8.0", semver: true},
		{tag: "dev", semver: false},
		{tag: "main", semver: false},
		{tag: "", semver: false},
		{tag: "1.", semver: false},
		{tag: "1.2.3.4", semver: false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			v, ok := versions.ParseSemverLike(tt.tag)
			require.Equal(t, tt.semver, ok)
			if tt.semver {
				require.Equal(t, tt.want, v.String())
			}
		})
	}
}

func TestCompare(t *testing.T) {
	t.Run("semver tags sort newest first", func(t *testing.T) {
		require.Equal(t, []string{"v2.0.0", "1.10.0", "1.2.10", "1.2.3"},
			sortTags("1.2.3", "1.10.0", "v2.0.0", "1.2.10"))
	})

	t.Run("non-semver tags come before semver tags", func(t *testing.T) {
		for _, x := range []string{"dev", "main", "alpha", "zzz", "latest"} {
			a := &versions.Version{Tag: x}
			b := &versions.Version{Tag: "0.0.1"}
			require.Negative(t, versions.Compare(a, b), x)
			require.Positive(t, versions.Compare(b, a), x)
		}
	})

	t.Run("non-semver tags sort reverse lexicographically", func(t *testing.T) {
		require.Equal(t, []string{"main", "dev", "alpha"}, sortTags("alpha", "main", "dev"))
	})

	t.Run("mixed tags", func(t *testing.T) {
		require.Equal(t,
			[]string{"main", "dev", "v1.10.0", "1.2.10", "1.2.3", "v0.8_or_older"},
			sortTags("1.2.3", "dev", "v1.10.0", "1.2.10", "main", "v0.8_or_older"))
	})

	t.Run("equal versions are ordered deterministically", func(t *testing.T) {
		require.Equal(t, []string{"v1.0.0", "1.0.0", "1.0"}, sortTags("1.0", "v1.0.0", "1.0.0"))
		require.Equal(t, []string{"v1.0.0", "1.0.0", "1.0"}, sortTags("1.0.0", "1.0", "v1.0.0"))
	})

	t.Run("the stored tag is never rewritten", func(t *testing.T) {
		v := &versions.Version{Tag: "v1.0.0"}
		versions.Compare(v, &versions.Version{Tag: "2.0.0"})
		require.Equal(t, "v1.0.0", v.Tag)
	})
}

func TestVersionDisplayTitle(t *testing.T) {
	require.Equal(t, "1.0.0", (&versions.Version{Tag: "1.0.0"}).DisplayTitle())
	require.Equal(t, "First", (&versions.Version{Tag: "1.0.0", Title: "First"}).DisplayTitle())
	require.Equal(t, "1.0.0 (First)", (&versions.Version{Tag: "1.0.0", Title: "First"}).String())
}
