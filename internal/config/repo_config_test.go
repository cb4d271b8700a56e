package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadRepoConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when docver.yml does not exist", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadRepoConfig(t.TempDir(), "")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("overlays docver.yml on the defaults", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		content := "branch: site\ndeployPrefix: docs\nredirects: false\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

		cfg, err := LoadRepoConfig(dir, "")
		require.NoError(t, err)
		require.Equal(t, "origin", cfg.Remote)
		require.Equal(t, "site", cfg.Branch)
		require.Equal(t, "docs", cfg.DeployPrefix)
		require.Equal(t, "latest", cfg.DefaultAlias)
		require.False(t, cfg.Redirects)
		require.True(t, cfg.NoJekyll)
	})

	t.Run("requires an explicit file to exist", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		_, err := LoadRepoConfig(dir, filepath.Join(dir, "missing.yml"))
		require.Error(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("branch: [unterminated"), 0o600))

		_, err := LoadRepoConfig(dir, "")
		require.Error(t, err)
	})
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	newFlags := func() *pflag.FlagSet {
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("remote", "origin", "")
		flags.String("branch", "gh-pages", "")
		flags.String("deploy-prefix", "", "")
		flags.String("default-alias", "latest", "")
		return flags
	}

	t.Run("keeps file values for flags left at their defaults", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.Branch = "site"

		MergeFlags(cfg, newFlags())
		require.Equal(t, "site", cfg.Branch)
	})

	t.Run("applies explicitly set flags", func(t *testing.T) {
		t.Parallel()
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--remote", "upstream", "--deploy-prefix", "docs", "--default-alias", "stable"}))

		cfg := MergeFlags(Default(), flags)
		require.Equal(t, "upstream", cfg.Remote)
		require.Equal(t, "gh-pages", cfg.Branch)
		require.Equal(t, "docs", cfg.DeployPrefix)
		require.Equal(t, "stable", cfg.DefaultAlias)
	})

	t.Run("lets a flag clear the default alias", func(t *testing.T) {
		t.Parallel()
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--default-alias="}))

		cfg := MergeFlags(Default(), flags)
		require.Equal(t, "", cfg.DefaultAlias)
	})
}

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":             "",
		"/":            "",
		".":            "",
		"docs":         "docs",
		"/docs/":       "docs",
		"a//b/./c":     "a/b/c",
		"site/../docs": "docs",
	}
	for in, want := range cases {
		got, err := NormalizePrefix(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, bad := range []string{"..", "../docs", "docs/.git"} {
		_, err := NormalizePrefix(bad)
		require.Error(t, err, bad)
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, "versions.json", cfg.Join("versions.json"))

	cfg.DeployPrefix = "docs"
	require.Equal(t, "docs/versions.json", cfg.Join("versions.json"))
}
