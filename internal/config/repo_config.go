package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the repository root
const FileName = "docver.yml"

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Remote       string `yaml:"remote"`
	Branch       string `yaml:"branch"`
	DeployPrefix string `yaml:"deployPrefix"`
	DefaultAlias string `yaml:"defaultAlias"`
	Redirects    bool   `yaml:"redirects"`
	NoJekyll     bool   `yaml:"nojekyll"`
}

// Default returns the configuration used when docver.yml is absent
func Default() *RepoConfig {
	return &RepoConfig{
		Remote:       "origin",
		Branch:       "gh-pages",
		DefaultAlias: "latest",
		Redirects:    true,
		NoJekyll:     true,
	}
}

// Load reads the configuration file at path on top of the defaults
func Load(path string) (*RepoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadRepoConfig loads the configuration for the repository at repoRoot.
// An explicit path must exist; the implicit docver.yml may be missing.
func LoadRepoConfig(repoRoot, explicitPath string) (*RepoConfig, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}
	cfg, err := Load(filepath.Join(repoRoot, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// MergeFlags overrides cfg with the flags the user explicitly set
func MergeFlags(cfg *RepoConfig, flags *pflag.FlagSet) *RepoConfig {
	if flags.Changed("remote") {
		if v, err := flags.GetString("remote"); err == nil {
			cfg.Remote = v
		}
	}
	if flags.Changed("branch") {
		if v, err := flags.GetString("branch"); err == nil {
			cfg.Branch = v
		}
	}
	if flags.Changed("deploy-prefix") {
		if v, err := flags.GetString("deploy-prefix"); err == nil {
			cfg.DeployPrefix = v
		}
	}
	if flags.Changed("default-alias") {
		if v, err := flags.GetString("default-alias"); err == nil {
			cfg.DefaultAlias = v
		}
	}
	return cfg
}

// Validate normalizes the deploy prefix and rejects unusable values
func (c *RepoConfig) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	if c.Branch == "" {
		return fmt.Errorf("branch must not be empty")
	}
	prefix, err := NormalizePrefix(c.DeployPrefix)
	if err != nil {
		return err
	}
	c.DeployPrefix = prefix
	return nil
}

// NormalizePrefix cleans a deploy prefix into a slash-separated path without
// leading or trailing slashes. The repository root is "".
func NormalizePrefix(prefix string) (string, error) {
	prefix = strings.Trim(filepath.ToSlash(prefix), "/")
	if prefix == "" {
		return "", nil
	}
	cleaned := path.Clean(prefix)
	if cleaned == "." {
		return "", nil
	}
	for _, part := range strings.Split(cleaned, "/") {
		if part == ".." || part == ".git" {
			return "", fmt.Errorf("invalid deploy prefix %q", prefix)
		}
	}
	return cleaned, nil
}

// Join places name under the deploy prefix
func (c *RepoConfig) Join(name string) string {
	if c.DeployPrefix == "" {
		return name
	}
	return c.DeployPrefix + "/" + name
}
