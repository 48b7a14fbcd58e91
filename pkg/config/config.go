package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/release-orchestrator/pkg/prompt"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".release.yml"

type Config struct {
	Root        string `yaml:"root"`
	VersionFile string `yaml:"version_file"`
	RepoDir     string `yaml:"repo_dir"`
	Git         string `yaml:"git"`
	ReleaseTool string `yaml:"release_tool"`
	Branch      string `yaml:"branch"`
	Title       string `yaml:"title"`
	Notes       string `yaml:"notes"`
	Prompt      string `yaml:"prompt"`
	Repo        string `yaml:"repo"`
	Token       string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Root:        ".",
		VersionFile: "version.go",
		RepoDir:     ".",
		Git:         "git",
		ReleaseTool: "gh",
		Branch:      "main",
		Title:       "Release {{ .Version }}",
		Prompt:      prompt.ModeLine,
		Repo:        os.Getenv("GITHUB_REPOSITORY"),
		Token:       os.Getenv("GITHUB_TOKEN"),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	if v, err := flags.GetString("notes"); err == nil && v != "" {
		cfg.Notes = v
	}
	return cfg
}

// VersionPath is the version file resolved against the anchor directory.
func (c *Config) VersionPath() string {
	if filepath.IsAbs(c.VersionFile) {
		return c.VersionFile
	}
	return filepath.Join(c.Root, c.VersionFile)
}

func (c *Config) Validate() error {
	var errs []error
	required := []struct {
		key, value string
	}{
		{"version_file", c.VersionFile},
		{"git", c.Git},
		{"release_tool", c.ReleaseTool},
		{"branch", c.Branch},
		{"title", c.Title},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", r.key))
		}
	}
	if !prompt.ValidMode(c.Prompt) {
		errs = append(errs, fmt.Errorf("prompt must be one of %s, %s, %s; got %q", prompt.ModeLine, prompt.ModeForm, prompt.ModeAuto, c.Prompt))
	}
	return errors.Join(errs...)
}
