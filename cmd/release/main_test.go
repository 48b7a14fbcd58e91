package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/release-orchestrator/pkg/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()

	notes := cmd.Flags().Lookup("notes")
	require.NotNil(t, notes)
	assert.Equal(t, "n", notes.Shorthand)
	assert.Equal(t, "", notes.DefValue)

	require.NoError(t, cmd.ParseFlags([]string{"-n", "Bug fixes"}))
	got, err := cmd.Flags().GetString("notes")
	require.NoError(t, err)
	assert.Equal(t, "Bug fixes", got)
}

func TestRootCmdRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"0.4.1"})

	err := cmd.Execute()
	assert.Error(t, err)
}

// releaseDir creates a project directory with a version file and an optional
// .release.yml, and makes it the working directory for the test.
func releaseDir(t *testing.T, cfg string) string {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	t.Setenv("GITHUB_REPOSITORY", "")
	t.Setenv("GITHUB_TOKEN", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version.go"), []byte("package main\n\nvar Version = \"0.4.1\"\n"), 0o644))
	if cfg != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".release.yml"), []byte(cfg), 0o644))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireTools(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not installed", name)
		}
	}
}

// "echo tag" stands in for git and lists the single tag "tag"; "false"
// stands in for a release tool that fails.
const failingToolConfig = `git: echo
release_tool: "false"
`

func TestRunReleaseToolFails(t *testing.T) {
	requireTools(t, "echo", "false")
	releaseDir(t, failingToolConfig)

	stdout, _, err := execute(t, "y\n", "-n", "Bug fixes")
	require.Error(t, err)

	var exitErr *command.ExitError
	require.True(t, errors.As(err, &exitErr), "got %v", err)
	assert.Equal(t, 1, exitErr.ExitCode)
	assert.Equal(t, []string{
		"false", "release", "create", "0.4.1",
		"--target", "main",
		"--title", "Release 0.4.1",
		"--notes", "Bug fixes",
	}, exitErr.Args)

	assert.Contains(t, stdout, "Git version: tag\n")
	assert.Contains(t, stdout, "Go version: 0.4.1\n")
	assert.Contains(t, stdout, "Continue? [y/N] ")
	assert.NotContains(t, stdout, "Aborting.")
}

func TestRunDeclinedAnswers(t *testing.T) {
	requireTools(t, "echo", "false")

	for _, answer := range []string{"n\n", "\n", "", " y\n", "\tyes\n"} {
		t.Run(strings.TrimSpace(answer), func(t *testing.T) {
			releaseDir(t, failingToolConfig)

			stdout, _, err := execute(t, answer)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(stdout, "Aborting.\n"), stdout)
		})
	}
}

func TestRunInvalidConfigValue(t *testing.T) {
	releaseDir(t, "prompt: gui\n")

	_, _, err := execute(t, "")
	assert.ErrorContains(t, err, "invalid config")
}

func TestRunFallsBackToDefaults(t *testing.T) {
	requireTools(t, "git")

	tests := []struct {
		name        string
		cfg         string
		wantWarning bool
	}{
		{name: "missing config", cfg: ""},
		{name: "unreadable config", cfg: "branch: [unterminated\n", wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := releaseDir(t, tt.cfg)
			gitInit(t, dir, "0.4.0", "0.4.1")

			stdout, stderr, err := execute(t, "")
			require.NoError(t, err)
			assert.Contains(t, stdout, "Git version: 0.4.1\n")
			assert.True(t, strings.HasSuffix(stdout, "Cannot release an already released version.\n"), stdout)
			if tt.wantWarning {
				assert.Contains(t, stderr, "warning: could not load config file")
			} else {
				assert.Empty(t, stderr)
			}
		})
	}
}

func gitInit(t *testing.T, dir string, tags ...string) {
	t.Helper()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	git("init", "-q")
	git("add", "version.go")
	git("commit", "-q", "-m", "init")
	for _, tag := range tags {
		git("tag", tag)
	}
}
