package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/release-orchestrator/pkg/command"
	"github.com/release-orchestrator/pkg/config"
	"github.com/release-orchestrator/pkg/prompt"
	"github.com/release-orchestrator/pkg/release"
	"github.com/release-orchestrator/pkg/vcs"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "release",
		Short:         "Release the version declared in the source tree",
		Long:          `Compares the version declared in the source tree with the latest git tag and, after confirmation, publishes a new GitHub release for it with the gh CLI.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringP("notes", "n", "", "Notes to add to the release (generated when omitted)")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "warning: could not load config file: %v (using defaults)\n", err)
		}
		cfg = config.Default()
	}

	cfg = config.MergeFlags(cfg, cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	runner := &command.ExecRunner{Stderr: stderr}
	opts := []release.Option{release.WithWarnings(stderr)}
	if cfg.Repo != "" {
		opts = append(opts, release.WithReleaseLookup(vcs.NewGitHubClientWithToken(cfg.Token)))
	}

	orchestrator := release.New(
		cfg,
		vcs.NewGitTags(runner, cfg.Git, cfg.RepoDir),
		runner,
		prompt.New(cfg.Prompt, cmd.InOrStdin(), stdout),
		stdout,
		opts...,
	)

	_, err = orchestrator.Run(context.Background(), cfg.Notes)
	return err
}
