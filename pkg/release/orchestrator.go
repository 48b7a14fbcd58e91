// Package release compares the version in the source tree with the latest
// git tag and publishes a new release through an external release tool when
// they differ.
package release

import (
	"context"
	"fmt"
	"io"

	"github.com/release-orchestrator/pkg/command"
	"github.com/release-orchestrator/pkg/config"
	"github.com/release-orchestrator/pkg/prompt"
	"github.com/release-orchestrator/pkg/reporter"
	"github.com/release-orchestrator/pkg/vcs"
	"github.com/release-orchestrator/pkg/version"
)

type Outcome int

const (
	AlreadyReleased Outcome = iota + 1
	Cancelled
	Released
)

func (o Outcome) String() string {
	switch o {
	case AlreadyReleased:
		return "already released"
	case Cancelled:
		return "cancelled"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

const confirmQuestion = "Continue?"

type Orchestrator struct {
	config   *config.Config
	tags     vcs.TagSource
	runner   command.Runner
	prompter prompt.Prompter
	reporter reporter.Reporter
	out      io.Writer
	releases vcs.ReleaseLookup
	warnings io.Writer
}

type Option func(*Orchestrator)

// WithReleaseLookup prints the URL of the published release after a
// successful run when the config names a GitHub repository.
func WithReleaseLookup(l vcs.ReleaseLookup) Option {
	return func(o *Orchestrator) { o.releases = l }
}

// WithWarnings sets where non-fatal problems are written. Defaults to out.
func WithWarnings(w io.Writer) Option {
	return func(o *Orchestrator) { o.warnings = w }
}

// New returns an Orchestrator that prints status lines and the release
// tool's output to out.
func New(cfg *config.Config, tags vcs.TagSource, runner command.Runner, prompter prompt.Prompter, out io.Writer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		config:   cfg,
		tags:     tags,
		runner:   runner,
		prompter: prompter,
		reporter: reporter.New(out),
		out:      out,
		warnings: out,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run reads the latest tag and the source version, reports both and releases
// the source version if it has not been tagged yet.
func (o *Orchestrator) Run(ctx context.Context, notes string) (Outcome, error) {
	gitTag, err := o.tags.LatestTag(ctx)
	if err != nil {
		return 0, fmt.Errorf("read latest tag: %w", err)
	}
	sourceVersion, err := version.ExtractSourceVersion(o.config.VersionPath())
	if err != nil {
		return 0, fmt.Errorf("read source version: %w", err)
	}
	o.reporter.Versions(gitTag, sourceVersion)

	outcome, err := o.CompareAndRelease(ctx, sourceVersion, gitTag, notes)
	if err != nil || outcome != Released {
		return outcome, err
	}
	o.announce(ctx, sourceVersion)
	return outcome, nil
}

// CompareAndRelease publishes sourceVersion unless it equals gitTag. The user
// must confirm before the release tool is started.
func (o *Orchestrator) CompareAndRelease(ctx context.Context, sourceVersion, gitTag, notes string) (Outcome, error) {
	if sourceVersion == gitTag {
		o.reporter.AlreadyReleased()
		return AlreadyReleased, nil
	}
	o.reporter.Releasing(sourceVersion)

	args, err := o.Invocation(sourceVersion, gitTag, notes)
	if err != nil {
		return 0, err
	}
	o.reporter.Invocation(args)

	ok, err := o.prompter.Confirm(confirmQuestion)
	if err != nil {
		return 0, err
	}
	if !ok {
		o.reporter.Aborted()
		return Cancelled, nil
	}

	if err := o.runner.Stream(ctx, o.config.RepoDir, o.out, args[0], args[1:]...); err != nil {
		return 0, fmt.Errorf("release %s: %w", sourceVersion, err)
	}
	return Released, nil
}

// Invocation builds the release tool command line for tag. Explicit notes
// replace generated ones.
func (o *Orchestrator) Invocation(tag, previous, notes string) ([]string, error) {
	title, err := renderTitle(o.config.Title, titleData{
		Version:  tag,
		Previous: previous,
		Branch:   o.config.Branch,
	})
	if err != nil {
		return nil, err
	}

	args := []string{
		o.config.ReleaseTool,
		"release",
		"create",
		tag,
		"--target",
		o.config.Branch,
		"--title",
		title,
	}
	if notes != "" {
		args = append(args, "--notes", notes)
	} else {
		args = append(args, "--generate-notes")
	}
	return args, nil
}

func (o *Orchestrator) announce(ctx context.Context, tag string) {
	if o.releases == nil || o.config.Repo == "" {
		return
	}
	owner, repo, err := vcs.ParseGitHubRepo(o.config.Repo)
	if err != nil {
		fmt.Fprintf(o.warnings, "warning: %v\n", err)
		return
	}
	url, err := o.releases.ReleaseURL(ctx, owner, repo, tag)
	if err != nil {
		fmt.Fprintf(o.warnings, "warning: could not look up release: %v\n", err)
		return
	}
	o.reporter.ReleaseURL(url)
}
