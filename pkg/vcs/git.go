package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/release-orchestrator/pkg/command"
)

// ErrNoTags is returned when the repository has no tags.
var ErrNoTags = errors.New("no tags found")

// GitTags lists tags with the git CLI.
type GitTags struct {
	runner command.Runner
	git    string
	dir    string
}

func NewGitTags(runner command.Runner, git, dir string) *GitTags {
	return &GitTags{
		runner: runner,
		git:    git,
		dir:    dir,
	}
}

func (g *GitTags) LatestTag(ctx context.Context) (string, error) {
	out, err := g.runner.Output(ctx, g.dir, g.git, "tag")
	if err != nil {
		return "", fmt.Errorf("list tags in %s: %w", g.dir, err)
	}
	return LastTag(string(out))
}

// LastTag returns the last line of a tag listing.
func LastTag(listing string) (string, error) {
	listing = strings.TrimRightFunc(listing, unicode.IsSpace)
	if listing == "" {
		return "", ErrNoTags
	}
	lines := strings.Split(listing, "\n")
	return strings.TrimSpace(lines[len(lines)-1]), nil
}
