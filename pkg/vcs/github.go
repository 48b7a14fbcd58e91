package vcs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
)

type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient wraps client. A nil client means an unauthenticated default.
func NewGitHubClient(client *github.Client) *GitHubClient {
	if client == nil {
		client = github.NewClient(nil)
	}
	return &GitHubClient{client: client}
}

// NewGitHubClientWithToken returns a client that authenticates with token
// when it is non-empty.
func NewGitHubClientWithToken(token string) *GitHubClient {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubClient{client: client}
}

func (g *GitHubClient) ReleaseURL(ctx context.Context, owner, repo, tag string) (string, error) {
	release, resp, err := g.client.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("no release for tag %s in %s/%s", tag, owner, repo)
		}
		return "", fmt.Errorf("get release %s for %s/%s: %w", tag, owner, repo, err)
	}
	return release.GetHTMLURL(), nil
}

// repoPrefixes are the remote forms stripped before the owner/repo path,
// longest first so "https://github.com/" wins over "github.com/".
var repoPrefixes = []string{
	"ssh://git@github.com/",
	"https://github.com/",
	"http://github.com/",
	"git@github.com:",
	"github.com/",
}

// ParseGitHubRepo splits a repository reference into owner and name. It takes
// "owner/repo", a github.com web URL, or an SSH remote, with an optional
// ".git" suffix; anything after the repository name is ignored.
func ParseGitHubRepo(ref string) (owner, repo string, err error) {
	path := strings.TrimSpace(ref)
	for _, prefix := range repoPrefixes {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			path = rest
			break
		}
	}

	owner, rest, _ := strings.Cut(path, "/")
	repo, _, _ = strings.Cut(rest, "/")
	repo = strings.TrimSuffix(repo, ".git")
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("cannot parse GitHub repo from %q", ref)
	}
	return owner, repo, nil
}
