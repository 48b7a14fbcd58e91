package vcs

import "context"

type TagSource interface {
	// LatestTag returns the last tag in listing order. It does not sort by
	// semantic version.
	LatestTag(ctx context.Context) (string, error)
}

type ReleaseLookup interface {
	// ReleaseURL returns the web URL of the published release for tag.
	ReleaseURL(ctx context.Context, owner, repo, tag string) (string, error)
}
