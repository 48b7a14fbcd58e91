package reporter

import "io"

// Reporter prints the status lines of a release run.
type Reporter interface {
	Versions(gitTag, sourceVersion string)
	AlreadyReleased()
	Releasing(version string)
	Invocation(args []string)
	Aborted()
	ReleaseURL(url string)
}

func New(w io.Writer) Reporter {
	return NewTextReporter(w)
}
