package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type TextReporter struct {
	w      io.Writer
	cyan   func(a ...interface{}) string
	yellow func(a ...interface{}) string
	green  func(a ...interface{}) string
	dim    func(a ...interface{}) string
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{
		w:      w,
		cyan:   color.New(color.FgCyan).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		dim:    color.New(color.Faint).SprintFunc(),
	}
}

func (r *TextReporter) Versions(gitTag, sourceVersion string) {
	fmt.Fprintf(r.w, "Git version: %s\n", r.cyan(gitTag))
	fmt.Fprintf(r.w, "Go version: %s\n", r.cyan(sourceVersion))
}

func (r *TextReporter) AlreadyReleased() {
	fmt.Fprintln(r.w, r.yellow("Cannot release an already released version."))
}

func (r *TextReporter) Releasing(version string) {
	fmt.Fprintf(r.w, "Releasing new version %s ...\n", r.cyan(version))
}

func (r *TextReporter) Invocation(args []string) {
	fmt.Fprintln(r.w, r.dim(strings.Join(args, " ")))
}

func (r *TextReporter) Aborted() {
	fmt.Fprintln(r.w, r.yellow("Aborting."))
}

func (r *TextReporter) ReleaseURL(url string) {
	fmt.Fprintf(r.w, "%s %s\n", r.green("Release URL:"), url)
}
