// Package prompt asks the user to confirm a release before it is published.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Modes accepted by New.
const (
	ModeLine = "line"
	ModeForm = "form"
	ModeAuto = "auto"
)

// ValidMode reports whether mode is one of the modes accepted by New.
func ValidMode(mode string) bool {
	switch mode {
	case ModeLine, ModeForm, ModeAuto:
		return true
	}
	return false
}

type Prompter interface {
	Confirm(question string) (bool, error)
}

// New picks a Prompter for mode. Auto mode shows a form only when both in
// and out are terminals.
func New(mode string, in io.Reader, out io.Writer) Prompter {
	switch mode {
	case ModeForm:
		return NewFormPrompter(in, out)
	case ModeAuto:
		if isTerminal(in) && isTerminal(out) {
			return NewFormPrompter(in, out)
		}
	}
	return NewLinePrompter(in, out)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Affirmative reports whether answer starts with "y" or "Y". Leading
// whitespace is not skipped.
func Affirmative(answer string) bool {
	answer = strings.TrimRight(answer, "\r\n")
	return strings.HasPrefix(strings.ToLower(answer), "y")
}

// LinePrompter reads a single line answer.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(p.out, "%s [y/N] ", question); err != nil {
		return false, err
	}
	answer, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	return Affirmative(answer), nil
}

// FormPrompter shows an interactive yes/no form.
type FormPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewFormPrompter(in io.Reader, out io.Writer) *FormPrompter {
	return &FormPrompter{in: in, out: out}
}

func (p *FormPrompter) Confirm(question string) (bool, error) {
	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes, release").
				Negative("Cancel").
				Value(&confirm),
		),
	).WithInput(p.in).WithOutput(p.out)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation form: %w", err)
	}
	return confirm, nil
}
