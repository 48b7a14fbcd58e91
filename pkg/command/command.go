// Package command runs external programs for the release workflow, either
// capturing their output or relaying it line by line while they run.
package command

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

type Runner interface {
	// Output runs name with args in dir and returns its standard output.
	// A non-zero exit is reported as *ExitError.
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)

	// Stream runs name with args in dir, copying each line of standard output
	// to w as soon as the child writes it. A non-zero exit is reported as
	// *ExitError once the child has terminated.
	Stream(ctx context.Context, dir string, w io.Writer, name string, args ...string) error
}

// ExitError reports an external command that terminated with a non-zero status.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

type ExecRunner struct {
	// Stderr receives the standard error of streamed commands. Defaults to os.Stderr.
	Stderr io.Writer
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stderr: os.Stderr}
}

func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, wrapExit(err, append([]string{name}, args...), stderr.String())
	}
	return out, nil
}

func (r *ExecRunner) Stream(ctx context.Context, dir string, w io.Writer, name string, args ...string) error {
	argv := append([]string{name}, args...)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("attach stdout of %s: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	relayErr := relayLines(stdout, w)

	if err := cmd.Wait(); err != nil {
		return wrapExit(err, argv, "")
	}
	if relayErr != nil {
		return fmt.Errorf("relay output of %s: %w", name, relayErr)
	}
	return nil
}

// relayLines copies r to w one line at a time. The last line is written even
// when it has no trailing newline. After a write error the rest of r is
// drained so the child never blocks on a full pipe.
func relayLines(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if _, werr := io.WriteString(w, line); werr != nil {
				_, _ = io.Copy(io.Discard, br)
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func wrapExit(err error, argv []string, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Args:     argv,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
		}
	}
	return fmt.Errorf("run %s: %w", argv[0], err)
}
