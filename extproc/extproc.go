package extproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/erraggy/rxdoc/document"
)

// DefaultCommand is the command line used when WithCommand is not given.
// Options are already normalized by the caller, so normalization is skipped.
var DefaultCommand = []string{"rxdoc", "process", "--no-norm", "--format", "json", "-q", "-"}

// exitIssues is the status rxdoc exits with when the document was
// processed but issues were reported.
const exitIssues = 1

// ErrTimeout is returned when processing exceeds the WithTimeout limit.
var ErrTimeout = errors.New("extproc: processing timed out")

// ExitError reports a child process that exited without producing a
// document.
type ExitError struct {
	// Code is the exit status.
	Code int
	// Stderr is the trimmed standard error of the child.
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("extproc: child exited with status %d", e.Code)
	}
	return fmt.Sprintf("extproc: child exited with status %d: %s", e.Code, e.Stderr)
}

type config struct {
	command []string
	timeout time.Duration
	env     []string
}

// Option configures Run and TryRun.
type Option func(*config)

// WithCommand replaces the command line. The document is written to the
// command's standard input and the annotated document read back from its
// standard output as JSON.
func WithCommand(name string, args ...string) Option {
	return func(c *config) {
		c.command = append([]string{name}, args...)
	}
}

// WithTimeout bounds the child's run time. Zero means no limit beyond the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithEnv adds KEY=value pairs to the child's environment, which otherwise
// inherits the current one.
func WithEnv(env ...string) Option {
	return func(c *config) {
		c.env = append(c.env, env...)
	}
}

// Run pipes doc as JSON to an rxdoc process and returns the annotated
// document it writes back. A child that reports issues (exit status 1 with
// a document on stdout) still counts as a success: the issues are visible
// in the returned document as unset output fields.
func Run(ctx context.Context, doc *document.Document, opts ...Option) (*document.Document, error) {
	cfg := &config{command: DefaultCommand}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.command) == 0 || cfg.command[0] == "" {
		return nil, errors.New("extproc: empty command")
	}

	input, err := document.Encode(doc, document.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("extproc: encoding document: %w", err)
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cfg.command[0], cfg.command[1:]...) //nolint:gosec // G204 - the command line is chosen by the caller
	if len(cfg.env) > 0 {
		cmd.Env = append(os.Environ(), cfg.env...)
	}
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if cfg.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %v", ErrTimeout, cfg.timeout)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("extproc: running %s: %w", cfg.command[0], err)
		}
		if exitErr.ExitCode() != exitIssues || stdout.Len() == 0 {
			return nil, &ExitError{Code: exitErr.ExitCode(), Stderr: strings.TrimSpace(stderr.String())}
		}
	}

	out, err := document.Decode(stdout.Bytes(), document.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("extproc: decoding output: %w", err)
	}
	return out, nil
}

// TryRun is Run without the error: the boolean is false when the child
// failed, timed out or produced no document.
func TryRun(ctx context.Context, doc *document.Document, opts ...Option) (*document.Document, bool) {
	out, err := Run(ctx, doc, opts...)
	if err != nil {
		return nil, false
	}
	return out, true
}
