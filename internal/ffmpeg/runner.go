package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"time"

	"video-streamer/internal/logging"
	"video-streamer/internal/metrics"
)

// Runner executes one external process per call and returns its stdout.
// Success is exit code 0; any other exit code resolves to an *ExitError
// carrying the stderr text, and a failure to start resolves to a
// *SpawnError.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandRunner runs processes via os/exec. The zero value runs without a
// timeout; use New to bound every invocation with a wall-clock limit.
type CommandRunner struct {
	timeout time.Duration
}

// New creates a CommandRunner. A timeout of 0 disables the per-invocation
// wall-clock limit (the caller's context still applies).
func New(timeout time.Duration) *CommandRunner {
	return &CommandRunner{timeout: timeout}
}

// Run starts the process and blocks until it exits. The child is killed if
// ctx is cancelled or the configured timeout elapses, and is reaped on
// every path.
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tool := filepath.Base(name)
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Debug("Running %s %v", tool, args)

	err := cmd.Run()
	metrics.EncoderInvocationDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.EncoderInvocationsTotal.WithLabelValues(tool, "success").Inc()
		logging.Debug("%s finished in %s", tool, time.Since(start).Round(time.Millisecond))
		return stdout.Bytes(), nil
	}

	// Prefer the context error so callers can distinguish a timeout or
	// cancellation from a genuine encoder failure.
	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.EncoderInvocationsTotal.WithLabelValues(tool, "cancelled").Inc()
		logging.Warn("%s cancelled after %s: %v", tool, time.Since(start).Round(time.Millisecond), ctxErr)
		return stdout.Bytes(), ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		metrics.EncoderInvocationsTotal.WithLabelValues(tool, "error").Inc()
		logging.Error("%s exited with code %d: %s", tool, exitErr.ExitCode(), tail(stderr.String(), 2048))
		return stdout.Bytes(), &ExitError{
			Name:   tool,
			Code:   exitErr.ExitCode(),
			Output: stderr.String(),
		}
	}

	metrics.EncoderInvocationsTotal.WithLabelValues(tool, "spawn_error").Inc()
	return nil, &SpawnError{Name: name, Err: err}
}

// tail returns the last n bytes of s, for log lines that should not carry
// the full encoder transcript.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
