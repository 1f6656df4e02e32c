// Package executor invokes the external tools the format packagers depend
// on (archiver, NuGet packager, installer builder). Invocations are
// blocking, use argument vectors rather than shell strings, and surface
// only the tool's exit status.
package executor

import (
	"errors"
	"os"
	"os/exec"

	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner runs one external tool to completion.
type Runner interface {
	// Run blocks until the tool exits and returns a non-nil error on any
	// non-zero exit status or startup failure.
	Run(name string, args ...string) error
}

// Options contains configuration for the OS runner
type Options struct {
	Logger zerolog.Logger

	// Quiet discards the tool's stdout instead of forwarding it
	Quiet bool
}

type osRunner struct {
	logger zerolog.Logger
	quiet  bool
}

// New creates a runner that executes tools on the host
func New(opts Options) Runner {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}
	return &osRunner{logger: logger, quiet: opts.Quiet}
}

func (r *osRunner) Run(name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := exec.Command(name, args...)
	if !r.quiet {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("tool", name).
			Int("exit_code", ExitCode(err)).
			Msg("External tool failed")
	}
	return err
}

// ExitCode extracts the exit code from a Runner error. Returns -1 when the
// tool did not run to completion (startup failure, signal).
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
