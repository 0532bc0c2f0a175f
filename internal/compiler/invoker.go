// Package compiler drives the external resource compiler (rc.exe) against the
// generated descriptor.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wdkres/internal/common"
	"github.com/ternarybob/wdkres/internal/interfaces"
	"github.com/ternarybob/wdkres/internal/models"
)

var (
	// ErrSpawn is returned when the compiler process could not be started
	ErrSpawn = errors.New("error running resource compiler")
	// ErrCompileFailed is returned when the compiler exits with a non-zero status
	ErrCompileFailed = errors.New("resource compilation failed")
)

// ExitError reports the status of a compiler run that did not succeed
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%v: exit code %d", ErrCompileFailed, e.Code)
}

func (e *ExitError) Unwrap() error {
	return ErrCompileFailed
}

// Invoker compiles the descriptor with the external resource compiler
type Invoker struct {
	runner    interfaces.ProcessRunner
	config    common.CompilerConfig
	logger    arbor.ILogger
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
}

// NewInvoker creates an invoker whose compiler output goes to the process's
// own stdout and stderr
func NewInvoker(runner interfaces.ProcessRunner, config common.CompilerConfig, logger arbor.ILogger) *Invoker {
	return &Invoker{
		runner:    runner,
		config:    config,
		logger:    logger,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		lookupEnv: os.LookupEnv,
	}
}

// ResolveCompiler returns the compiler executable: the value of the configured
// environment variable when set, otherwise the configured default path.
func (i *Invoker) ResolveCompiler() string {
	if path, ok := i.lookupEnv(i.config.EnvVar); ok && path != "" {
		return path
	}
	return i.config.DefaultPath
}

// BuildArgs returns one "/I <path>" argument per include path, in order,
// followed by the descriptor path.
func BuildArgs(includes models.IncludePathSet, descriptorPath string) ([]string, error) {
	if err := includes.Validate(); err != nil {
		return nil, err
	}
	args := make([]string, 0, len(includes)+1)
	for _, p := range includes {
		args = append(args, "/I "+p)
	}
	return append(args, descriptorPath), nil
}

// Compile runs the compiler against descriptorPath and waits for it to exit.
// The returned invocation is non-nil whenever the process was started.
func (i *Invoker) Compile(ctx context.Context, includes models.IncludePathSet, descriptorPath string) (*models.CompilerInvocation, error) {
	args, err := BuildArgs(includes, descriptorPath)
	if err != nil {
		return nil, err
	}

	compiler := i.ResolveCompiler()
	i.logger.Info().Str("path", compiler).Msg("Using resource compiler path")

	code, err := i.runner.Run(ctx, i.stdout, i.stderr, compiler, args...)
	if err != nil {
		i.logger.Error().Err(err).Str("path", compiler).Msg("Error running resource compiler")
		return nil, fmt.Errorf("%w %s: %v", ErrSpawn, compiler, err)
	}

	invocation := &models.CompilerInvocation{
		Executable: compiler,
		Args:       args,
		ExitCode:   code,
	}

	if code != 0 {
		i.logger.Error().Int("exit_code", code).Msg("Resource compilation failed.")
		return invocation, &ExitError{Code: code}
	}

	i.logger.Info().Msg("Resource compilation successful!")
	return invocation, nil
}
