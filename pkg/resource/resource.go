// Package resource is the build-tool entry point: it generates the Windows
// resource descriptor for the package in the working directory and compiles
// it with the resource compiler.
//
// Failure is reported through the process exit status, not a returned error:
// GenerateAndCompile either returns normally or terminates the process with
// exit code 1 after printing a diagnostic to stderr.
package resource

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/wdkres/internal/app"
	"github.com/ternarybob/wdkres/internal/common"
	"github.com/ternarybob/wdkres/internal/models"
)

var (
	exit   = os.Exit
	newApp = app.New
)

// GenerateAndCompile extracts package metadata, writes the descriptor and
// compiles it, passing each include path to the compiler as "/I <path>" in
// the given order.
func GenerateAndCompile(includePaths []string) {
	if err := run(context.Background(), includePaths); err != nil {
		fmt.Fprintf(os.Stderr, "wdkres: %v\n", err)
		exit(1)
	}
}

func run(ctx context.Context, includePaths []string) error {
	config, logger, err := app.Setup(nil, common.FlagOverrides{})
	if err != nil {
		return err
	}

	a, err := newApp(config, logger)
	if err != nil {
		return err
	}

	if _, err := a.GenerateAndCompile(ctx, models.IncludePathSet(includePaths)); err != nil {
		logger.Error().Err(err).Msg("Resource build step failed")
		return err
	}
	return nil
}
