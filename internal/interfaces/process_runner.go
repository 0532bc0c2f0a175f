package interfaces

import (
	"context"
	"io"
)

// ProcessRunner starts external programs on behalf of the helper. It is the
// seam between the build steps and the operating system: the package-manager
// metadata query and the resource compiler both go through it.
type ProcessRunner interface {
	// Output runs name with args and returns its standard output.
	// A non-zero exit is reported as an error.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Run runs name with args, streaming its output to stdout and stderr, and
	// waits for it to exit.
	//
	// Returns:
	//   - exitCode: the process exit status (meaningful only when err is nil)
	//   - err: non-nil when the process could not be started or waited on
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (exitCode int, err error)
}
