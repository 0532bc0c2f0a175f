// -----------------------------------------------------------------------
// Last Modified: Sunday, 18th October 2026 11:02:15 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wdkres/internal/app"
	"github.com/ternarybob/wdkres/internal/common"
)

// options holds command-line flags and the state resolved from them
type options struct {
	configFiles  []string // Multiple --config flags supported, later files override earlier ones
	overrides    common.FlagOverrides
	includePaths []string
	quiet        bool

	config *common.Config
	logger arbor.ILogger
}

func main() {
	opts := &options{}
	if err := newRootCmd(opts).Execute(); err != nil {
		if opts.logger != nil {
			opts.logger.Error().Err(err).Msg("wdkres failed")
		}
		fmt.Fprintf(os.Stderr, "wdkres: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "wdkres",
		Short: "Generate and compile the Windows version resource for a driver package",
		Long: `wdkres reads version metadata from the package manifest and the package
manager's metadata query, writes a resource descriptor (resources.rc) and
compiles it with rc.exe (PATH_TO_RC overrides the compiler location).

Running wdkres without a subcommand is the same as "wdkres build".`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringArrayVarP(&opts.configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flags.StringVar(&opts.overrides.Manifest, "manifest", "", "Package manifest path (overrides config)")
	flags.StringVar(&opts.overrides.Descriptor, "descriptor", "", "Descriptor output path (overrides config)")
	flags.StringVar(&opts.overrides.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print the banner")

	addIncludeFlag(root, opts)

	root.AddCommand(newBuildCmd(opts), newGenerateCmd(opts), newMetadataCmd(opts), newVersionCmd())
	return root
}

// setup loads configuration, initializes the logger and prints the banner
func (o *options) setup() error {
	var err error
	o.config, o.logger, err = app.Setup(o.configFiles, o.overrides)
	if err != nil {
		return err
	}

	if !o.quiet {
		common.PrintBanner(common.GetVersion())
	}
	return nil
}
