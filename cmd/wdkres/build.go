package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ternarybob/wdkres/internal/app"
	"github.com/ternarybob/wdkres/internal/models"
)

func newBuildCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [include-path...]",
		Short: "Generate the descriptor and compile it",
		Long: `Extracts metadata, writes the descriptor and runs the resource compiler.
Include paths given with -I and as arguments are passed to the compiler as
"/I <path>" in order (flags first, then arguments).`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args)
		},
	}
	addIncludeFlag(cmd, opts)
	return cmd
}

func addIncludeFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringArrayVarP(&opts.includePaths, "include", "I", nil, "Include directory for the resource compiler (repeatable, order is preserved)")
}

func runBuild(opts *options, args []string) error {
	a, err := app.New(opts.config, opts.logger)
	if err != nil {
		return err
	}

	includes := append(models.IncludePathSet{}, opts.includePaths...)
	includes = append(includes, args...)

	_, err = a.GenerateAndCompile(context.Background(), includes)
	return err
}
