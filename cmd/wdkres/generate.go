package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ternarybob/wdkres/internal/app"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write the resource descriptor without compiling it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(opts.config, opts.logger)
			if err != nil {
				return err
			}
			if _, err := a.Generate(context.Background()); err != nil {
				return err
			}
			opts.logger.Info().Str("path", opts.config.Descriptor.Path).Msg("Descriptor generated")
			return nil
		},
	}
}
