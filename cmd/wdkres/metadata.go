package main

import (
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/ternarybob/wdkres/internal/app"
)

func newMetadataCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Print the metadata record that would be rendered into the descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(opts.config, opts.logger)
			if err != nil {
				return err
			}

			result, err := a.Extract(context.Background())
			if err != nil {
				return err
			}

			out, err := toml.Marshal(result.Record)
			if err != nil {
				return fmt.Errorf("encode metadata: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "# warning: %s\n", w)
			}
			return nil
		},
	}
}
