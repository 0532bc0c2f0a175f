package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ternarybob/wdkres/internal/common"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wdkres version %s\n", common.GetFullVersion())
		},
	}
}
