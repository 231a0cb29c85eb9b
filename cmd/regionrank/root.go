package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "regionrank",
		Short:         "Rank regions by average order value",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newRankCmd(), newCleanCmd())
	return root
}
