package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "unbelongctl",
		Short:         "Operator tools for the unbelong API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newHashPasswordCommand())
	rootCmd.AddCommand(newIssueTokenCommand())
	rootCmd.AddCommand(newPagesCommand())

	return rootCmd
}
