package commands

import "github.com/spf13/cobra"

// RootCmd runs a session when invoked without a subcommand.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "propdesk",
		Short:         "Console tool for apartment, tenant and parking records",
		Args:          cobra.NoArgs,
		RunE:          runSession,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		RunCmd(),
		InitCmd(),
		DownCmd(),
		HashPasswordCmd(),
	)

	return rootCmd
}
