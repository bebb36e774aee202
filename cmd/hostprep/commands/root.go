// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the hostprep CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostprep",
		Short: "Provision and verify a self-hosted service release",
	}

	// Core commands
	cmd.AddCommand(Provision())
	cmd.AddCommand(Setup())
	cmd.AddCommand(Check())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
