package commands

import (
	"github.com/spf13/cobra"

	"github.com/hostprep/hostprep/cmd/hostprep/handlers"
)

// Setup returns the guided provisioning command.
//
// This command walks the operator through the same provisioning flow as
// 'provision', prompting interactively for the domain and public IP and
// requiring an explicit confirmation before any change is made to the host.
//
// Flags:
//
//	--output, -o: Where to save the generated configuration (default "hostprep.yaml")
func Setup() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactively provision the host",
		Long: `Interactively provision the host.

This command prompts for:

  - The domain the host will serve
  - The host's expected public IPv4 address
  - A final confirmation before anything is changed

Answers can be saved to hostprep.yaml so later runs of 'hostprep provision'
pick them up automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Setup(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "hostprep.yaml", "Output file path for the saved configuration")

	return cmd
}
