package cmd

import (
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/config"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// RPC endpoint
	initCmd.Flags().String("rpc-url", "", "devnet JSON-RPC endpoint to write into the new configuration")
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update RPC endpoint if necessary
	if cmd.Flags().Changed("rpc-url") {
		projectConfig.RPC.Endpoint, err = cmd.Flags().GetString("rpc-url")
		if err != nil {
			return err
		}
	}

	return nil
}
