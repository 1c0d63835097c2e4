package cmd

import (
	"fmt"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/config"
	"github.com/spf13/cobra"
)

// addRunFlags adds the various flags for the run command
func addRunFlags() {
	// Get the default project config so flag help can surface the defaults
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	runCmd.Flags().SortFlags = false

	// Config file
	runCmd.Flags().String("config", "", "path to config file")

	// RPC endpoint
	runCmd.Flags().String("rpc-url", "",
		fmt.Sprintf("devnet JSON-RPC endpoint (unless a config file is provided, default is %q)", defaultConfig.RPC.Endpoint))

	// Number of wallets
	runCmd.Flags().Int("wallets", 0,
		fmt.Sprintf("number of wallets to cycle through (unless a config file is provided, default is %d)", defaultConfig.Wallets.Count))

	// Interaction success quota
	runCmd.Flags().Int("interactions", 0,
		fmt.Sprintf("number of successful interactions to reach per contract (unless a config file is provided, default is %d)", defaultConfig.Interaction.TargetCount))

	// Retry budget ratio
	runCmd.Flags().Float64("retry-budget-ratio", 0,
		fmt.Sprintf("extra-attempt budget as a fraction of the interaction quota (unless a config file is provided, default is %v)", defaultConfig.Interaction.RetryBudgetRatio))

	// Interaction-only mode
	runCmd.Flags().Bool("interaction-only", false,
		"skip funding and deployment; run interactions against wallets restored from the store")
}

// updateProjectConfigWithRunFlags will update the given projectConfig with any CLI arguments that were provided to the run command
func updateProjectConfigWithRunFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update RPC endpoint
	if cmd.Flags().Changed("rpc-url") {
		projectConfig.RPC.Endpoint, err = cmd.Flags().GetString("rpc-url")
		if err != nil {
			return err
		}
	}

	// Update wallet count
	if cmd.Flags().Changed("wallets") {
		projectConfig.Wallets.Count, err = cmd.Flags().GetInt("wallets")
		if err != nil {
			return err
		}
	}

	// Update interaction quota
	if cmd.Flags().Changed("interactions") {
		projectConfig.Interaction.TargetCount, err = cmd.Flags().GetInt("interactions")
		if err != nil {
			return err
		}
	}

	// Update retry budget ratio
	if cmd.Flags().Changed("retry-budget-ratio") {
		projectConfig.Interaction.RetryBudgetRatio, err = cmd.Flags().GetFloat64("retry-budget-ratio")
		if err != nil {
			return err
		}
	}

	// Update interaction-only mode enablement
	if cmd.Flags().Changed("interaction-only") {
		projectConfig.Wallets.InteractionOnly, err = cmd.Flags().GetBool("interaction-only")
		if err != nil {
			return err
		}
	}
	return nil
}
