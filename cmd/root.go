package cmd

import (
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seismic-devnet",
	Short: "A devnet wallet lifecycle automator",
	Long:  "seismic-devnet funds fresh wallets through a captcha-gated faucet, deploys randomly generated contracts, and drives randomized interaction batches against them",
}

// cmdLogger describes the log object the CLI commands use to log important events
var cmdLogger = logging.GlobalLogger.NewSubLogger("module", "cmd")

func Execute() error {
	return rootCmd.Execute()
}
