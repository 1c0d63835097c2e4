package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/cmd/exitcodes"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/config"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCmd represents the command provider for running a campaign
var runCmd = &cobra.Command{
	Use:               "run",
	Short:             "Starts a wallet lifecycle campaign",
	Long:              `Starts a wallet lifecycle campaign`,
	Args:              cmdValidateRunArgs,
	ValidArgsFunction: cmdValidRunArgs,
	RunE:              cmdRunRun,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the run command
	addRunFlags()

	// Add the run command and its associated flags to the root command
	rootCmd.AddCommand(runCmd)
}

// cmdValidRunArgs will return which flags and sub-commands are valid for dynamic completion for the run command
func cmdValidRunArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string

	// Examine all the flags, and add any flags that have not been set in the current command line
	// to a list of unused flags
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	// Provide a list of flags that can be used in the current command (but have not been used yet)
	// for autocompletion suggestions
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateRunArgs makes sure that there are no positional arguments provided to the run command
func cmdValidateRunArgs(cmd *cobra.Command, args []string) error {
	// Make sure we have no positional args
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("run does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the run command", err)
		return err
	}
	return nil
}

// cmdRunRun executes the CLI run command and navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (devnet.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If devnet.json can't be found, use the default project configuration.
func cmdRunRun(cmd *cobra.Command, args []string) error {
	var projectConfig *config.ProjectConfig

	// Load a .env file if one is present, so solver API keys can be kept out of the config file.
	_ = godotenv.Load()

	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return err
	}

	// If --config was not used, look for `devnet.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the run command", err)
			return err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found
	if existenceError == nil {
		// Try to read the configuration file and throw an error if something goes wrong
		cmdLogger.Info("Reading the configuration file at: ", configPath)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			cmdLogger.Error("Failed to run the run command", err)
			return err
		}
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed && existenceError != nil {
		cmdLogger.Error("Failed to run the run command", existenceError)
		return existenceError
	}

	// Possibility #3: --config flag was not used and devnet.json was not found, so use the default project config
	if !configFlagUsed && existenceError != nil {
		cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration instead", configPath))
		projectConfig = config.GetDefaultProjectConfig()
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithRunFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return err
	}

	// Create our campaign
	campaign, err := devnet.NewCampaign(projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the run command", err)
		return err
	}

	// Stop our campaign on keyboard interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		cancel()
	}()

	summary, runErr := campaign.Run(ctx)
	if runErr != nil {
		return exitcodes.NewErrorWithExitCode(runErr, exitcodes.ExitCodeHandledError)
	}

	// If any wallet failed its lifecycle, we'll want to return a special exit code
	if summary != nil && summary.WalletsSucceeded < summary.WalletsProcessed {
		failedErr := errors.Errorf("%d of %d wallet(s) did not complete their lifecycle",
			summary.WalletsProcessed-summary.WalletsSucceeded, summary.WalletsProcessed)
		return exitcodes.NewErrorWithExitCode(failedErr, exitcodes.ExitCodeWalletsFailed)
	}

	return nil
}
