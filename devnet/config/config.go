package config

import (
	"encoding/json"
	"os"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProjectConfig describes the configuration of a devnet campaign: which endpoint to run against, how many wallets
// to cycle, how each wallet is funded, what contract to deploy, and how the interaction batch is driven.
type ProjectConfig struct {
	// RPC describes the configuration of the devnet RPC endpoint.
	RPC RPCConfig `json:"rpc"`

	// Faucet describes the configuration of the captcha-gated faucet used to fund wallets.
	Faucet FaucetConfig `json:"faucet"`

	// Wallets describes the configuration of wallet generation and persistence.
	Wallets WalletsConfig `json:"wallets"`

	// Contracts describes the configuration of contract generation and deployment.
	Contracts ContractsConfig `json:"contracts"`

	// Interaction describes the configuration of the randomized interaction batch run per contract.
	Interaction InteractionConfig `json:"interaction"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// RPCConfig describes the configuration of the devnet RPC endpoint.
type RPCConfig struct {
	// Endpoint describes the URL of the devnet JSON-RPC endpoint.
	Endpoint string `json:"endpoint"`
}

// FaucetConfig describes the configuration of the captcha-gated faucet used to fund wallets.
type FaucetConfig struct {
	// Endpoint describes the URL of the faucet claim endpoint.
	Endpoint string `json:"endpoint"`

	// SiteURL describes the page the captcha widget is served from, forwarded to the captcha solver.
	SiteURL string `json:"siteUrl"`

	// SiteKey describes the captcha site key the faucet gates claims with. If empty, claims are sent without a
	// captcha token.
	SiteKey string `json:"siteKey"`

	// SolverEndpoint describes the URL of the external captcha-solving service API.
	SolverEndpoint string `json:"solverEndpoint"`

	// SolverAPIKeyEnv describes the environment variable the captcha solver API key is read from.
	SolverAPIKeyEnv string `json:"solverApiKeyEnv"`

	// MinimumBalance describes the ether-denominated balance a wallet must reach for funding to be considered
	// complete.
	MinimumBalance decimal.Decimal `json:"minimumBalance"`

	// ClaimTimeout describes a time in seconds a faucet claim (including balance polling) may take before it is
	// considered failed.
	ClaimTimeout int `json:"claimTimeout"`

	// PollInterval describes a time in seconds between balance polls while awaiting faucet funds.
	PollInterval int `json:"pollInterval"`
}

// WalletsConfig describes the configuration of wallet generation and persistence.
type WalletsConfig struct {
	// Count describes how many wallets the campaign cycles through.
	Count int `json:"count"`

	// StorePath describes the path of the wallet store database used to persist wallet state across runs.
	StorePath string `json:"storePath"`

	// InteractionOnly describes whether the campaign should skip funding and deployment and only run interaction
	// batches against wallets and contracts restored from the store.
	InteractionOnly bool `json:"interactionOnly"`
}

// ContractsConfig describes the configuration of contract generation and deployment.
type ContractsConfig struct {
	// MinimumSolcVersion describes the minimum system solc version accepted by the contract generator.
	MinimumSolcVersion string `json:"minimumSolcVersion"`

	// DeploymentGasLimit describes the fixed gas bound applied to contract deployment transactions.
	DeploymentGasLimit uint64 `json:"deploymentGasLimit"`
}

// InteractionConfig describes the configuration of the randomized interaction batch run per contract.
type InteractionConfig struct {
	// TargetCount describes the success quota of each interaction batch.
	TargetCount int `json:"targetCount"`

	// RetryBudgetRatio describes the extra-attempt budget as a fraction of TargetCount. A batch may issue up to
	// floor(TargetCount * RetryBudgetRatio) attempts beyond its primary budget.
	RetryBudgetRatio float64 `json:"retryBudgetRatio"`

	// InterAttemptDelay describes a time in milliseconds awaited after every interaction attempt.
	InterAttemptDelay int `json:"interAttemptDelay"`

	// InterWalletDelay describes a time in milliseconds awaited between wallets.
	InterWalletDelay int `json:"interWalletDelay"`

	// TransactionGasLimit describes the fixed upper gas bound applied to every interaction transaction.
	TransactionGasLimit uint64 `json:"transactionGasLimit"`

	// ResultsDirectory describes the directory interaction outcome logs are persisted into.
	ResultsDirectory string `json:"resultsDirectory"`
}

// LoggingConfig describes the configuration options used for logging.
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or
	// discarded. Increasing level values represent more severe logs.
	Level zerolog.Level `json:"level"`

	// LogDirectory describes the directory where structured log files will be outputted. If the string is empty,
	// then no log files are kept.
	LogDirectory string `json:"logDirectory"`
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration on top of the defaults, so omitted fields keep their default values.
	projectConfig := GetDefaultProjectConfig()
	if err = json.Unmarshal(b, projectConfig); err != nil {
		return nil, errors.WithStack(err)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	if err = os.WriteFile(path, b, 0644); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	// Verify the RPC endpoint is set.
	if p.RPC.Endpoint == "" {
		return errors.Errorf("rpc endpoint must be set")
	}

	// Verify the wallet count is a positive number.
	if p.Wallets.Count <= 0 {
		return errors.Errorf("wallet count must be a positive number")
	}

	// Verify the interaction target is a positive number.
	if p.Interaction.TargetCount <= 0 {
		return errors.Errorf("interaction target count must be a positive number")
	}

	// Verify the retry budget ratio is not negative.
	if p.Interaction.RetryBudgetRatio < 0 {
		return errors.Errorf("interaction retry budget ratio cannot be negative")
	}

	// Verify gas limits are appropriate.
	if p.Interaction.TransactionGasLimit == 0 || p.Contracts.DeploymentGasLimit == 0 {
		return errors.Errorf("transaction and deployment gas limits cannot be zero")
	}

	// Funding requires a faucet endpoint unless the campaign only runs interactions.
	if !p.Wallets.InteractionOnly && p.Faucet.Endpoint == "" {
		return errors.Errorf("faucet endpoint must be set unless running in interaction-only mode")
	}

	// Verify the minimum funding balance is positive when funding is enabled.
	if !p.Wallets.InteractionOnly && !p.Faucet.MinimumBalance.IsPositive() {
		return errors.Errorf("faucet minimum balance must be a positive amount of ether")
	}

	return nil
}

// EnsureDirectories creates the directories the campaign writes into, so failures surface before any network work.
func (p *ProjectConfig) EnsureDirectories() error {
	if p.Interaction.ResultsDirectory != "" {
		if err := utils.MakeDirectory(p.Interaction.ResultsDirectory); err != nil {
			return err
		}
	}
	if p.Logging.LogDirectory != "" {
		if err := utils.MakeDirectory(p.Logging.LogDirectory); err != nil {
			return err
		}
	}
	return nil
}
