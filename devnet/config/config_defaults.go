package config

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// GetDefaultProjectConfig obtains a default configuration for a devnet campaign.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		RPC: RPCConfig{
			Endpoint: "https://node-2.seismicdev.net/rpc",
		},
		Faucet: FaucetConfig{
			Endpoint:        "https://faucet-2.seismicdev.net/api/claim",
			SiteURL:         "https://faucet-2.seismicdev.net/",
			SiteKey:         "",
			SolverEndpoint:  "https://api.capsolver.com",
			SolverAPIKeyEnv: "CAPTCHA_API_KEY",
			MinimumBalance:  decimal.RequireFromString("0.05"),
			ClaimTimeout:    180,
			PollInterval:    5,
		},
		Wallets: WalletsConfig{
			Count:           1,
			StorePath:       "data/wallets.db",
			InteractionOnly: false,
		},
		Contracts: ContractsConfig{
			MinimumSolcVersion: "0.8.0",
			DeploymentGasLimit: 3_000_000,
		},
		Interaction: InteractionConfig{
			TargetCount:         10,
			RetryBudgetRatio:    0.5,
			InterAttemptDelay:   2000,
			InterWalletDelay:    5000,
			TransactionGasLimit: 300_000,
			ResultsDirectory:    "data/results",
		},
		Logging: LoggingConfig{
			Level:        zerolog.InfoLevel,
			LogDirectory: "",
		},
	}
}
