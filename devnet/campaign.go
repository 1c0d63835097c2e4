package devnet

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/chain"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/config"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/contracts"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/faucet"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/generator"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/interaction"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/wallet"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/utils"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Summary describes the aggregate result of a campaign run across all wallets.
type Summary struct {
	// WalletsProcessed describes how many wallets the campaign attempted.
	WalletsProcessed int

	// WalletsSucceeded describes how many wallets completed their interaction batch.
	WalletsSucceeded int

	// InteractionsRecorded describes the total number of recorded interaction outcomes across all wallets.
	InteractionsRecorded int

	// InteractionsSucceeded describes the total number of successful interactions across all wallets.
	InteractionsSucceeded int
}

// Campaign orchestrates the wallet lifecycle against the devnet: for each wallet in sequence it funds the wallet
// through the captcha-gated faucet, deploys a randomly generated contract, and drives a randomized interaction
// batch against it. Wallet state is persisted so later runs can resume in interaction-only mode. Everything runs
// strictly sequentially; a Campaign owns all of its collaborators exclusively.
type Campaign struct {
	// config describes the campaign's configuration.
	config *config.ProjectConfig

	// runID uniquely identifies this campaign run in logs and persisted artifacts.
	runID uuid.UUID

	// randomProvider offers a source of random data shared by the generator, selector and synthesizer.
	randomProvider *rand.Rand

	// client describes the ledger client the campaign submits transactions through.
	client *chain.Client

	// store describes the persisted wallet state used for interaction-only resumes.
	store *wallet.Store

	// faucetClient describes the faucet collaborator wallets are funded through.
	faucetClient *faucet.Client

	// generator describes the contract generation/compilation collaborator.
	generator *generator.Generator

	// recorder describes the collaborator interaction outcomes are persisted through.
	recorder *interaction.Recorder

	// Events describes the event system for the Campaign.
	Events CampaignEvents

	// logger describes the Campaign's log object that can be used to log important events
	logger *logging.Logger
}

// NewCampaign validates the provided configuration, sets up global logging per its logging section, and creates a
// Campaign. Returns the campaign, or an error if the configuration is invalid.
func NewCampaign(projectConfig *config.ProjectConfig) (*Campaign, error) {
	// Validate our provided config
	if err := projectConfig.Validate(); err != nil {
		return nil, err
	}
	if err := projectConfig.EnsureDirectories(); err != nil {
		return nil, err
	}

	// Set up the global logger: console output always, plus a structured log file if a directory was configured.
	logging.GlobalLogger = logging.NewLogger(projectConfig.Logging.Level, true)
	if projectConfig.Logging.LogDirectory != "" {
		file, err := utils.CreateFile(projectConfig.Logging.LogDirectory, fmt.Sprintf("campaign_%d.log", time.Now().Unix()))
		if err != nil {
			return nil, err
		}
		logging.GlobalLogger.AddWriter(file, logging.STRUCTURED)
	}

	randomProvider := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Campaign{
		config:         projectConfig,
		runID:          uuid.New(),
		randomProvider: randomProvider,
		generator:      generator.NewGenerator(randomProvider, projectConfig.Contracts.MinimumSolcVersion),
		recorder:       interaction.NewRecorder(projectConfig.Interaction.ResultsDirectory),
		logger:         logging.GlobalLogger.NewSubLogger("module", "campaign"),
	}, nil
}

// Run executes the campaign over its configured wallet count and returns a summary. Wallet-level failures are
// logged and skip to the next wallet; only setup failures (RPC dial, wallet store) abort the run.
func (c *Campaign) Run(ctx context.Context) (*Summary, error) {
	c.logger.Info("starting campaign across ", c.config.Wallets.Count, " wallet(s)", logging.StructuredLogInfo{
		"runId":           c.runID.String(),
		"interactionOnly": c.config.Wallets.InteractionOnly,
	})

	// Dial the ledger and open the wallet store.
	var err error
	if c.client, err = chain.DialClient(ctx, c.config.RPC.Endpoint); err != nil {
		return nil, err
	}
	defer c.client.Close()

	if c.store, err = wallet.OpenStore(c.config.Wallets.StorePath); err != nil {
		return nil, err
	}
	defer c.store.Close()

	// Set up the faucet collaborator when funding is enabled.
	if !c.config.Wallets.InteractionOnly {
		var solver faucet.CaptchaSolver
		if apiKey := os.Getenv(c.config.Faucet.SolverAPIKeyEnv); apiKey != "" && c.config.Faucet.SiteKey != "" {
			solver = faucet.NewHTTPSolver(c.config.Faucet.SolverEndpoint, apiKey)
		}
		c.faucetClient = faucet.NewClient(c.config.Faucet, solver, c.client)
	}

	summary := &Summary{}
	if c.config.Wallets.InteractionOnly {
		err = c.runResumedWallets(ctx, summary)
	} else {
		err = c.runFreshWallets(ctx, summary)
	}
	if err != nil {
		return summary, err
	}

	c.logger.Info("campaign finished: ", summary.WalletsSucceeded, "/", summary.WalletsProcessed,
		" wallets succeeded, ", summary.InteractionsSucceeded, " successful interactions")
	return summary, nil
}

// runFreshWallets executes the full lifecycle (fund, deploy, interact) for newly generated wallets.
func (c *Campaign) runFreshWallets(ctx context.Context, summary *Summary) error {
	for i := 0; i < c.config.Wallets.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.WalletsProcessed++

		w, err := wallet.Generate()
		if err != nil {
			// Key generation failing is not a wallet-level condition; abort.
			return err
		}
		c.logger.Info("wallet ", i+1, "/", c.config.Wallets.Count, ": ", w.Address.Hex())

		// Persist the wallet before any network work so an interrupted run cannot orphan funded keys.
		record := &wallet.Record{Address: w.Address.Hex(), PrivateKey: w.PrivateKeyHex()}
		if err = c.store.Put(record); err != nil {
			return err
		}

		if err = c.processWallet(ctx, w, record, summary); err != nil {
			c.logger.Error("wallet ", w.Address.Hex(), " failed, skipping to next wallet", err)
		} else {
			summary.WalletsSucceeded++
		}

		c.pause(ctx, time.Duration(c.config.Interaction.InterWalletDelay)*time.Millisecond)
	}
	return nil
}

// runResumedWallets executes interaction batches against wallets and contracts restored from the store.
func (c *Campaign) runResumedWallets(ctx context.Context, summary *Summary) error {
	records, err := c.store.All()
	if err != nil {
		return err
	}

	resumed := 0
	for _, record := range records {
		if resumed >= c.config.Wallets.Count {
			break
		}
		if record.ContractAddress == "" || record.ContractABI == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		resumed++
		summary.WalletsProcessed++

		w, err := wallet.FromHexKey(record.PrivateKey)
		if err != nil {
			c.logger.Error("stored wallet ", record.Address, " has an unparseable key, skipping", err)
			continue
		}

		deployed, err := restoreContract(record)
		if err != nil {
			c.logger.Error("stored contract for wallet ", record.Address, " could not be restored, skipping", err)
			continue
		}

		c.logger.Info("resuming wallet ", w.Address.Hex(), " against contract ", deployed.Address.Hex())
		if err = c.interactAndRecord(ctx, w, deployed, summary); err != nil {
			c.logger.Error("wallet ", w.Address.Hex(), " failed, skipping to next wallet", err)
		} else {
			summary.WalletsSucceeded++
		}

		c.pause(ctx, time.Duration(c.config.Interaction.InterWalletDelay)*time.Millisecond)
	}

	if resumed == 0 {
		c.logger.Warn("interaction-only mode found no stored wallets with deployed contracts")
	}
	return nil
}

// processWallet runs the full lifecycle for one wallet: faucet funding, contract generation/deployment, and the
// interaction batch. Returns an error if any stage fails; the caller decides skip behavior.
func (c *Campaign) processWallet(ctx context.Context, w *wallet.Wallet, record *wallet.Record, summary *Summary) error {
	// Fund the wallet through the captcha-gated faucet.
	if err := c.faucetClient.Fund(ctx, w.Address); err != nil {
		return err
	}
	record.Funded = true
	if err := c.store.Put(record); err != nil {
		return err
	}
	if err := c.Events.WalletFunded.Publish(WalletFundedEvent{Campaign: c, Wallet: w}); err != nil {
		return err
	}

	// Generate, compile and deploy a fresh contract.
	source, err := c.generator.Generate()
	if err != nil {
		return err
	}
	compiled, err := c.generator.Compile(source)
	if err != nil {
		return err
	}

	deploySubmitter := chain.NewSubmitter(c.client, w.PrivateKey, c.config.Contracts.DeploymentGasLimit)
	address, _, err := chain.Deploy(ctx, deploySubmitter, compiled.Bytecode, &compiled.ABI)
	if err != nil {
		return err
	}

	deployed := contracts.NewDeployedContract(compiled.Name, address, compiled.ABI)
	record.ContractName = compiled.Name
	record.ContractAddress = address.Hex()
	if abiJSON, err := abiToJSON(&compiled.ABI); err == nil {
		record.ContractABI = abiJSON
	} else {
		c.logger.Warn("could not serialize contract interface for persistence", err)
	}
	if err = c.store.Put(record); err != nil {
		return err
	}
	if err = c.Events.ContractDeployed.Publish(ContractDeployedEvent{Campaign: c, Wallet: w, Contract: deployed}); err != nil {
		return err
	}

	return c.interactAndRecord(ctx, w, deployed, summary)
}

// interactAndRecord runs the interaction batch for a wallet's contract and persists its outcome log. Persistence
// failures are logged and swallowed; they never affect the batch result.
func (c *Campaign) interactAndRecord(ctx context.Context, w *wallet.Wallet, deployed *contracts.DeployedContract, summary *Summary) error {
	result, err := c.Interact(ctx, w, deployed, c.config.Interaction.TargetCount)
	if result != nil {
		summary.InteractionsRecorded += len(result.Results)
		summary.InteractionsSucceeded += result.Successful

		if _, persistErr := c.recorder.Persist(result, w.Address, deployed.Address); persistErr != nil {
			c.logger.Error("failed to persist interaction outcomes", persistErr)
		}
		if publishErr := c.Events.InteractionBatchCompleted.Publish(InteractionBatchCompletedEvent{Campaign: c, Wallet: w, Result: result}); publishErr != nil && err == nil {
			err = publishErr
		}
	}
	return err
}

// Interact runs a randomized interaction batch for the provided wallet against the provided deployed contract.
// This is the sole entry point orchestration code uses to drive interactions. It always returns a well-formed
// batch result; the error is non-nil only for context cancellation or a malformed catalog.
func (c *Campaign) Interact(ctx context.Context, w *wallet.Wallet, deployed *contracts.DeployedContract, targetCount int) (*interaction.BatchResult, error) {
	catalog := deployed.WriteFunctions()

	submitter := &contractSubmitter{
		submitter: chain.NewSubmitter(c.client, w.PrivateKey, c.config.Interaction.TransactionGasLimit),
		contract:  deployed,
	}
	driver := interaction.NewDriver(
		submitter,
		interaction.NewSelector(c.randomProvider),
		interaction.NewSynthesizer(c.randomProvider),
		time.Duration(c.config.Interaction.InterAttemptDelay)*time.Millisecond,
		c.config.Interaction.RetryBudgetRatio,
	)

	return driver.Run(ctx, w.Address, catalog, targetCount)
}

// pause sleeps for the provided duration, returning early if the context is cancelled.
func (c *Campaign) pause(ctx context.Context, duration time.Duration) {
	if duration <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(duration):
	}
}

// contractSubmitter adapts the chain submitter to the interaction driver's view of a single deployed contract.
type contractSubmitter struct {
	submitter *chain.Submitter
	contract  *contracts.DeployedContract
}

// Submit sends a call to the provided function against the adapted contract instance.
func (s *contractSubmitter) Submit(ctx context.Context, function contracts.FunctionDescriptor, args []any) (*chain.Receipt, error) {
	return s.submitter.Submit(ctx, s.contract.Address, &s.contract.ABI, function.Name, args)
}

// restoreContract rebuilds a DeployedContract from a persisted wallet record.
func restoreContract(record *wallet.Record) (*contracts.DeployedContract, error) {
	address, err := utils.HexStringToAddress(record.ContractAddress)
	if err != nil {
		return nil, err
	}
	parsedABI, err := abi.JSON(strings.NewReader(record.ContractABI))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return contracts.NewDeployedContract(record.ContractName, *address, parsedABI), nil
}

// abiToJSON serializes a contract interface back into its JSON representation for persistence.
func abiToJSON(contractABI *abi.ABI) (string, error) {
	entries := make([]map[string]any, 0, len(contractABI.Methods)+1)
	for _, method := range contractABI.Methods {
		inputs := make([]map[string]any, 0, len(method.Inputs))
		for _, input := range method.Inputs {
			inputs = append(inputs, map[string]any{"name": input.Name, "type": input.Type.String()})
		}
		outputs := make([]map[string]any, 0, len(method.Outputs))
		for _, output := range method.Outputs {
			outputs = append(outputs, map[string]any{"name": output.Name, "type": output.Type.String()})
		}
		entries = append(entries, map[string]any{
			"type":            "function",
			"name":            method.Name,
			"inputs":          inputs,
			"outputs":         outputs,
			"stateMutability": method.StateMutability,
		})
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(b), nil
}
