package devnet

import (
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/contracts"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/interaction"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/wallet"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/events"
)

// CampaignEvents defines event emitters for a Campaign. Consumers subscribe before Run is called; a handler error
// aborts the wallet whose lifecycle published the event.
type CampaignEvents struct {
	// WalletFunded emits events indicating a wallet reached its minimum funded balance.
	WalletFunded events.EventEmitter[WalletFundedEvent]

	// ContractDeployed emits events indicating a generated contract was deployed for a wallet.
	ContractDeployed events.EventEmitter[ContractDeployedEvent]

	// InteractionBatchCompleted emits events indicating a wallet's interaction batch finished.
	InteractionBatchCompleted events.EventEmitter[InteractionBatchCompletedEvent]
}

// WalletFundedEvent describes an event where a wallet reached its minimum funded balance.
type WalletFundedEvent struct {
	// Campaign describes the Campaign instance the event originated from.
	Campaign *Campaign

	// Wallet describes the wallet which was funded.
	Wallet *wallet.Wallet
}

// ContractDeployedEvent describes an event where a generated contract was deployed for a wallet.
type ContractDeployedEvent struct {
	// Campaign describes the Campaign instance the event originated from.
	Campaign *Campaign

	// Wallet describes the wallet the contract was deployed for.
	Wallet *wallet.Wallet

	// Contract describes the deployed contract instance.
	Contract *contracts.DeployedContract
}

// InteractionBatchCompletedEvent describes an event where a wallet's interaction batch finished.
type InteractionBatchCompletedEvent struct {
	// Campaign describes the Campaign instance the event originated from.
	Campaign *Campaign

	// Wallet describes the wallet the batch was run for.
	Wallet *wallet.Wallet

	// Result describes the batch's aggregate result.
	Result *interaction.BatchResult
}
