package chain

import (
	"context"
	"fmt"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coreTypes "github.com/ethereum/go-ethereum/core/types"
)

// Deploy sends a contract-creation transaction carrying the provided init bytecode (with packed constructor
// arguments, if the ABI declares any) through the provided submitter's account, and blocks until the deployment
// obtains one confirmation. Returns the deployed contract address and the confirmation receipt, or an error.
func Deploy(ctx context.Context, submitter *Submitter, bytecode []byte, contractABI *abi.ABI, constructorArgs ...any) (common.Address, *Receipt, error) {
	logger := logging.GlobalLogger.NewSubLogger("module", "deployer")

	// Append packed constructor arguments to the init bytecode, if the constructor takes any.
	initCode := bytecode
	if len(contractABI.Constructor.Inputs) > 0 {
		packedArgs, err := contractABI.Pack("", constructorArgs...)
		if err != nil {
			return common.Address{}, nil, err
		}
		initCode = append(append([]byte{}, bytecode...), packedArgs...)
	}

	tx, err := submitter.sendTransaction(ctx, nil, common.Big0, initCode)
	if err != nil {
		return common.Address{}, nil, err
	}

	receipt, err := bind.WaitMined(ctx, submitter.client.Backend(), tx)
	if err != nil {
		return common.Address{}, nil, err
	}
	if receipt.Status != coreTypes.ReceiptStatusSuccessful {
		return common.Address{}, nil, fmt.Errorf("contract deployment transaction %s reverted in block %d", receipt.TxHash, receipt.BlockNumber.Uint64())
	}

	logger.Info("deployed contract at ", receipt.ContractAddress.Hex(), logging.StructuredLogInfo{
		"txHash":  receipt.TxHash.Hex(),
		"block":   receipt.BlockNumber.Uint64(),
		"gasUsed": receipt.GasUsed,
	})

	return receipt.ContractAddress, &Receipt{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}
