package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	coreTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Receipt describes the confirmation record for a submitted transaction.
type Receipt struct {
	// TxHash describes the hash of the confirmed transaction.
	TxHash common.Hash

	// BlockNumber describes the number of the block the transaction was included in.
	BlockNumber uint64

	// GasUsed describes the amount of gas the transaction consumed.
	GasUsed uint64
}

// SubmissionError describes a per-attempt failure when submitting a contract call: invalid arguments, reverted
// execution, an RPC/network failure, or a confirmation timeout. It carries the underlying cause.
type SubmissionError struct {
	// Function describes the name of the contract function the failed submission targeted.
	Function string

	// Err describes the underlying error which caused the submission to fail.
	Err error
}

// NewSubmissionError creates a SubmissionError for the provided function name wrapping the underlying cause.
func NewSubmissionError(function string, err error) *SubmissionError {
	return &SubmissionError{Function: function, Err: err}
}

// Error implements the error interface.
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission of '%s' failed: %v", e.Function, e.Err)
}

// Unwrap returns the underlying cause of the submission failure.
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Submitter sends signed state-changing contract calls from a single account and awaits one confirmation for each.
// It applies a fixed upper gas bound rather than estimating gas, so calls against unpredictable contract state do
// not fail during estimation. A Submitter is owned by exactly one wallet task; it is not safe for concurrent use.
type Submitter struct {
	// client describes the ledger client used to send transactions and await confirmations.
	client *Client

	// privateKey describes the key used to sign submitted transactions.
	privateKey *ecdsa.PrivateKey

	// sender describes the address derived from privateKey.
	sender common.Address

	// gasLimit describes the fixed upper gas bound applied to every submitted transaction.
	gasLimit uint64

	// logger describes the Submitter's log object that can be used to log important events
	logger *logging.Logger
}

// NewSubmitter creates a Submitter which signs with the provided key and bounds every call at the provided gas limit.
func NewSubmitter(client *Client, privateKey *ecdsa.PrivateKey, gasLimit uint64) *Submitter {
	return &Submitter{
		client:     client,
		privateKey: privateKey,
		sender:     crypto.PubkeyToAddress(privateKey.PublicKey),
		gasLimit:   gasLimit,
		logger:     logging.GlobalLogger.NewSubLogger("module", "submitter"),
	}
}

// Sender returns the address transactions are sent from.
func (s *Submitter) Sender() common.Address {
	return s.sender
}

// Submit packs a call to the named function with the provided arguments, signs and sends it against the contract at
// the provided address, and blocks until the transaction obtains one confirmation. Either a confirmed receipt is
// returned, or a *SubmissionError; no pending state is ever exposed to the caller.
func (s *Submitter) Submit(ctx context.Context, contract common.Address, contractABI *abi.ABI, function string, args []any) (*Receipt, error) {
	// Pack the calldata. Argument mismatches surface here rather than on-chain.
	data, err := contractABI.Pack(function, args...)
	if err != nil {
		return nil, NewSubmissionError(function, err)
	}

	// Build, sign and send the transaction.
	tx, err := s.sendTransaction(ctx, &contract, big.NewInt(0), data)
	if err != nil {
		return nil, NewSubmissionError(function, err)
	}

	// Await a single confirmation.
	receipt, err := bind.WaitMined(ctx, s.client.Backend(), tx)
	if err != nil {
		return nil, NewSubmissionError(function, err)
	}
	if receipt.Status != coreTypes.ReceiptStatusSuccessful {
		return nil, NewSubmissionError(function, fmt.Errorf("transaction %s reverted in block %d", receipt.TxHash, receipt.BlockNumber.Uint64()))
	}

	s.logger.Debug("confirmed call to ", function, logging.StructuredLogInfo{
		"txHash":  receipt.TxHash.Hex(),
		"block":   receipt.BlockNumber.Uint64(),
		"gasUsed": receipt.GasUsed,
	})

	return &Receipt{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// sendTransaction builds an EIP-1559 transaction carrying the provided calldata, signs it with the submitter's key
// and sends it to the network. Returns the sent transaction, or an error if one occurred.
func (s *Submitter) sendTransaction(ctx context.Context, to *common.Address, value *big.Int, data []byte) (*coreTypes.Transaction, error) {
	nonce, err := s.client.PendingNonce(ctx, s.sender)
	if err != nil {
		return nil, err
	}

	tip, feeCap, err := s.client.suggestFees(ctx)
	if err != nil {
		return nil, err
	}

	tx := coreTypes.NewTx(&coreTypes.DynamicFeeTx{
		ChainID:   s.client.ChainID(),
		Nonce:     nonce,
		Gas:       s.gasLimit,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		To:        to,
		Value:     value,
		Data:      data,
	})

	signer := coreTypes.LatestSignerForChainID(s.client.ChainID())
	signedTx, err := coreTypes.SignTx(tx, signer, s.privateKey)
	if err != nil {
		return nil, err
	}

	if err = s.client.Backend().SendTransaction(ctx, signedTx); err != nil {
		return nil, err
	}
	return signedTx, nil
}
