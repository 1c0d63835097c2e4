package chain

import (
	"context"
	"math/big"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Client wraps an ethclient.Client connected to the devnet RPC endpoint and caches the chain ID obtained on dial.
// All blocking operations take a context; timeouts are delegated to the underlying RPC transport.
type Client struct {
	// eth describes the underlying RPC-backed ethereum client.
	eth *ethclient.Client

	// chainID describes the chain ID reported by the endpoint when the client was dialed.
	chainID *big.Int

	// logger describes the Client's log object that can be used to log important events
	logger *logging.Logger
}

// DialClient connects to the devnet RPC endpoint at the provided URL and queries its chain ID.
// Returns the client, or an error if dialing or the chain ID query fails.
func DialClient(ctx context.Context, rpcURL string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, errors.WithStack(err)
	}

	return &Client{
		eth:     eth,
		chainID: chainID,
		logger:  logging.GlobalLogger.NewSubLogger("module", "chain"),
	}, nil
}

// ChainID returns the chain ID the client obtained when it was dialed.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Backend exposes the underlying ethclient.Client for collaborators that need direct RPC access.
func (c *Client) Backend() *ethclient.Client {
	return c.eth
}

// BalanceOf queries the current balance of the provided address and returns it denominated in ether.
// Returns an error if the underlying RPC call fails.
func (c *Client) BalanceOf(ctx context.Context, address common.Address) (decimal.Decimal, error) {
	wei, err := c.eth.BalanceAt(ctx, address, nil)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return WeiToEther(wei), nil
}

// PendingNonce obtains the next nonce to use for the provided address, including pending transactions.
func (c *Client) PendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	nonce, err := c.eth.PendingNonceAt(ctx, address)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return nonce, nil
}

// suggestFees derives an EIP-1559 fee pair from the endpoint: the suggested priority tip and a fee cap of
// twice the latest base fee plus the tip, so transactions survive moderate base fee growth while pending.
func (c *Client) suggestFees(ctx context.Context) (*big.Int, *big.Int, error) {
	tip, err := c.eth.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	header, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	if header.BaseFee == nil {
		// Pre-1559 chains do not report a base fee; fall back to the legacy gas price suggestion for both values.
		gasPrice, err := c.eth.SuggestGasPrice(ctx)
		if err != nil {
			return nil, nil, errors.WithStack(err)
		}
		return tip, gasPrice, nil
	}

	feeCap := new(big.Int).Mul(header.BaseFee, big.NewInt(2))
	feeCap.Add(feeCap, tip)
	return tip, feeCap, nil
}

// Close tears down the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// WeiToEther converts a wei-denominated integer amount into an ether-denominated decimal.
func WeiToEther(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).Set(wei), -18)
}
