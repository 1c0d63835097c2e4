package faucet

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/config"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BalanceReader describes the ledger query the faucet client polls while awaiting funds.
type BalanceReader interface {
	// BalanceOf returns the ether-denominated balance of the provided address.
	BalanceOf(ctx context.Context, address common.Address) (decimal.Decimal, error)
}

// Client claims devnet funds for wallets from a captcha-gated faucet and awaits their arrival on the ledger.
type Client struct {
	// config describes the faucet endpoint, captcha site parameters, funding threshold and polling cadence.
	config config.FaucetConfig

	// solver describes the external captcha-solving collaborator, if the faucet is captcha-gated.
	solver CaptchaSolver

	// balances describes the ledger query used to confirm fund arrival.
	balances BalanceReader

	// httpClient describes the underlying HTTP client used to reach the faucet.
	httpClient *http.Client

	// logger describes the Client's log object that can be used to log important events
	logger *logging.Logger
}

// NewClient creates a faucet client with the provided configuration and collaborators. A nil solver is allowed when
// the faucet is not captcha-gated.
func NewClient(cfg config.FaucetConfig, solver CaptchaSolver, balances BalanceReader) *Client {
	return &Client{
		config:     cfg,
		solver:     solver,
		balances:   balances,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.GlobalLogger.NewSubLogger("module", "faucet"),
	}
}

// claimRequest describes the faucet claim payload.
type claimRequest struct {
	Address string `json:"address"`
	Token   string `json:"token,omitempty"`
}

// Fund claims faucet funds for the provided address and blocks until its balance reaches the configured minimum or
// the claim timeout elapses. Returns an error if the claim is rejected or the funds never arrive.
func (c *Client) Fund(ctx context.Context, address common.Address) error {
	claimCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.ClaimTimeout)*time.Second)
	defer cancel()

	// Already-funded wallets (from a previous interrupted run) skip the claim entirely.
	balance, err := c.balances.BalanceOf(claimCtx, address)
	if err == nil && balance.GreaterThanOrEqual(c.config.MinimumBalance) {
		c.logger.Info("wallet ", address.Hex(), " already holds ", balance.String(), " ether, skipping claim")
		return nil
	}

	// Obtain a captcha token when the faucet is gated.
	var token string
	if c.solver != nil && c.config.SiteKey != "" {
		token, err = c.solver.Solve(claimCtx, c.config.SiteURL, c.config.SiteKey)
		if err != nil {
			return errors.Errorf("could not obtain captcha token for faucet claim: %v", err)
		}
	}

	if err = c.claim(claimCtx, address, token); err != nil {
		return err
	}

	return c.awaitFunds(claimCtx, address)
}

// claim POSTs a claim request to the faucet endpoint. Returns an error if the faucet rejects it.
func (c *Client) claim(ctx context.Context, address common.Address, token string) error {
	body, err := json.Marshal(&claimRequest{Address: address.Hex(), Token: token})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("faucet rejected claim for %s with status %d: %s", address.Hex(), resp.StatusCode, string(message))
	}

	c.logger.Info("faucet accepted claim for ", address.Hex())
	return nil
}

// awaitFunds polls the ledger until the address balance reaches the configured minimum or the context expires.
func (c *Client) awaitFunds(ctx context.Context, address common.Address) error {
	pollInterval := time.Duration(c.config.PollInterval) * time.Second
	for {
		select {
		case <-ctx.Done():
			return errors.Errorf("timed out awaiting faucet funds for %s", address.Hex())
		case <-time.After(pollInterval):
		}

		balance, err := c.balances.BalanceOf(ctx, address)
		if err != nil {
			// Transient RPC errors are tolerated while polling.
			c.logger.Warn("balance poll for ", address.Hex(), " failed", err)
			continue
		}
		if balance.GreaterThanOrEqual(c.config.MinimumBalance) {
			c.logger.Info("wallet ", address.Hex(), " funded with ", balance.String(), " ether")
			return nil
		}
	}
}
