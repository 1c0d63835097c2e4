package interaction

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/chain"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/contracts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// stubSubmitter is a Submitter test double whose failure pattern is driven by a per-call predicate.
type stubSubmitter struct {
	// calls counts every Submit invocation, including ones drawn from the retry budget.
	calls int

	// failCall reports whether the numbered call (1-based) should fail. A nil predicate never fails.
	failCall func(call int) bool
}

func (s *stubSubmitter) Submit(ctx context.Context, function contracts.FunctionDescriptor, args []any) (*chain.Receipt, error) {
	s.calls++
	if s.failCall != nil && s.failCall(s.calls) {
		return nil, errors.Errorf("call %d to %s reverted", s.calls, function.Name)
	}
	return &chain.Receipt{
		TxHash:      common.BigToHash(common.Big1),
		BlockNumber: uint64(s.calls),
		GasUsed:     21000,
	}, nil
}

// neutralCatalog returns a catalog of no-argument functions whose names trigger neither the additive priming
// heuristics nor the risky denylist, so attempt counts in tests are exact.
func neutralCatalog() []contracts.FunctionDescriptor {
	return []contracts.FunctionDescriptor{
		{Name: "shuffleState"},
		{Name: "rotateValues"},
	}
}

// newTestDriver creates a driver with no pacing delay and the provided retry budget ratio.
func newTestDriver(submitter Submitter, retryBudgetRatio float64) *Driver {
	randomProvider := rand.New(rand.NewSource(7))
	return NewDriver(submitter, NewSelector(randomProvider), NewSynthesizer(randomProvider), 0, retryBudgetRatio)
}

// TestRun_AllSuccesses tests that a batch against an always-confirming ledger reaches its quota in exactly the
// target number of attempts, with sequential interaction IDs
func TestRun_AllSuccesses(t *testing.T) {
	submitter := &stubSubmitter{}
	driver := newTestDriver(submitter, 0.5)

	result, err := driver.Run(context.Background(), common.HexToAddress("0x1"), neutralCatalog(), 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 10, result.Successful)
	assert.Len(t, result.Results, 10)
	assert.Equal(t, 10, submitter.calls)

	for i, outcome := range result.Results {
		assert.Equal(t, i+1, outcome.InteractionID)
		assert.Equal(t, OutcomeStatusSuccess, outcome.Status)
		assert.NotEmpty(t, outcome.TxHash)
		assert.NotEmpty(t, outcome.Timestamp)
	}
}

// TestRun_AllFailures tests that a batch against an always-failing ledger stops after exactly the primary budget
// plus the retry budget, recording only the primary failures
func TestRun_AllFailures(t *testing.T) {
	submitter := &stubSubmitter{failCall: func(call int) bool { return true }}
	driver := newTestDriver(submitter, 0.5)

	result, err := driver.Run(context.Background(), common.HexToAddress("0x1"), neutralCatalog(), 10)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Successful)

	// 10 primary attempts plus floor(10 * 0.5) retry attempts.
	assert.Equal(t, 15, submitter.calls)

	// Only primary attempts are recorded; retry-budget attempts never produce outcomes.
	assert.Len(t, result.Results, 10)
	for i, outcome := range result.Results {
		assert.Equal(t, i+1, outcome.InteractionID)
		assert.Equal(t, OutcomeStatusFailed, outcome.Status)
		assert.NotEmpty(t, outcome.Error)
		assert.Empty(t, outcome.TxHash)
	}
}

// TestRun_ZeroRetryBudget tests that a zero retry budget ratio bounds the batch at the primary budget alone
func TestRun_ZeroRetryBudget(t *testing.T) {
	submitter := &stubSubmitter{failCall: func(call int) bool { return true }}
	driver := newTestDriver(submitter, 0)

	result, err := driver.Run(context.Background(), common.HexToAddress("0x1"), neutralCatalog(), 10)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 10, submitter.calls)
	assert.Len(t, result.Results, 10)
}

// TestRun_NegativeRatioClamped tests that a negative retry budget ratio behaves as zero
func TestRun_NegativeRatioClamped(t *testing.T) {
	submitter := &stubSubmitter{failCall: func(call int) bool { return true }}
	driver := newTestDriver(submitter, -1)

	_, err := driver.Run(context.Background(), common.HexToAddress("0x1"), neutralCatalog(), 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, submitter.calls)
}

// TestRun_RetriesRecoverQuota tests that early failures are compensated by the retry budget so the batch still
// reaches its quota, with failures permanently recorded alongside the successes
func TestRun_RetriesRecoverQuota(t *testing.T) {
	// The first three calls fail, everything afterwards succeeds.
	submitter := &stubSubmitter{failCall: func(call int) bool { return call <= 3 }}
	driver := newTestDriver(submitter, 0.5)

	result, err := driver.Run(context.Background(), common.HexToAddress("0x1"), neutralCatalog(), 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Successful)

	// 3 recorded failures, then 7 successes fill the primary budget, then 3 retry successes close the quota.
	assert.Len(t, result.Results, 13)
	assert.Equal(t, 13, submitter.calls)

	failed := 0
	for _, outcome := range result.Results {
		if outcome.Status == OutcomeStatusFailed {
			failed++
		}
	}
	assert.Equal(t, 3, failed)
}

// TestRun_EmptyCatalog tests that a contract without state-changing functions terminates with zero successes
func TestRun_EmptyCatalog(t *testing.T) {
	submitter := &stubSubmitter{}
	driver := newTestDriver(submitter, 0.5)

	result, err := driver.Run(context.Background(), common.HexToAddress("0x1"), nil, 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 0, result.Successful)
	assert.Empty(t, result.Results)
	assert.Equal(t, 0, submitter.calls)
}

// TestRun_ContextCancellation tests that a cancelled context stops the batch with a partial result
func TestRun_ContextCancellation(t *testing.T) {
	submitter := &stubSubmitter{}
	driver := newTestDriver(submitter, 0.5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := driver.Run(ctx, common.HexToAddress("0x1"), neutralCatalog(), 10)
	assert.Error(t, err)
	assert.NotNil(t, result)
	assert.Less(t, result.Successful, 10)
}

// TestRun_WarmupBiasesEarlyAttempts tests that the first attempts of a batch are drawn from the additive pool
// while the success ratio sits below the warm-up ceiling
func TestRun_WarmupBiasesEarlyAttempts(t *testing.T) {
	submitter := &stubSubmitter{}
	driver := newTestDriver(submitter, 0.5)

	// "addTotal" is the only additive name; "popEntry" is risky and only reachable in the closing phase.
	catalog := []contracts.FunctionDescriptor{
		{Name: "addTotal"},
		{Name: "popEntry"},
	}

	result, err := driver.Run(context.Background(), common.HexToAddress("0x1"), catalog, 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Successful)

	// Successes 1 through 3 happen at ratios 0.0, 0.1 and 0.2, all inside the warm-up phase.
	for _, outcome := range result.Results[:3] {
		assert.Equal(t, "addTotal", outcome.Function)
	}
}

// TestRun_PrimesAdditiveState tests that a catalog with additive single-uint256 and string-accepting functions gets
// primed before the batch starts counting attempts
func TestRun_PrimesAdditiveState(t *testing.T) {
	submitter := &stubSubmitter{}
	driver := newTestDriver(submitter, 0.5)

	catalog := []contracts.FunctionDescriptor{
		{Name: "setValue", Inputs: []contracts.ParameterDescriptor{uint256Parameter(t)}},
	}

	result, err := driver.Run(context.Background(), common.HexToAddress("0x1"), catalog, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, result.Successful)

	// One priming call for the baseline value, then five counted attempts.
	assert.Equal(t, 6, submitter.calls)
	assert.Len(t, result.Results, 5)
}
