package interaction

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/chain"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/contracts"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/ethereum/go-ethereum/common"
)

// Submitter describes a collaborator which sends a named function call with arguments against a deployed contract
// instance and awaits one confirmation. Either a confirmed receipt is returned, or an error; no pending state is
// exposed.
type Submitter interface {
	// Submit sends a call to the provided function with the provided arguments. Returns a confirmed receipt, or an
	// error if the submission failed for any reason (invalid arguments, revert, RPC failure, timeout).
	Submit(ctx context.Context, function contracts.FunctionDescriptor, args []any) (*chain.Receipt, error)
}

// progressState tracks the counters of a running interaction batch. It is local to a single Run invocation and is
// never shared across tasks or persisted.
type progressState struct {
	// successCount describes how many attempts have obtained a confirmation so far.
	successCount int

	// attemptIndex describes how many primary attempts have been consumed so far. It is bounded by the batch's
	// target count; attempts past it draw from the retry budget instead.
	attemptIndex int

	// retriesLeft describes the remaining extra-attempt budget available once primary attempts are exhausted.
	retriesLeft int
}

// Driver orchestrates an interaction batch against a single deployed contract: it primes contract state, then
// repeatedly selects a function, synthesizes its arguments, submits the call, records the outcome, and decides
// whether to continue, retry, or stop, against a target success count and a bounded extra-retry budget.
type Driver struct {
	// submitter describes the collaborator calls are submitted through.
	submitter Submitter

	// selector describes the policy used to pick the next function to call.
	selector *Selector

	// synthesizer describes the provider used to produce call arguments.
	synthesizer *Synthesizer

	// interAttemptDelay describes the fixed delay awaited after every attempt, success or failure, to pace load
	// against the remote ledger.
	interAttemptDelay time.Duration

	// retryBudgetRatio describes the extra-attempt budget as a fraction of the target count. The batch may issue
	// up to floor(targetCount * retryBudgetRatio) attempts beyond its primary budget.
	retryBudgetRatio float64

	// logger describes the Driver's log object that can be used to log important events
	logger *logging.Logger
}

// NewDriver creates a Driver with the provided collaborators, inter-attempt delay and retry budget ratio.
func NewDriver(submitter Submitter, selector *Selector, synthesizer *Synthesizer, interAttemptDelay time.Duration, retryBudgetRatio float64) *Driver {
	if retryBudgetRatio < 0 {
		retryBudgetRatio = 0
	}
	return &Driver{
		submitter:         submitter,
		selector:          selector,
		synthesizer:       synthesizer,
		interAttemptDelay: interAttemptDelay,
		retryBudgetRatio:  retryBudgetRatio,
		logger:            logging.GlobalLogger.NewSubLogger("module", "interaction"),
	}
}

// Run executes an interaction batch against the provided catalog until the target success count is reached or both
// the primary attempt budget and the retry budget are exhausted. An empty catalog terminates immediately with zero
// successes. Run always returns a well-formed batch result; the returned error is non-nil only for context
// cancellation or a malformed catalog.
func (d *Driver) Run(ctx context.Context, caller common.Address, catalog []contracts.FunctionDescriptor, targetCount int) (*BatchResult, error) {
	result := &BatchResult{
		Total:   targetCount,
		Results: make([]*Outcome, 0, targetCount),
	}

	// With no callable functions there is nothing to do; this is a terminal condition, not an error.
	if len(catalog) == 0 {
		d.logger.Warn("contract exposes no state-changing functions, terminating batch with zero successes")
		return result, nil
	}

	// Best-effort priming of contract state. Failures are logged and swallowed; the contract may already be
	// initialized, or initialization-shaped functions may not exist.
	d.initialize(ctx, caller, catalog)

	safeFunctions := contracts.SafeFunctions(catalog)
	progress := progressState{
		retriesLeft: int(float64(targetCount) * d.retryBudgetRatio),
	}

	for progress.successCount < targetCount && (progress.attemptIndex < targetCount || progress.retriesLeft > 0) {
		// Pick the next function and synthesize its arguments.
		function, err := d.selector.Select(catalog, safeFunctions, progress.successCount, targetCount)
		if err != nil {
			// A catalog that cannot produce a selection is a programming error; propagate it for the caller to
			// decide wallet-level skip behavior.
			result.Successful = progress.successCount
			return result, err
		}
		args := d.synthesizer.Arguments(*function, caller)

		receipt, err := d.submitter.Submit(ctx, *function, args)
		if err == nil {
			result.Results = append(result.Results, &Outcome{
				InteractionID: progress.attemptIndex + 1,
				Function:      function.Name,
				Arguments:     formatArguments(args),
				Status:        OutcomeStatusSuccess,
				TxHash:        receipt.TxHash.Hex(),
				BlockNumber:   receipt.BlockNumber,
				GasUsed:       fmt.Sprintf("%d", receipt.GasUsed),
				Timestamp:     newOutcomeTimestamp(),
			})
			progress.successCount++
			progress.attemptIndex++
			d.logger.Info("interaction ", progress.attemptIndex, "/", targetCount, " succeeded: ", function.Name)
		} else if progress.attemptIndex < targetCount {
			// A failed primary attempt consumes attempt budget and is permanently logged; it is never silently
			// retried in place.
			result.Results = append(result.Results, &Outcome{
				InteractionID: progress.attemptIndex + 1,
				Function:      function.Name,
				Arguments:     formatArguments(args),
				Status:        OutcomeStatusFailed,
				Error:         err.Error(),
				Timestamp:     newOutcomeTimestamp(),
			})
			progress.attemptIndex++
			d.logger.Warn("interaction ", progress.attemptIndex, "/", targetCount, " failed: ", function.Name, err)
		} else {
			// A failed attempt past the primary budget draws down the retry budget without consuming a new
			// interaction ID or producing a logged outcome.
			progress.retriesLeft--
			d.logger.Warn("retry attempt failed: ", function.Name, ", ", progress.retriesLeft, " retries left", err)
		}

		// Pace load against the remote ledger after every iteration, success or failure.
		if err = d.pause(ctx); err != nil {
			result.Successful = progress.successCount
			return result, err
		}
	}

	result.Successful = progress.successCount
	return result, nil
}

// initialize primes contract storage so later randomly-selected functions that assume non-empty collections do not
// uniformly fail: it sets a baseline numeric value through the first additive single-uint256 function, and pushes a
// handful of well-known string keys through the first string-accepting additive function. All calls are best-effort.
func (d *Driver) initialize(ctx context.Context, caller common.Address, catalog []contracts.FunctionDescriptor) {
	// Set a baseline numeric value.
	for _, function := range catalog {
		if !contracts.IsAdditiveName(function.Name) {
			continue
		}
		if len(function.Inputs) != 1 || function.Inputs[0].Type != contracts.ParameterTypeUint256 {
			continue
		}
		if _, err := d.submitter.Submit(ctx, function, []any{big.NewInt(100)}); err != nil {
			d.logger.Warn("failed to prime baseline value via ", function.Name, err)
		}
		break
	}

	// Push a handful of well-known string keys.
	for _, function := range catalog {
		if !contracts.IsAdditiveName(function.Name) || !hasStringInput(function) {
			continue
		}
		for i := 0; i < 3; i++ {
			args := make([]any, len(function.Inputs))
			keyUsed := false
			for j, input := range function.Inputs {
				// The first string parameter carries the well-known key; remaining parameters are synthesized.
				if input.Type == contracts.ParameterTypeString && !keyUsed {
					args[j] = fmt.Sprintf("init_key_%d", i)
					keyUsed = true
					continue
				}
				args[j] = d.synthesizer.Synthesize(input, function.Name, caller)
			}
			if _, err := d.submitter.Submit(ctx, function, args); err != nil {
				d.logger.Warn("failed to prime key via ", function.Name, err)
			}
		}
		break
	}
}

// pause awaits the configured inter-attempt delay, returning early with the context's error if it is cancelled.
func (d *Driver) pause(ctx context.Context) error {
	if d.interAttemptDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.interAttemptDelay):
		return nil
	}
}

// hasStringInput reports whether the function declares at least one string parameter.
func hasStringInput(function contracts.FunctionDescriptor) bool {
	for _, input := range function.Inputs {
		if input.Type == contracts.ParameterTypeString {
			return true
		}
	}
	return false
}

// formatArguments renders synthesized argument values for outcome records.
func formatArguments(args []any) []string {
	rendered := make([]string, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case common.Address:
			rendered[i] = v.Hex()
		default:
			rendered[i] = fmt.Sprintf("%v", v)
		}
	}
	return rendered
}
