package interaction

import (
	"math/rand"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/contracts"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/utils/randomutils"
	"github.com/pkg/errors"
)

// Phase ratio boundaries. Batches bias early attempts toward additive operations to bank successes before the
// budget is spent on riskier calls, then widen the pool as the success ratio climbs.
const (
	// warmupPhaseCeiling describes the success ratio below which the warm-up pool is preferred.
	warmupPhaseCeiling = 0.3

	// steadyPhaseCeiling describes the success ratio below which the safe pool is preferred. At or above it, the
	// full catalog, including functions flagged risky, is used.
	steadyPhaseCeiling = 0.7
)

// Selector picks the next function to call from a contract's catalog, applying a phase-dependent pool policy
// keyed by the batch's current success ratio. Within the chosen pool, selection is uniform.
type Selector struct {
	// randomProvider offers a source of random data.
	randomProvider *rand.Rand
}

// NewSelector creates a Selector backed by the provided random provider.
func NewSelector(randomProvider *rand.Rand) *Selector {
	return &Selector{
		randomProvider: randomProvider,
	}
}

// Select picks one function from the provided catalog, guided by the batch's progress. The pool narrows by phase:
// below the warm-up ceiling, additive functions are preferred (falling back to the safe pool); below the steady
// ceiling, the safe pool is used; at or above it, the full catalog is used. Returns an error if the catalog is empty.
func (s *Selector) Select(allWriteFunctions []contracts.FunctionDescriptor, safeFunctions []contracts.FunctionDescriptor, successCount int, targetCount int) (*contracts.FunctionDescriptor, error) {
	if len(allWriteFunctions) == 0 {
		return nil, errors.New("cannot select a function to call as the contract exposes no state-changing functions")
	}

	pool := s.pool(allWriteFunctions, safeFunctions, successCount, targetCount)

	// Select uniformly within the pool.
	chooser := randomutils.NewWeightedRandomChooser[contracts.FunctionDescriptor](s.randomProvider)
	for _, function := range pool {
		chooser.AddChoices(randomutils.NewWeightedRandomChoice(function, 1))
	}
	return chooser.Choose()
}

// pool resolves the candidate pool for the current phase of the batch.
func (s *Selector) pool(allWriteFunctions []contracts.FunctionDescriptor, safeFunctions []contracts.FunctionDescriptor, successCount int, targetCount int) []contracts.FunctionDescriptor {
	ratio := float64(successCount) / float64(targetCount)

	// Warm-up phase: prefer additive functions, falling back to the safe pool.
	if ratio < warmupPhaseCeiling {
		if additive := contracts.AdditiveFunctions(allWriteFunctions); len(additive) > 0 {
			return additive
		}
		if len(safeFunctions) > 0 {
			return safeFunctions
		}
		return allWriteFunctions
	}

	// Steady phase: use the safe pool while it is non-empty.
	if ratio < steadyPhaseCeiling {
		if len(safeFunctions) > 0 {
			return safeFunctions
		}
		return allWriteFunctions
	}

	// Closing phase: the full catalog, including functions flagged risky.
	return allWriteFunctions
}
