package interaction

import (
	"math/rand"
	"testing"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/contracts"
	"github.com/stretchr/testify/assert"
)

// selectorTestCatalog returns a catalog with one additive, one neutral and one risky function.
func selectorTestCatalog() []contracts.FunctionDescriptor {
	return []contracts.FunctionDescriptor{
		{Name: "addAmount"},
		{Name: "transferOwnership"},
		{Name: "powerBoost"},
	}
}

// TestSelect_EmptyCatalog tests that selecting from an empty catalog returns an error
func TestSelect_EmptyCatalog(t *testing.T) {
	selector := NewSelector(rand.New(rand.NewSource(1)))
	function, err := selector.Select(nil, nil, 0, 10)
	assert.Error(t, err)
	assert.Nil(t, function)
}

// TestSelect_WarmupPrefersAdditive tests that below the warm-up ceiling only additive functions are selected
func TestSelect_WarmupPrefersAdditive(t *testing.T) {
	catalog := selectorTestCatalog()
	safe := contracts.SafeFunctions(catalog)
	selector := NewSelector(rand.New(rand.NewSource(1)))

	// A success ratio of 0/10 and 2/10 both sit below the warm-up ceiling of 0.3.
	for _, successCount := range []int{0, 2} {
		for i := 0; i < 50; i++ {
			function, err := selector.Select(catalog, safe, successCount, 10)
			assert.NoError(t, err)
			assert.Equal(t, "addAmount", function.Name)
		}
	}
}

// TestSelect_WarmupFallsBackToSafe tests that a catalog without additive functions falls back to the safe pool
// during warm-up
func TestSelect_WarmupFallsBackToSafe(t *testing.T) {
	catalog := []contracts.FunctionDescriptor{
		{Name: "transferOwnership"},
		{Name: "powerBoost"},
	}
	safe := contracts.SafeFunctions(catalog)
	selector := NewSelector(rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		function, err := selector.Select(catalog, safe, 0, 10)
		assert.NoError(t, err)
		assert.Equal(t, "transferOwnership", function.Name)
	}
}

// TestSelect_SteadyExcludesRisky tests that between the phase ceilings only safe functions are selected
func TestSelect_SteadyExcludesRisky(t *testing.T) {
	catalog := selectorTestCatalog()
	safe := contracts.SafeFunctions(catalog)
	selector := NewSelector(rand.New(rand.NewSource(1)))

	// A success ratio of 5/10 sits in the steady phase.
	for i := 0; i < 100; i++ {
		function, err := selector.Select(catalog, safe, 5, 10)
		assert.NoError(t, err)
		assert.False(t, contracts.IsRiskyName(function.Name))
	}
}

// TestSelect_ClosingUsesFullCatalog tests that at or above the steady ceiling risky functions become selectable
func TestSelect_ClosingUsesFullCatalog(t *testing.T) {
	catalog := selectorTestCatalog()
	safe := contracts.SafeFunctions(catalog)
	selector := NewSelector(rand.New(rand.NewSource(1)))

	// A success ratio of 8/10 sits in the closing phase, where the full catalog is in play.
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		function, err := selector.Select(catalog, safe, 8, 10)
		assert.NoError(t, err)
		seen[function.Name] = true
	}
	assert.True(t, seen["powerBoost"], "Risky functions should be selectable in the closing phase")
	assert.True(t, seen["addAmount"])
	assert.True(t, seen["transferOwnership"])
}

// TestSelect_AllRiskyCatalog tests that a catalog made entirely of risky functions is still selectable in every phase
func TestSelect_AllRiskyCatalog(t *testing.T) {
	catalog := []contracts.FunctionDescriptor{
		{Name: "powerBoost"},
		{Name: "divideShare"},
	}
	safe := contracts.SafeFunctions(catalog)
	assert.Empty(t, safe)

	selector := NewSelector(rand.New(rand.NewSource(1)))
	for _, successCount := range []int{0, 5, 8} {
		function, err := selector.Select(catalog, safe, successCount, 10)
		assert.NoError(t, err)
		assert.NotNil(t, function)
	}
}
