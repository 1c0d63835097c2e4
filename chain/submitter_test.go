package chain

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestSubmissionError tests the error message and unwrapping of per-attempt submission failures
func TestSubmissionError(t *testing.T) {
	cause := errors.New("execution reverted")
	err := NewSubmissionError("divideShare", cause)

	assert.Contains(t, err.Error(), "divideShare")
	assert.Contains(t, err.Error(), "execution reverted")
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

// TestWeiToEther tests the wei to ether decimal conversion
func TestWeiToEther(t *testing.T) {
	oneEther, _ := new(big.Int).SetString("1000000000000000000", 10)
	assert.Equal(t, "1", WeiToEther(oneEther).String())

	fiveCentiEther, _ := new(big.Int).SetString("50000000000000000", 10)
	assert.Equal(t, "0.05", WeiToEther(fiveCentiEther).String())

	assert.Equal(t, "0", WeiToEther(big.NewInt(0)).String())

	oneWei := WeiToEther(big.NewInt(1))
	assert.Equal(t, "0.000000000000000001", oneWei.String())
}

// TestWeiToEther_DoesNotAliasInput tests that conversion does not mutate or alias the provided integer
func TestWeiToEther_DoesNotAliasInput(t *testing.T) {
	wei := big.NewInt(123)
	_ = WeiToEther(wei)
	assert.Equal(t, int64(123), wei.Int64())
}
