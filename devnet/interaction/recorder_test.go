package interaction

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

// sampleBatchResult returns a small batch result with one success and one failure.
func sampleBatchResult() *BatchResult {
	return &BatchResult{
		Total:      2,
		Successful: 1,
		Results: []*Outcome{
			{
				InteractionID: 1,
				Function:      "addAmount",
				Arguments:     []string{"42"},
				Status:        OutcomeStatusSuccess,
				TxHash:        "0x01",
				BlockNumber:   7,
				GasUsed:       "21000",
				Timestamp:     newOutcomeTimestamp(),
			},
			{
				InteractionID: 2,
				Function:      "popEntry",
				Arguments:     []string{},
				Status:        OutcomeStatusFailed,
				Error:         "reverted",
				Timestamp:     newOutcomeTimestamp(),
			},
		},
	}
}

// TestPersist_WritesReadableJSON tests that a persisted batch result round-trips through its JSON file
func TestPersist_WritesReadableJSON(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "results")
	recorder := NewRecorder(directory)

	walletAddress := common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	contractAddress := common.HexToAddress("0x00000000000000000000000000000000cafebabe")

	path, err := recorder.Persist(sampleBatchResult(), walletAddress, contractAddress)
	assert.NoError(t, err)

	b, err := os.ReadFile(path)
	assert.NoError(t, err)

	var restored BatchResult
	assert.NoError(t, json.Unmarshal(b, &restored))
	assert.Equal(t, 2, restored.Total)
	assert.Equal(t, 1, restored.Successful)
	assert.Len(t, restored.Results, 2)
	assert.Equal(t, OutcomeStatusSuccess, restored.Results[0].Status)
	assert.Equal(t, "reverted", restored.Results[1].Error)
}

// TestPersist_FileNameCarriesAddressPrefixes tests that result file names are keyed by address prefixes
func TestPersist_FileNameCarriesAddressPrefixes(t *testing.T) {
	directory := t.TempDir()
	recorder := NewRecorder(directory)

	walletAddress := common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	contractAddress := common.HexToAddress("0x00000000000000000000000000000000cafebabe")

	path, err := recorder.Persist(sampleBatchResult(), walletAddress, contractAddress)
	assert.NoError(t, err)

	fileName := filepath.Base(path)
	assert.True(t, strings.HasPrefix(fileName, "interactions_"), "got %q", fileName)
	assert.Contains(t, fileName, addressPrefix(walletAddress))
	assert.Contains(t, fileName, addressPrefix(contractAddress))
	assert.True(t, strings.HasSuffix(fileName, ".json"))
}

// TestPersist_NeverOverwrites tests that two persists within the same second land in distinct files
func TestPersist_NeverOverwrites(t *testing.T) {
	directory := t.TempDir()
	recorder := NewRecorder(directory)

	walletAddress := common.HexToAddress("0x1")
	contractAddress := common.HexToAddress("0x2")

	first, err := recorder.Persist(sampleBatchResult(), walletAddress, contractAddress)
	assert.NoError(t, err)
	second, err := recorder.Persist(sampleBatchResult(), walletAddress, contractAddress)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)
}

// TestAddressPrefix tests that the file name prefix is the first eight hex characters of the address
func TestAddressPrefix(t *testing.T) {
	address := common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	prefix := addressPrefix(address)
	assert.Len(t, prefix, 8)
	assert.Equal(t, "00000000", prefix)
}
