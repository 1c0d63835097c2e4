package devnet

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/config"
	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/devnet/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

// testProjectConfig returns a valid configuration writing all artifacts under a temporary directory.
func testProjectConfig(t *testing.T) *config.ProjectConfig {
	projectConfig := config.GetDefaultProjectConfig()
	directory := t.TempDir()
	projectConfig.Wallets.StorePath = filepath.Join(directory, "wallets.db")
	projectConfig.Interaction.ResultsDirectory = filepath.Join(directory, "results")
	return projectConfig
}

// TestNewCampaign_ValidatesConfig tests that campaign creation rejects invalid configurations
func TestNewCampaign_ValidatesConfig(t *testing.T) {
	projectConfig := testProjectConfig(t)
	projectConfig.Wallets.Count = 0

	campaign, err := NewCampaign(projectConfig)
	assert.Error(t, err)
	assert.Nil(t, campaign)
}

// TestNewCampaign_ValidConfig tests that a valid configuration produces a campaign
func TestNewCampaign_ValidConfig(t *testing.T) {
	campaign, err := NewCampaign(testProjectConfig(t))
	assert.NoError(t, err)
	assert.NotNil(t, campaign)
}

// TestRestoreContract_RoundTrip tests that a deployed contract survives persistence through a wallet record
func TestRestoreContract_RoundTrip(t *testing.T) {
	abiJSON := `[
		{"type": "function", "name": "setValue", "inputs": [{"name": "value", "type": "uint256"}], "outputs": [], "stateMutability": "nonpayable"},
		{"type": "function", "name": "getTotal", "inputs": [], "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view"}
	]`
	parsedABI, err := abi.JSON(strings.NewReader(abiJSON))
	assert.NoError(t, err)

	// Serialize the interface the way the campaign persists it.
	serialized, err := abiToJSON(&parsedABI)
	assert.NoError(t, err)

	address := common.HexToAddress("0x00000000000000000000000000000000cafebabe")
	record := &wallet.Record{
		ContractName:    "Counter1A2B",
		ContractAddress: address.Hex(),
		ContractABI:     serialized,
	}

	restored, err := restoreContract(record)
	assert.NoError(t, err)
	assert.Equal(t, "Counter1A2B", restored.Name)
	assert.Equal(t, address, restored.Address)
	assert.Contains(t, restored.ABI.Methods, "setValue")
	assert.Contains(t, restored.ABI.Methods, "getTotal")

	// The restored catalog still distinguishes state-changing functions from views.
	catalog := restored.WriteFunctions()
	assert.Len(t, catalog, 1)
	assert.Equal(t, "setValue", catalog[0].Name)
}

// TestRestoreContract_MalformedRecord tests that unparseable persisted state is rejected
func TestRestoreContract_MalformedRecord(t *testing.T) {
	record := &wallet.Record{
		ContractName:    "Broken",
		ContractAddress: "0xnothex",
		ContractABI:     `[]`,
	}
	_, err := restoreContract(record)
	assert.Error(t, err)

	record = &wallet.Record{
		ContractName:    "Broken",
		ContractAddress: common.HexToAddress("0x1").Hex(),
		ContractABI:     `not json`,
	}
	_, err = restoreContract(record)
	assert.Error(t, err)
}
