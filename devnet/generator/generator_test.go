package generator

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenerate_RendersTemplate tests that generated sources are fully rendered with a randomized name
func TestGenerate_RendersTemplate(t *testing.T) {
	generator := NewGenerator(rand.New(rand.NewSource(1)), "0.8.0")

	source, err := generator.Generate()
	assert.NoError(t, err)
	assert.NotEmpty(t, source.Name)
	assert.Contains(t, source.Source, "contract "+source.Name)
	assert.Contains(t, source.Source, "pragma solidity ^0.8.0;")
	assert.NotContains(t, source.Source, "{{", "Template placeholders should all be substituted")
}

// TestGenerate_NameCarriesTemplatePrefix tests that generated names are prefixed by their template's base name
func TestGenerate_NameCarriesTemplatePrefix(t *testing.T) {
	generator := NewGenerator(rand.New(rand.NewSource(3)), "0.8.0")

	baseNames := make([]string, 0, len(contractTemplates))
	for _, template := range contractTemplates {
		baseNames = append(baseNames, template.BaseName)
	}

	for i := 0; i < 20; i++ {
		source, err := generator.Generate()
		assert.NoError(t, err)

		matched := false
		for _, baseName := range baseNames {
			if strings.HasPrefix(source.Name, baseName) {
				matched = true
				// The suffix is a four-digit hex discriminator.
				assert.Len(t, source.Name, len(baseName)+4)
			}
		}
		assert.True(t, matched, "name %q does not carry a template prefix", source.Name)
	}
}

// TestGenerate_CoversAllTemplates tests that repeated generation draws from every built-in template
func TestGenerate_CoversAllTemplates(t *testing.T) {
	generator := NewGenerator(rand.New(rand.NewSource(9)), "0.8.0")

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		source, err := generator.Generate()
		assert.NoError(t, err)
		for _, template := range contractTemplates {
			if strings.HasPrefix(source.Name, template.BaseName) {
				seen[template.BaseName] = true
			}
		}
	}
	assert.Len(t, seen, len(contractTemplates))
}

// TestParseSolcVersion tests that versions are extracted from typical solc --version output
func TestParseSolcVersion(t *testing.T) {
	output := "solc, the solidity compiler commandline interface\nVersion: 0.8.19+commit.7dd6d404.Linux.g++\n"
	version, err := parseSolcVersion(output)
	assert.NoError(t, err)
	assert.Equal(t, "0.8.19", version.String())
}

// TestParseSolcVersion_Invalid tests that output without a version is rejected
func TestParseSolcVersion_Invalid(t *testing.T) {
	_, err := parseSolcVersion("no version here")
	assert.Error(t, err)
}

// TestParseCombinedJSONABI tests that both the array and JSON-encoded-string ABI layouts are accepted
func TestParseCombinedJSONABI(t *testing.T) {
	abiJSON := `[{"type": "function", "name": "setValue", "inputs": [{"name": "value", "type": "uint256"}], "outputs": [], "stateMutability": "nonpayable"}]`

	// Newer solc emits the ABI as a JSON array.
	parsed, err := parseCombinedJSONABI(json.RawMessage(abiJSON))
	assert.NoError(t, err)
	assert.Contains(t, parsed.Methods, "setValue")

	// Older solc emits the ABI as a JSON-encoded string.
	quoted, err := json.Marshal(abiJSON)
	assert.NoError(t, err)
	parsed, err = parseCombinedJSONABI(json.RawMessage(quoted))
	assert.NoError(t, err)
	assert.Contains(t, parsed.Methods, "setValue")
}

// TestTemplates_ExposeHeuristicSurface tests that every template exposes at least one additive and one risky
// function name for the interaction phase policy to work against
func TestTemplates_ExposeHeuristicSurface(t *testing.T) {
	additiveFragments := []string{"set", "init", "add", "increment"}
	riskyFragments := []string{"power", "decrement", "pop", "divide"}

	for _, template := range contractTemplates {
		lowered := strings.ToLower(template.Source)

		hasAdditive := false
		for _, fragment := range additiveFragments {
			if strings.Contains(lowered, "function "+fragment) {
				hasAdditive = true
			}
		}
		assert.True(t, hasAdditive, "template %s has no additive function", template.BaseName)

		hasRisky := false
		for _, fragment := range riskyFragments {
			if strings.Contains(lowered, fragment) {
				hasRisky = true
			}
		}
		assert.True(t, hasRisky, "template %s has no risky function", template.BaseName)
	}
}
