package generator

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// solcVersionPattern matches the semantic version embedded in solc --version output.
var solcVersionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// GetSystemSolcVersion obtains the version of the solc binary available on the system path.
// Returns the parsed version, or an error if solc cannot be executed or its output cannot be parsed.
func GetSystemSolcVersion() (*semver.Version, error) {
	// Run solc --version to obtain our compiler version.
	out, err := exec.Command("solc", "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error while executing solc:\nOUTPUT:\n%s\nERROR: %s\n", string(out), err.Error())
	}
	return parseSolcVersion(string(out))
}

// parseSolcVersion extracts and parses the semantic version from solc --version output.
func parseSolcVersion(output string) (*semver.Version, error) {
	versionStr := solcVersionPattern.FindString(output)
	if versionStr == "" {
		return nil, errors.Errorf("could not parse solc version from output: %s", output)
	}

	// Parse our semver string and return it
	return semver.NewVersion(versionStr)
}

// combinedJSONOutput describes the layout of solc --combined-json abi,bin output.
type combinedJSONOutput struct {
	Contracts map[string]struct {
		ABI json.RawMessage `json:"abi"`
		Bin string          `json:"bin"`
	} `json:"contracts"`
}

// Compile writes the generated source to a scratch file and compiles it with the system solc, verifying the
// compiler satisfies the generator's minimum version first. Returns the compiled contract, or an error if the
// compiler is missing, too old, or compilation fails.
func (g *Generator) Compile(source *SourceContract) (*CompiledContract, error) {
	// Verify the system compiler version.
	version, err := GetSystemSolcVersion()
	if err != nil {
		return nil, err
	}
	minimum, err := semver.NewVersion(g.minimumSolcVersion)
	if err != nil {
		return nil, errors.Errorf("invalid minimum solc version '%s': %v", g.minimumSolcVersion, err)
	}
	if version.LessThan(minimum) {
		return nil, errors.Errorf("system solc %s is older than the minimum supported version %s", version, minimum)
	}

	// Write the source into a scratch directory for the compiler to consume.
	scratchDir, err := os.MkdirTemp("", "seismic-contract-*")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer os.RemoveAll(scratchDir)

	sourcePath := filepath.Join(scratchDir, source.Name+".sol")
	if err = os.WriteFile(sourcePath, []byte(source.Source), 0644); err != nil {
		return nil, errors.WithStack(err)
	}

	out, err := exec.Command("solc", "--combined-json", "abi,bin", sourcePath).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error while compiling %s:\nOUTPUT:\n%s\nERROR: %s\n", source.Name, string(out), err.Error())
	}

	var compiled combinedJSONOutput
	if err = json.Unmarshal(out, &compiled); err != nil {
		return nil, errors.WithStack(err)
	}

	// Locate our contract in the combined output. Keys are formatted as "<path>:<contract name>".
	for key, artifact := range compiled.Contracts {
		if !strings.HasSuffix(key, ":"+source.Name) {
			continue
		}

		parsedABI, err := parseCombinedJSONABI(artifact.ABI)
		if err != nil {
			return nil, err
		}
		bytecode, err := hex.DecodeString(artifact.Bin)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		g.logger.Debug("compiled contract ", source.Name, " with solc ", version.String())
		return &CompiledContract{
			SourceContract: *source,
			ABI:            parsedABI,
			Bytecode:       bytecode,
		}, nil
	}

	return nil, errors.Errorf("solc output did not contain contract %s", source.Name)
}

// parseCombinedJSONABI parses the ABI field of combined-json output, which newer solc emits as a JSON array and
// older solc emits as a JSON-encoded string.
func parseCombinedJSONABI(raw json.RawMessage) (abi.ABI, error) {
	abiJSON := string(raw)
	if strings.HasPrefix(abiJSON, `"`) {
		if err := json.Unmarshal(raw, &abiJSON); err != nil {
			return abi.ABI{}, errors.WithStack(err)
		}
	}

	parsedABI, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return abi.ABI{}, errors.WithStack(err)
	}
	return parsedABI, nil
}
