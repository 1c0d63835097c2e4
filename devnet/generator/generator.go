package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"text/template"

	"github.com/Usernameusernamenotavailbleisnot/seismic-devnet/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// SourceContract describes a randomly generated, not-yet-compiled Solidity contract.
type SourceContract struct {
	// Name describes the randomized contract name.
	Name string

	// Source describes the full Solidity source of the contract.
	Source string
}

// CompiledContract describes a generated contract after compilation.
type CompiledContract struct {
	// SourceContract describes the generated source the contract was compiled from.
	SourceContract

	// ABI describes the compiled contract's interface.
	ABI abi.ABI

	// Bytecode describes the compiled contract's init bytecode.
	Bytecode []byte
}

// templateParams describes the values substituted into a contract template.
type templateParams struct {
	Name     string
	Baseline int
}

// Generator produces randomly parameterized contracts from the built-in templates and compiles them with the
// system solc compiler.
type Generator struct {
	// randomProvider offers a source of random data.
	randomProvider *rand.Rand

	// minimumSolcVersion describes the minimum accepted system solc version, as a semver constraint string.
	minimumSolcVersion string

	// logger describes the Generator's log object that can be used to log important events
	logger *logging.Logger
}

// NewGenerator creates a Generator backed by the provided random provider which accepts system compilers at or
// above the provided minimum version.
func NewGenerator(randomProvider *rand.Rand, minimumSolcVersion string) *Generator {
	return &Generator{
		randomProvider:     randomProvider,
		minimumSolcVersion: minimumSolcVersion,
		logger:             logging.GlobalLogger.NewSubLogger("module", "generator"),
	}
}

// Generate picks a random template and renders it with a randomized contract name and baseline constant.
// Returns the generated source contract, or an error if rendering fails.
func (g *Generator) Generate() (*SourceContract, error) {
	chosen := contractTemplates[g.randomProvider.Intn(len(contractTemplates))]

	// Randomize the contract name so repeated deployments do not collide in explorers or local artifacts.
	name := fmt.Sprintf("%s%04X", chosen.BaseName, g.randomProvider.Intn(0x10000))
	params := templateParams{
		Name:     name,
		Baseline: 50 + g.randomProvider.Intn(101),
	}

	tmpl, err := template.New(chosen.BaseName).Parse(chosen.Source)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var rendered strings.Builder
	if err = tmpl.Execute(&rendered, params); err != nil {
		return nil, errors.WithStack(err)
	}

	g.logger.Debug("generated contract ", name, " from template ", chosen.BaseName)
	return &SourceContract{
		Name:   name,
		Source: rendered.String(),
	}, nil
}
