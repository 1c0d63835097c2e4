package contracts

import (
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/maps"
)

// ParameterType describes the coarse classification of a function parameter which drives argument synthesis.
type ParameterType uint8

const (
	// ParameterTypeUint256 describes a 256-bit unsigned integer parameter.
	ParameterTypeUint256 ParameterType = iota

	// ParameterTypeAddress describes an address parameter.
	ParameterTypeAddress

	// ParameterTypeString describes a dynamic string parameter.
	ParameterTypeString

	// ParameterTypeOther describes any parameter type without a dedicated synthesis rule.
	ParameterTypeOther
)

// ParameterDescriptor describes a single function parameter sourced from a contract's ABI.
type ParameterDescriptor struct {
	// Type describes the coarse parameter classification used by argument synthesis.
	Type ParameterType

	// ABIType describes the underlying go-ethereum ABI type, retained so neutral default values can be produced
	// for parameter types without a dedicated synthesis rule.
	ABIType abi.Type
}

// FunctionDescriptor describes a single state-changing function exposed by a deployed contract. Descriptors are
// built once from the contract's ABI and are immutable afterwards.
type FunctionDescriptor struct {
	// Name describes the function's name.
	Name string

	// Inputs describes the ordered parameters of the function.
	Inputs []ParameterDescriptor

	// Payable describes whether the function can receive value.
	Payable bool

	// Method describes the underlying ABI method the descriptor was built from.
	Method abi.Method
}

// DeployedContract describes a contract instance deployed on the devnet, pairing its address with its interface.
type DeployedContract struct {
	// Name describes the name of the contract.
	Name string

	// Address describes the address the contract instance is deployed at.
	Address common.Address

	// ABI describes the contract's interface.
	ABI abi.ABI
}

// NewDeployedContract returns a new DeployedContract instance with the provided information.
func NewDeployedContract(name string, address common.Address, contractABI abi.ABI) *DeployedContract {
	return &DeployedContract{
		name,
		address,
		contractABI,
	}
}

// WriteFunctions builds the catalog of state-changing functions from the contract's ABI, in deterministic
// (name-sorted) order. View and pure methods are excluded.
func (c *DeployedContract) WriteFunctions() []FunctionDescriptor {
	// Iterate methods in a deterministic order, as ABI methods are stored in a map.
	names := maps.Keys(c.ABI.Methods)
	sort.Strings(names)

	catalog := make([]FunctionDescriptor, 0, len(names))
	for _, name := range names {
		method := c.ABI.Methods[name]
		if method.StateMutability != "nonpayable" && method.StateMutability != "payable" {
			continue
		}

		inputs := make([]ParameterDescriptor, 0, len(method.Inputs))
		for _, input := range method.Inputs {
			inputs = append(inputs, ParameterDescriptor{
				Type:    classifyParameter(input.Type),
				ABIType: input.Type,
			})
		}

		catalog = append(catalog, FunctionDescriptor{
			Name:    method.Name,
			Inputs:  inputs,
			Payable: method.StateMutability == "payable",
			Method:  method,
		})
	}
	return catalog
}

// classifyParameter maps an ABI type onto the coarse classification used by argument synthesis.
func classifyParameter(t abi.Type) ParameterType {
	switch {
	case t.T == abi.UintTy && t.Size == 256:
		return ParameterTypeUint256
	case t.T == abi.AddressTy:
		return ParameterTypeAddress
	case t.T == abi.StringTy:
		return ParameterTypeString
	default:
		return ParameterTypeOther
	}
}
