package contracts

import "strings"

// riskyNameFragments describes function name substrings known to fail often against unknown contract state:
// repeated exponentiation overflows, decrements underflow, pops fail on empty collections, divides hit zero.
var riskyNameFragments = []string{"power", "decrement", "pop", "divide"}

// additiveNameFragments describes function name substrings indicating safe, additive operations that are good
// candidates for early attempts against freshly-deployed contract state.
var additiveNameFragments = []string{"set", "init", "add", "increment"}

// nameContainsAny reports whether the lower-cased function name contains any of the provided fragments.
func nameContainsAny(name string, fragments []string) bool {
	lowered := strings.ToLower(name)
	for _, fragment := range fragments {
		if strings.Contains(lowered, fragment) {
			return true
		}
	}
	return false
}

// IsRiskyName reports whether a function name matches the denylist of fragments known to fail often.
func IsRiskyName(name string) bool {
	return nameContainsAny(name, riskyNameFragments)
}

// IsAdditiveName reports whether a function name indicates a safe, additive operation preferred during the
// warm-up phase of an interaction batch.
func IsAdditiveName(name string) bool {
	return nameContainsAny(name, additiveNameFragments)
}

// SafeFunctions filters the provided catalog down to functions whose names do not match the risky denylist.
func SafeFunctions(catalog []FunctionDescriptor) []FunctionDescriptor {
	safe := make([]FunctionDescriptor, 0, len(catalog))
	for _, function := range catalog {
		if !IsRiskyName(function.Name) {
			safe = append(safe, function)
		}
	}
	return safe
}

// AdditiveFunctions filters the provided catalog down to functions whose names indicate additive operations.
func AdditiveFunctions(catalog []FunctionDescriptor) []FunctionDescriptor {
	additive := make([]FunctionDescriptor, 0, len(catalog))
	for _, function := range catalog {
		if IsAdditiveName(function.Name) {
			additive = append(additive, function)
		}
	}
	return additive
}
