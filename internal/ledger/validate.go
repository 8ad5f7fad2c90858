package ledger

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Result carries the outcome of validating a draft. Errors maps field name
// to a human-readable message; IsValid is true iff Errors is empty.
type Result struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

// ValidateInvestment checks a draft against the domain rules. Every rule is
// evaluated independently so a caller sees all failing fields at once, not
// just the first. The function is pure: it never touches the store and knows
// nothing about transactions or balances.
func ValidateInvestment(draft Draft) Result {
	errs := make(map[string]string)

	if utf8.RuneCountInString(strings.TrimSpace(draft.Name)) < 2 {
		errs["name"] = "Investment name must be at least 2 characters long"
	}

	if !draft.Type.Valid() {
		errs["type"] = "Invalid investment type"
	}

	if draft.InitialBalance == nil || math.IsNaN(*draft.InitialBalance) || *draft.InitialBalance < 0 {
		errs["initialBalance"] = "Initial balance must be a non-negative number"
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}
