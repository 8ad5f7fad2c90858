package ledger

import (
	"math"
	"testing"
)

func TestValidateInvestment(t *testing.T) {
	t.Run("valid_draft", func(t *testing.T) {
		result := ValidateInvestment(Draft{
			Name:           "Retirement Fund",
			Type:           TypeETF,
			InitialBalance: floatPtr(1000),
		})
		if !result.IsValid {
			t.Fatalf("expected valid draft, got errors %v", result.Errors)
		}
		if len(result.Errors) != 0 {
			t.Errorf("expected empty error map, got %v", result.Errors)
		}
	})

	t.Run("empty_draft_reports_every_field", func(t *testing.T) {
		result := ValidateInvestment(Draft{})
		if result.IsValid {
			t.Fatal("expected empty draft to be invalid")
		}
		for _, field := range []string{"name", "type", "initialBalance"} {
			if _, ok := result.Errors[field]; !ok {
				t.Errorf("expected error for field %q, got %v", field, result.Errors)
			}
		}
	})

	t.Run("name_rules", func(t *testing.T) {
		cases := []struct {
			name  string
			value string
			valid bool
		}{
			{"too_short", "A", false},
			{"whitespace_only", "   ", false},
			{"whitespace_padding_ignored", "  B  ", false},
			{"two_chars", "AB", true},
			{"multibyte_runes_counted", "日本", true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				result := ValidateInvestment(Draft{
					Name:           tc.value,
					Type:           TypeStocks,
					InitialBalance: floatPtr(0),
				})
				if _, hasErr := result.Errors["name"]; hasErr == tc.valid {
					t.Errorf("name %q: expected valid=%v, got errors %v", tc.value, tc.valid, result.Errors)
				}
			})
		}
	})

	t.Run("type_rules", func(t *testing.T) {
		result := ValidateInvestment(Draft{
			Name:           "Some Fund",
			Type:           "Beanie Babies",
			InitialBalance: floatPtr(10),
		})
		if result.IsValid {
			t.Fatal("expected unknown type to be invalid")
		}
		if msg := result.Errors["type"]; msg != "Invalid investment type" {
			t.Errorf("unexpected type error message: %q", msg)
		}

		for _, typ := range InvestmentTypes {
			res := ValidateInvestment(Draft{Name: "Some Fund", Type: typ, InitialBalance: floatPtr(10)})
			if !res.IsValid {
				t.Errorf("expected type %q to be valid, got %v", typ, res.Errors)
			}
		}
	})

	t.Run("balance_rules", func(t *testing.T) {
		cases := []struct {
			name    string
			balance *float64
			valid   bool
		}{
			{"missing", nil, false},
			{"negative", floatPtr(-1), false},
			{"nan", floatPtr(math.NaN()), false},
			{"zero", floatPtr(0), true},
			{"positive", floatPtr(123.45), true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				result := ValidateInvestment(Draft{
					Name:           "Some Fund",
					Type:           TypeCash,
					InitialBalance: tc.balance,
				})
				if _, hasErr := result.Errors["initialBalance"]; hasErr == tc.valid {
					t.Errorf("expected valid=%v, got errors %v", tc.valid, result.Errors)
				}
			})
		}
	})
}
