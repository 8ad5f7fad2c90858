// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"nestegg/internal/ledger"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("investment_type", validateInvestmentType)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
	}
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	return ledger.InvestmentType(fl.Field().String()).Valid()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return ledger.TransactionType(fl.Field().String()).Valid()
}
