// Package ledger implements the investment ledger: the investments and
// transactions collections, the balance rules tying them together, draft
// validation, and the portable export/import document.
//
// The store is the sole owner of both collections. Everything else in the
// application reads snapshots; nothing mutates a ledger record directly.
//
// JSON field names are camelCase: the persisted slots and the export document
// are an interchange format, so previously exported documents import
// unchanged.
package ledger

import "time"

// InvestmentType is the closed set of supported investment categories.
type InvestmentType string

const (
	TypeSacco           InvestmentType = "Sacco"
	TypeMoneyMarketFund InvestmentType = "Money Market Fund"
	TypeETF             InvestmentType = "ETF"
	TypeStocks          InvestmentType = "Stocks"
	TypeBonds           InvestmentType = "Bonds"
	TypeRealEstate      InvestmentType = "Real Estate"
	TypeCryptocurrency  InvestmentType = "Cryptocurrency"
	TypeCash            InvestmentType = "Cash"
)

// InvestmentTypes lists every valid investment type, in display order.
var InvestmentTypes = []InvestmentType{
	TypeSacco,
	TypeMoneyMarketFund,
	TypeETF,
	TypeStocks,
	TypeBonds,
	TypeRealEstate,
	TypeCryptocurrency,
	TypeCash,
}

// Valid reports whether t is a member of the closed type set.
func (t InvestmentType) Valid() bool {
	for _, v := range InvestmentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Investment is a tracked financial position. CurrentBalance always equals
// InitialBalance plus the signed sum of every transaction recorded against
// this investment, in recording order.
type Investment struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           InvestmentType `json:"type"`
	InitialBalance float64        `json:"initialBalance"`
	CurrentBalance float64        `json:"currentBalance"`
	Description    string         `json:"description,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// TransactionType is either a deposit or a withdrawal.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Valid reports whether t is deposit or withdrawal.
func (t TransactionType) Valid() bool {
	return t == TransactionDeposit || t == TransactionWithdrawal
}

// Transaction is a single deposit or withdrawal against one investment.
// Transactions are append-only; the ledger never edits or deletes one.
// NewBalance is the investment's balance immediately after this transaction
// was applied: a snapshot written in the same mutation that updates the
// investment, never recomputed afterwards.
type Transaction struct {
	ID           string          `json:"id"`
	InvestmentID string          `json:"investmentId"`
	Amount       float64         `json:"amount"`
	Type         TransactionType `json:"type"`
	Description  string          `json:"description,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	NewBalance   float64         `json:"newBalance"`
}

// Draft is an unvalidated candidate investment supplied by a caller.
// InitialBalance is a pointer so a missing field is distinguishable from an
// explicit zero: zero is a valid opening balance, absent is not.
type Draft struct {
	Name           string         `json:"name"`
	Type           InvestmentType `json:"type"`
	InitialBalance *float64       `json:"initialBalance"`
	Description    string         `json:"description"`
}
