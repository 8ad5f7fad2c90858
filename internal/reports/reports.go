// Package reports computes read-only aggregates over ledger snapshots for
// the dashboard and reporting endpoints.
package reports

import (
	"sort"
	"time"

	"nestegg/internal/ledger"
)

// InvestmentPerformance summarizes one investment over a reporting window.
// Deposit and withdrawal totals cover only transactions inside the window;
// growth is measured against the investment's full lifetime balances.
type InvestmentPerformance struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Type             ledger.InvestmentType `json:"type"`
	InitialBalance   float64               `json:"initialBalance"`
	CurrentBalance   float64               `json:"currentBalance"`
	TotalDeposits    float64               `json:"totalDeposits"`
	TotalWithdrawals float64               `json:"totalWithdrawals"`
	NetGrowth        float64               `json:"netGrowth"`
	GrowthPercentage float64               `json:"growthPercentage"`
}

// Performance computes per-investment performance for transactions whose
// timestamps fall within [from, to].
func Performance(investments []ledger.Investment, transactions []ledger.Transaction, from, to time.Time) []InvestmentPerformance {
	out := make([]InvestmentPerformance, 0, len(investments))

	for _, inv := range investments {
		perf := InvestmentPerformance{
			ID:             inv.ID,
			Name:           inv.Name,
			Type:           inv.Type,
			InitialBalance: inv.InitialBalance,
			CurrentBalance: inv.CurrentBalance,
		}

		for _, tx := range transactions {
			if tx.InvestmentID != inv.ID || !within(tx.Timestamp, from, to) {
				continue
			}
			if tx.Type == ledger.TransactionDeposit {
				perf.TotalDeposits += tx.Amount
			} else {
				perf.TotalWithdrawals += tx.Amount
			}
		}

		perf.NetGrowth = inv.CurrentBalance - inv.InitialBalance
		if inv.InitialBalance != 0 {
			perf.GrowthPercentage = perf.NetGrowth / inv.InitialBalance * 100
		}

		out = append(out, perf)
	}

	return out
}

// MonthlyFlow aggregates deposits and withdrawals for one calendar month.
type MonthlyFlow struct {
	Month       string  `json:"month"` // YYYY-MM
	Deposits    float64 `json:"deposits"`
	Withdrawals float64 `json:"withdrawals"`
	NetFlow     float64 `json:"netFlow"`
}

// MonthlyFlows buckets transactions within [from, to] by calendar month,
// sorted chronologically.
func MonthlyFlows(transactions []ledger.Transaction, from, to time.Time) []MonthlyFlow {
	byMonth := make(map[string]*MonthlyFlow)

	for _, tx := range transactions {
		if !within(tx.Timestamp, from, to) {
			continue
		}
		month := tx.Timestamp.Format("2006-01")
		flow, ok := byMonth[month]
		if !ok {
			flow = &MonthlyFlow{Month: month}
			byMonth[month] = flow
		}
		if tx.Type == ledger.TransactionDeposit {
			flow.Deposits += tx.Amount
		} else {
			flow.Withdrawals += tx.Amount
		}
		flow.NetFlow = flow.Deposits - flow.Withdrawals
	}

	out := make([]MonthlyFlow, 0, len(byMonth))
	for _, flow := range byMonth {
		out = append(out, *flow)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TypeAllocation is one investment type's share of the portfolio.
type TypeAllocation struct {
	Type       ledger.InvestmentType `json:"type"`
	Balance    float64               `json:"balance"`
	Count      int                   `json:"count"`
	Percentage float64               `json:"percentage"`
}

// Summary is the portfolio-wide dashboard aggregate.
type Summary struct {
	TotalInitialBalance float64          `json:"totalInitialBalance"`
	TotalCurrentBalance float64          `json:"totalCurrentBalance"`
	NetGrowth           float64          `json:"netGrowth"`
	GrowthPercentage    float64          `json:"growthPercentage"`
	InvestmentCount     int              `json:"investmentCount"`
	Allocation          []TypeAllocation `json:"allocation"`
}

// Summarize computes portfolio totals and the per-type allocation split.
// Allocation percentages are shares of total current balance and are zero
// when the portfolio nets to zero.
func Summarize(investments []ledger.Investment) Summary {
	s := Summary{InvestmentCount: len(investments)}
	byType := make(map[ledger.InvestmentType]*TypeAllocation)

	for _, inv := range investments {
		s.TotalInitialBalance += inv.InitialBalance
		s.TotalCurrentBalance += inv.CurrentBalance

		alloc, ok := byType[inv.Type]
		if !ok {
			alloc = &TypeAllocation{Type: inv.Type}
			byType[inv.Type] = alloc
		}
		alloc.Balance += inv.CurrentBalance
		alloc.Count++
	}

	s.NetGrowth = s.TotalCurrentBalance - s.TotalInitialBalance
	if s.TotalInitialBalance != 0 {
		s.GrowthPercentage = s.NetGrowth / s.TotalInitialBalance * 100
	}

	s.Allocation = make([]TypeAllocation, 0, len(byType))
	for _, alloc := range byType {
		if s.TotalCurrentBalance != 0 {
			alloc.Percentage = alloc.Balance / s.TotalCurrentBalance * 100
		}
		s.Allocation = append(s.Allocation, *alloc)
	}
	sort.Slice(s.Allocation, func(i, j int) bool {
		return s.Allocation[i].Balance > s.Allocation[j].Balance
	})

	return s
}

func within(ts, from, to time.Time) bool {
	if !from.IsZero() && ts.Before(from) {
		return false
	}
	if !to.IsZero() && ts.After(to) {
		return false
	}
	return true
}
