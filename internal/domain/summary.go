package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the dashboard aggregates derived from the ledger.
type Summary struct {
	Date            time.Time
	TodayExpense    decimal.Decimal
	TotalReceivable decimal.Decimal
	TotalPayable    decimal.Decimal
}

// NetPosition is receivable minus payable, which equals the sum of every
// customer balance.
func (s *Summary) NetPosition() decimal.Decimal {
	return s.TotalReceivable.Sub(s.TotalPayable)
}

// BalanceTotals splits the customer balances into what is owed to the ledger
// owner and what the owner owes. Both come from the same read.
type BalanceTotals struct {
	Receivable decimal.Decimal
	Payable    decimal.Decimal
}

// BalanceMismatch describes a customer whose stored balance differs from the
// fold of its transactions.
type BalanceMismatch struct {
	CustomerID        string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
}

// Difference returns recorded minus calculated.
func (m BalanceMismatch) Difference() decimal.Decimal {
	return m.RecordedBalance.Sub(m.CalculatedBalance)
}

// ConsistencyReport is the result of checking every balance against the
// transaction log.
type ConsistencyReport struct {
	CheckedAt        time.Time
	Mismatches       []BalanceMismatch
	CustomersChecked int
}

// Consistent reports whether no mismatches were found.
func (r *ConsistencyReport) Consistent() bool {
	return len(r.Mismatches) == 0
}
