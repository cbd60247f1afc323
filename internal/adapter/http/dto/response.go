package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
)

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone,omitempty"`
	Type                string          `json:"type"`
	Balance             decimal.Decimal `json:"balance"`
	LastTransactionDate *string         `json:"last_transaction_date"`
	CreatedAt           time.Time       `json:"created_at"`
}

// CustomerFromDomain converts domain customer to response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	resp := &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Type:      string(c.Type),
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
	}
	if c.LastTransactionDate != nil {
		d := domain.FormatDate(*c.LastTransactionDate)
		resp.LastTransactionDate = &d
	}
	return resp
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// ListCustomersResponse wraps a customer list.
type ListCustomersResponse struct {
	Customers []*CustomerResponse `json:"customers"`
	Total     int64               `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Note       string          `json:"note,omitempty"`
	CustomerID *string         `json:"customer_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         t.ID,
		Type:       string(t.Type),
		Amount:     t.Amount,
		Date:       domain.FormatDate(t.Date),
		Note:       t.Note,
		CustomerID: t.CustomerID,
		CreatedAt:  t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ApplyTransactionResponse is returned when a transaction is recorded.
type ApplyTransactionResponse struct {
	Success     bool                 `json:"success"`
	Transaction *TransactionResponse `json:"transaction"`
}

// ListTransactionsResponse wraps a transaction list.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ReminderResponse represents a reminder in API responses. Status is the
// stored status; EffectiveStatus accounts for the reminder date having passed.
type ReminderResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Date            string           `json:"date"`
	Type            string           `json:"type"`
	Status          string           `json:"status"`
	EffectiveStatus string           `json:"effective_status"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	CustomerID      *string          `json:"customer_id"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ReminderFromDomain converts domain reminder to response, classifying it
// against now.
func ReminderFromDomain(r *domain.Reminder, now time.Time) *ReminderResponse {
	return &ReminderResponse{
		ID:              r.ID,
		Title:           r.Title,
		Date:            domain.FormatDate(r.Date),
		Type:            string(r.Type),
		Status:          string(r.Status),
		EffectiveStatus: string(domain.ClassifyReminder(r, now)),
		Amount:          r.Amount,
		CustomerID:      r.CustomerID,
		CreatedAt:       r.CreatedAt,
	}
}

// RemindersFromDomain converts domain reminders to responses.
func RemindersFromDomain(reminders []*domain.Reminder, now time.Time) []*ReminderResponse {
	result := make([]*ReminderResponse, len(reminders))
	for i, r := range reminders {
		result[i] = ReminderFromDomain(r, now)
	}
	return result
}

// ListRemindersResponse wraps a reminder list.
type ListRemindersResponse struct {
	Reminders []*ReminderResponse `json:"reminders"`
	Total     int64               `json:"total"`
}

// SummaryResponse is the dashboard aggregate.
type SummaryResponse struct {
	Date            string          `json:"date"`
	TodayExpense    decimal.Decimal `json:"today_expense"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	NetPosition     decimal.Decimal `json:"net_position"`
}

// SummaryFromDomain converts domain summary to response.
func SummaryFromDomain(s *domain.Summary) *SummaryResponse {
	return &SummaryResponse{
		Date:            domain.FormatDate(s.Date),
		TodayExpense:    s.TodayExpense,
		TotalReceivable: s.TotalReceivable,
		TotalPayable:    s.TotalPayable,
		NetPosition:     s.NetPosition(),
	}
}

// BalanceMismatchResponse describes one customer whose balance disagrees
// with its transactions.
type BalanceMismatchResponse struct {
	CustomerID        string          `json:"customer_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
}

// ConsistencyResponse is the result of a ledger consistency check.
type ConsistencyResponse struct {
	Consistent       bool                       `json:"consistent"`
	CustomersChecked int                        `json:"customers_checked"`
	Mismatches       []*BalanceMismatchResponse `json:"mismatches"`
	CheckedAt        time.Time                  `json:"checked_at"`
}

// ConsistencyFromDomain converts a consistency report to response.
func ConsistencyFromDomain(r *domain.ConsistencyReport) *ConsistencyResponse {
	mismatches := make([]*BalanceMismatchResponse, len(r.Mismatches))
	for i, m := range r.Mismatches {
		mismatches[i] = &BalanceMismatchResponse{
			CustomerID:        m.CustomerID,
			RecordedBalance:   m.RecordedBalance,
			CalculatedBalance: m.CalculatedBalance,
			Difference:        m.Difference(),
		}
	}

	return &ConsistencyResponse{
		Consistent:       r.Consistent(),
		CustomersChecked: r.CustomersChecked,
		Mismatches:       mismatches,
		CheckedAt:        r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
