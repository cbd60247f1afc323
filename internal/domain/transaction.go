package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType names the kind of money movement a transaction records.
type TransactionType string

const (
	TransactionGiveCredit      TransactionType = "GIVE_CREDIT"
	TransactionTakeCredit      TransactionType = "TAKE_CREDIT"
	TransactionExpense         TransactionType = "EXPENSE"
	TransactionPaymentReceived TransactionType = "PAYMENT_RECEIVED"
	TransactionPaymentMade     TransactionType = "PAYMENT_MADE"
)

// TransactionTypes lists every type with a defined balance effect.
var TransactionTypes = []TransactionType{
	TransactionGiveCredit,
	TransactionTakeCredit,
	TransactionExpense,
	TransactionPaymentReceived,
	TransactionPaymentMade,
}

// Known reports whether t is one of TransactionTypes.
func (t TransactionType) Known() bool {
	switch t {
	case TransactionGiveCredit, TransactionTakeCredit, TransactionExpense,
		TransactionPaymentReceived, TransactionPaymentMade:
		return true
	}
	return false
}

// Delta returns the signed amount a transaction of type t adds to the
// referenced customer's balance.
//
// EXPENSE and types outside the table move nothing; such transactions are
// still recorded.
func Delta(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TransactionGiveCredit, TransactionPaymentMade:
		return amount
	case TransactionTakeCredit, TransactionPaymentReceived:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

// Transaction is an immutable entry in the append-only ledger.
type Transaction struct {
	Date       time.Time
	CreatedAt  time.Time
	CustomerID *string
	ID         string
	Type       TransactionType
	Note       string
	Amount     decimal.Decimal
}

// Delta returns the balance effect of the transaction.
func (t *Transaction) Delta() decimal.Decimal {
	return Delta(t.Type, t.Amount)
}

// HasCustomer reports whether the transaction references a customer.
func (t *Transaction) HasCustomer() bool {
	return t.CustomerID != nil && *t.CustomerID != ""
}

// TypeTotal is the summed amount of one transaction type for one customer.
type TypeTotal struct {
	CustomerID string
	Type       TransactionType
	Amount     decimal.Decimal
}
