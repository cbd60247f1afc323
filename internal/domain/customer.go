package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerType classifies a counterparty. It is informational only and does
// not change how transactions move the balance.
type CustomerType string

const (
	CustomerTypeCustomer CustomerType = "CUSTOMER"
	CustomerTypeSupplier CustomerType = "SUPPLIER"
)

// Valid reports whether t is a known customer type.
func (t CustomerType) Valid() bool {
	return t == CustomerTypeCustomer || t == CustomerTypeSupplier
}

// Customer is a counterparty with a running balance.
//
// Balance is positive when the counterparty owes the ledger owner and
// negative when the owner owes the counterparty. It always equals the sum of
// Delta over every transaction that references the customer.
type Customer struct {
	CreatedAt           time.Time
	LastTransactionDate *time.Time
	ID                  string
	Name                string
	Phone               string
	Type                CustomerType
	Balance             decimal.Decimal
}

// Apply returns a copy of the customer with delta added to the balance and
// the last transaction date moved to date.
func (c Customer) Apply(delta decimal.Decimal, date time.Time) Customer {
	d := DateOf(date)
	c.Balance = c.Balance.Add(delta)
	c.LastTransactionDate = &d
	return c
}

// IsReceivable reports whether the counterparty owes the ledger owner.
func (c *Customer) IsReceivable() bool {
	return c.Balance.IsPositive()
}

// IsPayable reports whether the ledger owner owes the counterparty.
func (c *Customer) IsPayable() bool {
	return c.Balance.IsNegative()
}
