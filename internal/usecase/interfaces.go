package usecase

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
)

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	// ListTx lists customers inside tx, so the balances agree with other
	// reads made through the same transaction.
	ListTx(ctx context.Context, tx Transaction) ([]*domain.Customer, error)
	// AdjustBalance adds delta to the stored balance in a single statement
	// and sets the last transaction date. Returns domain.ErrCustomerNotFound
	// when no row matches.
	AdjustBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, date time.Time) error
	// SumBalances totals positive and negative balances in a single read.
	SumBalances(ctx context.Context) (domain.BalanceTotals, error)
}

// TransactionRepository defines data access for the append-only transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, transaction *domain.Transaction) error
	ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Transaction, error)
	SumExpensesOn(ctx context.Context, date time.Time) (decimal.Decimal, error)
	SumByCustomerAndType(ctx context.Context, tx Transaction) ([]domain.TypeTotal, error)
}

// ReminderRepository defines data access for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	List(ctx context.Context) ([]*domain.Reminder, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReminderStatus) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
	// BeginSnapshot starts a read-only transaction whose reads all see the
	// same committed state.
	BeginSnapshot(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a unit of work on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}
