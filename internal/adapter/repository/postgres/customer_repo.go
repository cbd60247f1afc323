package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/infrastructure/postgres/generated"
	"github.com/iho/khata/internal/usecase"
)

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	queries *generated.Queries
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return newCustomerRepository(pool)
}

func newCustomerRepository(db generated.DBTX) *CustomerRepository {
	return &CustomerRepository{queries: generated.New(db)}
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	var lastDate time.Time
	if customer.LastTransactionDate != nil {
		lastDate = *customer.LastTransactionDate
	}

	_, err := r.queries.CreateCustomer(ctx, generated.CreateCustomerParams{
		ID:                  customer.ID,
		Name:                customer.Name,
		Phone:               customer.Phone,
		Type:                string(customer.Type),
		Balance:             customer.Balance,
		LastTransactionDate: dateToPgDate(lastDate),
		CreatedAt:           timeToPgTimestamptz(customer.CreatedAt),
	})

	return translateError("create customer", err, nil, domain.ErrDuplicateCustomer)
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	row, err := r.queries.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, translateError("get customer", err, domain.ErrCustomerNotFound, nil)
	}

	return rowToCustomer(row), nil
}

// List returns every customer ordered by name.
func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := r.queries.ListCustomers(ctx)
	if err != nil {
		return nil, translateError("list customers", err, nil, nil)
	}

	customers := make([]*domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, rowToCustomer(row))
	}

	return customers, nil
}

// ListTx returns every customer ordered by name, read through tx.
func (r *CustomerRepository) ListTx(ctx context.Context, tx usecase.Transaction) ([]*domain.Customer, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListCustomers(ctx)
	if err != nil {
		return nil, translateError("list customers", err, nil, nil)
	}

	customers := make([]*domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, rowToCustomer(row))
	}

	return customers, nil
}

// AdjustBalance adds delta to the stored balance with a single UPDATE so
// concurrent adjustments serialize on the row lock instead of overwriting
// each other.
func (r *CustomerRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, date time.Time) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	affected, err := queries.AdjustCustomerBalance(ctx, generated.AdjustCustomerBalanceParams{
		Delta: delta,
		Date:  dateToPgDate(date),
		ID:    id,
	})
	if err != nil {
		return translateError("adjust customer balance", err, nil, nil)
	}

	if affected == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// SumBalances totals positive and negative balances in one statement.
func (r *CustomerRepository) SumBalances(ctx context.Context) (domain.BalanceTotals, error) {
	row, err := r.queries.SumBalances(ctx)
	if err != nil {
		return domain.BalanceTotals{}, translateError("sum balances", err, nil, nil)
	}

	return domain.BalanceTotals{Receivable: row.Receivable, Payable: row.Payable}, nil
}

func rowToCustomer(row generated.Customer) *domain.Customer {
	return &domain.Customer{
		ID:                  row.ID,
		Name:                row.Name,
		Phone:               row.Phone,
		Type:                domain.CustomerType(row.Type),
		Balance:             row.Balance,
		LastTransactionDate: pgDateToTimePtr(row.LastTransactionDate),
		CreatedAt:           row.CreatedAt.Time,
	}
}
