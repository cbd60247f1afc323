package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/infrastructure/postgres/generated"
	"github.com/iho/khata/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepository(pool)
}

func newTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create appends a transaction inside tx. A reused ID fails with
// domain.ErrDuplicateTransaction; an unknown customer with
// domain.ErrCustomerNotFound.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	err = queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:         transaction.ID,
		Type:       string(transaction.Type),
		Amount:     transaction.Amount,
		Date:       dateToPgDate(transaction.Date),
		Note:       transaction.Note,
		CustomerID: stringPtrToPgText(transaction.CustomerID),
		CreatedAt:  timeToPgTimestamptz(transaction.CreatedAt),
	})

	return translateError("create transaction", err, domain.ErrCustomerNotFound, domain.ErrDuplicateTransaction)
}

// ListRecent lists transactions newest first.
func (r *TransactionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListRecentTransactions(ctx, int32(limit))
	if err != nil {
		return nil, translateError("list transactions", err, nil, nil)
	}

	return rowsToTransactions(rows), nil
}

// ListByCustomer lists a customer's transactions newest first.
func (r *TransactionRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByCustomer(ctx, generated.ListTransactionsByCustomerParams{
		CustomerID: pgtype.Text{String: customerID, Valid: true},
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, translateError("list customer transactions", err, nil, nil)
	}

	return rowsToTransactions(rows), nil
}

// SumExpensesOn sums EXPENSE amounts dated on date.
func (r *TransactionRepository) SumExpensesOn(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	total, err := r.queries.SumExpensesOn(ctx, dateToPgDate(date))
	if err != nil {
		return decimal.Zero, translateError("sum expenses", err, nil, nil)
	}
	return total, nil
}

// SumByCustomerAndType totals amounts per customer and type, read through tx.
func (r *TransactionRepository) SumByCustomerAndType(ctx context.Context, tx usecase.Transaction) ([]domain.TypeTotal, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.SumByCustomerAndType(ctx)
	if err != nil {
		return nil, translateError("sum transactions by customer", err, nil, nil)
	}

	totals := make([]domain.TypeTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, domain.TypeTotal{
			CustomerID: row.CustomerID,
			Type:       domain.TransactionType(row.Type),
			Amount:     row.Total,
		})
	}

	return totals, nil
}

func rowsToTransactions(rows []generated.Transaction) []*domain.Transaction {
	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, &domain.Transaction{
			ID:         row.ID,
			Type:       domain.TransactionType(row.Type),
			Amount:     row.Amount,
			Date:       row.Date.Time,
			Note:       row.Note,
			CustomerID: pgTextToStringPtr(row.CustomerID),
			CreatedAt:  row.CreatedAt.Time,
		})
	}
	return transactions
}
