package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/infrastructure/metrics"
)

// TransactionUseCase is the balance accounting engine: it records
// transactions and moves customer balances in the same unit of work.
type TransactionUseCase struct {
	txManager       TransactionManager
	customerRepo    CustomerRepository
	transactionRepo TransactionRepository
	retrier         Retrier
	idGen           IDGenerator
	clock           Clock
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	customerRepo CustomerRepository,
	transactionRepo TransactionRepository,
	retrier Retrier,
	idGen IDGenerator,
	clock Clock,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		retrier:         retrier,
		idGen:           idGen,
		clock:           clock,
		metrics:         metrics,
		logger:          logger,
	}
}

// ApplyTransactionInput represents input for recording a transaction.
type ApplyTransactionInput struct {
	Amount     *decimal.Decimal
	CustomerID *string
	// Date defaults to the clock's calendar date when zero.
	Date time.Time
	// ID defaults to a generated ID when empty.
	ID   string
	Type domain.TransactionType
	Note string
}

// ApplyTransaction appends a transaction to the ledger and, when it
// references a customer, adds its delta to that customer's balance. Both
// writes commit together or not at all.
//
// Replaying an ID that is already recorded fails with
// domain.ErrDuplicateTransaction and leaves every balance untouched.
func (uc *TransactionUseCase) ApplyTransaction(ctx context.Context, input ApplyTransactionInput) (*domain.Transaction, error) {
	start := time.Now()

	if err := uc.validate(input); err != nil {
		uc.recordError(err)
		return nil, err
	}

	now := uc.clock.Now()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	var customerID *string
	if input.CustomerID != nil && *input.CustomerID != "" {
		cid := *input.CustomerID
		customerID = &cid
	}

	transaction := &domain.Transaction{
		ID:         id,
		Type:       input.Type,
		Amount:     *input.Amount,
		Date:       domain.DateOf(date),
		Note:       input.Note,
		CustomerID: customerID,
		CreatedAt:  now.UTC(),
	}

	if !transaction.Type.Known() {
		uc.logger.Warn().
			Str("transaction_id", transaction.ID).
			Str("type", string(transaction.Type)).
			Msg("recording transaction with unknown type, balance unchanged")

		if uc.metrics != nil {
			uc.metrics.UnknownTypes.Inc()
		}
	}

	err := uc.retrier.Retry(ctx, func() error {
		return uc.apply(ctx, transaction)
	})
	if err != nil {
		uc.recordError(err)
		uc.logger.Error().
			Err(err).
			Str("transaction_id", transaction.ID).
			Str("type", string(transaction.Type)).
			Msg("failed to apply transaction")

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsApplied.WithLabelValues(string(transaction.Type)).Inc()
		uc.metrics.TransactionAmount.WithLabelValues(string(transaction.Type)).Observe(transaction.Amount.InexactFloat64())
		uc.metrics.ApplyDuration.Observe(time.Since(start).Seconds())
	}

	event := uc.logger.Info().
		Str("transaction_id", transaction.ID).
		Str("type", string(transaction.Type)).
		Str("amount", transaction.Amount.String()).
		Str("delta", transaction.Delta().String())
	if transaction.HasCustomer() {
		event = event.Str("customer_id", *transaction.CustomerID)
	}
	event.Msg("transaction applied")

	return transaction, nil
}

func (uc *TransactionUseCase) apply(ctx context.Context, transaction *domain.Transaction) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return domain.StorageError("begin transaction", err)
	}
	defer tx.Rollback(txCtx)

	if err := uc.transactionRepo.Create(txCtx, tx, transaction); err != nil {
		return err
	}

	if transaction.HasCustomer() {
		err := uc.customerRepo.AdjustBalance(txCtx, tx, *transaction.CustomerID, transaction.Delta(), transaction.Date)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return domain.StorageError("commit transaction", err)
	}

	return nil
}

func (uc *TransactionUseCase) validate(input ApplyTransactionInput) error {
	if err := domain.ValidateTransactionType(input.Type); err != nil {
		return err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return err
	}

	if err := domain.ValidateID(input.ID); err != nil {
		return err
	}

	if input.CustomerID != nil {
		if err := domain.ValidateID(*input.CustomerID); err != nil {
			return err
		}
	}

	return domain.ValidateNote(input.Note)
}

func (uc *TransactionUseCase) recordError(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.TransactionErrors.WithLabelValues(errorType(err)).Inc()
}

// ListRecentTransactions lists the most recent transactions, newest first.
func (uc *TransactionUseCase) ListRecentTransactions(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	limit, _ = domain.ValidatePagination(limit, 0)
	return uc.transactionRepo.ListRecent(ctx, limit)
}

// ListCustomerTransactionsInput represents input for a customer statement.
type ListCustomerTransactionsInput struct {
	CustomerID string
	Limit      int
	Offset     int
}

// ListCustomerTransactions lists the transactions that reference a customer,
// newest first.
func (uc *TransactionUseCase) ListCustomerTransactions(ctx context.Context, input ListCustomerTransactionsInput) ([]*domain.Transaction, error) {
	if _, err := uc.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.transactionRepo.ListByCustomer(ctx, input.CustomerID, limit, offset)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrStorage):
		return "storage"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "unknown"
	}
}
