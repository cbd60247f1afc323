package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/infrastructure/metrics"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	txManager       TransactionManager
	customerRepo    CustomerRepository
	transactionRepo TransactionRepository
	clock           Clock
	metrics         *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	customerRepo CustomerRepository,
	transactionRepo TransactionRepository,
	clock Clock,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
		metrics:         metrics,
	}
}

// CheckConsistency recomputes every customer balance from the transaction
// log and reports the customers whose stored balance differs. The log and
// the balances are read from one snapshot, so a transaction committing
// mid-check cannot show up as a mismatch.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.BeginSnapshot(txCtx)
	if err != nil {
		return nil, domain.StorageError("begin snapshot", err)
	}
	defer tx.Rollback(txCtx)

	totals, err := uc.transactionRepo.SumByCustomerAndType(txCtx, tx)
	if err != nil {
		return nil, err
	}

	calculated := make(map[string]decimal.Decimal, len(totals))
	for _, total := range totals {
		current := calculated[total.CustomerID]
		calculated[total.CustomerID] = current.Add(domain.Delta(total.Type, total.Amount))
	}

	customers, err := uc.customerRepo.ListTx(txCtx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, domain.StorageError("commit snapshot", err)
	}

	report := &domain.ConsistencyReport{
		CheckedAt:        uc.clock.Now().UTC(),
		CustomersChecked: len(customers),
	}

	for _, customer := range customers {
		expected := calculated[customer.ID]
		if !customer.Balance.Equal(expected) {
			report.Mismatches = append(report.Mismatches, domain.BalanceMismatch{
				CustomerID:        customer.ID,
				RecordedBalance:   customer.Balance,
				CalculatedBalance: expected,
			})
		}
	}

	if uc.metrics != nil {
		uc.metrics.BalanceMismatches.Set(float64(len(report.Mismatches)))
	}

	return report, nil
}
