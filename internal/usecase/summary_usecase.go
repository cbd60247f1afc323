package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/infrastructure/metrics"
)

// SummaryUseCase computes the ledger aggregates. Every call reads the store;
// nothing is cached between calls.
type SummaryUseCase struct {
	customerRepo    CustomerRepository
	transactionRepo TransactionRepository
	clock           Clock
	metrics         *metrics.Metrics
}

// NewSummaryUseCase creates a new SummaryUseCase.
func NewSummaryUseCase(
	customerRepo CustomerRepository,
	transactionRepo TransactionRepository,
	clock Clock,
	metrics *metrics.Metrics,
) *SummaryUseCase {
	return &SummaryUseCase{
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
		metrics:         metrics,
	}
}

// TodayExpense sums EXPENSE transactions dated on the clock's local calendar date.
func (uc *SummaryUseCase) TodayExpense(ctx context.Context) (decimal.Decimal, error) {
	return uc.transactionRepo.SumExpensesOn(ctx, domain.DateOf(uc.clock.Now()))
}

// TotalReceivable sums every positive customer balance.
func (uc *SummaryUseCase) TotalReceivable(ctx context.Context) (decimal.Decimal, error) {
	totals, err := uc.customerRepo.SumBalances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Receivable, nil
}

// TotalPayable sums the absolute value of every negative customer balance.
func (uc *SummaryUseCase) TotalPayable(ctx context.Context) (decimal.Decimal, error) {
	totals, err := uc.customerRepo.SumBalances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Payable, nil
}

// GetSummary computes all three aggregates. Receivable and payable come from
// one read, so their difference is always the sum of the balances at some
// instant, even while transactions are being applied.
func (uc *SummaryUseCase) GetSummary(ctx context.Context) (*domain.Summary, error) {
	today := domain.DateOf(uc.clock.Now())

	expense, err := uc.transactionRepo.SumExpensesOn(ctx, today)
	if err != nil {
		return nil, err
	}

	totals, err := uc.customerRepo.SumBalances(ctx)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TodayExpense.Set(expense.InexactFloat64())
		uc.metrics.TotalReceivable.Set(totals.Receivable.InexactFloat64())
		uc.metrics.TotalPayable.Set(totals.Payable.InexactFloat64())
	}

	return &domain.Summary{
		Date:            today,
		TodayExpense:    expense,
		TotalReceivable: totals.Receivable,
		TotalPayable:    totals.Payable,
	}, nil
}
