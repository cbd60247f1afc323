package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/usecase"
	"github.com/iho/khata/internal/usecase/mocks"
)

func TestSummary_EmptyStore(t *testing.T) {
	h := newHarness(t)

	summary, err := h.summary.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if !summary.TodayExpense.IsZero() || !summary.TotalReceivable.IsZero() || !summary.TotalPayable.IsZero() {
		t.Fatalf("expected all zero, got %+v", summary)
	}
	if !summary.Date.Equal(domain.DateOf(testNow)) {
		t.Fatalf("expected date %v, got %v", domain.DateOf(testNow), summary.Date)
	}
}

func TestSummary_NetPositionEqualsSumOfBalances(t *testing.T) {
	h := newHarness(t)
	h.createCustomer(t, "c1", "Asha")
	h.createCustomer(t, "c2", "Binod")
	h.createCustomer(t, "c3", "Chitra")

	h.apply(t, "t1", domain.TransactionGiveCredit, 120, "c1")
	h.apply(t, "t2", domain.TransactionTakeCredit, 75, "c2")
	h.apply(t, "t3", domain.TransactionPaymentMade, 20, "c2")
	h.apply(t, "t4", domain.TransactionPaymentReceived, 30, "c3")
	h.apply(t, "t5", domain.TransactionExpense, 15, "")

	summary, err := h.summary.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	customers, _ := h.customers.ListCustomers(context.Background())
	sum := decimal.Zero
	for _, c := range customers {
		sum = sum.Add(c.Balance)
	}

	if !summary.NetPosition().Equal(sum) {
		t.Fatalf("expected receivable-payable %s to equal sum of balances %s", summary.NetPosition(), sum)
	}
	if !summary.TotalReceivable.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected receivable 120, got %s", summary.TotalReceivable)
	}
	if !summary.TotalPayable.Equal(decimal.NewFromInt(85)) {
		t.Fatalf("expected payable 85, got %s", summary.TotalPayable)
	}
	if !summary.TodayExpense.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected today expense 15, got %s", summary.TodayExpense)
	}

	if got := testutil.ToFloat64(h.metrics.TotalPayable); got != 85 {
		t.Fatalf("expected payable gauge 85, got %v", got)
	}
}

func TestSummary_IndividualAggregates(t *testing.T) {
	h := newHarness(t)
	h.createCustomer(t, "c1", "Asha")
	h.apply(t, "t1", domain.TransactionTakeCredit, 40, "c1")

	ctx := context.Background()

	receivable, err := h.summary.TotalReceivable(ctx)
	if err != nil || !receivable.IsZero() {
		t.Fatalf("expected receivable 0, got %s (%v)", receivable, err)
	}

	payable, err := h.summary.TotalPayable(ctx)
	if err != nil || !payable.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected payable 40, got %s (%v)", payable, err)
	}
}

func TestSummary_StorageErrorSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)

	customers := mocks.NewMockCustomerRepository(ctrl)
	transactions := mocks.NewMockTransactionRepository(ctrl)

	storageErr := domain.StorageError("sum expenses", errors.New("db down"))
	transactions.EXPECT().SumExpensesOn(gomock.Any(), domain.DateOf(testNow)).Return(decimal.Zero, storageErr)

	uc := usecase.NewSummaryUseCase(customers, transactions, mocks.FixedClock{Time: testNow}, nil)

	if _, err := uc.GetSummary(context.Background()); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestSummary_BalancesReadOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	customers := mocks.NewMockCustomerRepository(ctrl)
	transactions := mocks.NewMockTransactionRepository(ctrl)

	transactions.EXPECT().SumExpensesOn(gomock.Any(), domain.DateOf(testNow)).Return(decimal.NewFromInt(7), nil)
	customers.EXPECT().SumBalances(gomock.Any()).Times(1).Return(domain.BalanceTotals{
		Receivable: decimal.NewFromInt(10),
		Payable:    decimal.NewFromInt(5),
	}, nil)

	uc := usecase.NewSummaryUseCase(customers, transactions, mocks.FixedClock{Time: testNow}, nil)

	summary, err := uc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.NetPosition().Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected net position 5, got %s", summary.NetPosition())
	}
}

func TestSummary_ConsistentUnderConcurrentWrites(t *testing.T) {
	h := newHarness(t)
	h.createCustomer(t, "c1", "Asha")
	h.apply(t, "seed", domain.TransactionGiveCredit, 10, "c1")

	// c1 flips between +10 and -5; no summary may mix the two states.
	owed := domain.BalanceTotals{Receivable: decimal.NewFromInt(10), Payable: decimal.Zero}
	owing := domain.BalanceTotals{Receivable: decimal.Zero, Payable: decimal.NewFromInt(5)}

	const flips = 200
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		cid := "c1"
		for i := 0; i < flips; i++ {
			txType := domain.TransactionPaymentReceived
			if i%2 == 1 {
				txType = domain.TransactionGiveCredit
			}
			_, err := h.transactions.ApplyTransaction(context.Background(), usecase.ApplyTransactionInput{
				Type: txType, Amount: amountPtr(15), CustomerID: &cid,
			})
			if err != nil {
				t.Errorf("apply flip %d: %v", i, err)
				return
			}
		}
	}()

	for {
		summary, err := h.summary.GetSummary(context.Background())
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		got := domain.BalanceTotals{Receivable: summary.TotalReceivable, Payable: summary.TotalPayable}
		if !sameTotals(got, owed) && !sameTotals(got, owing) {
			t.Fatalf("summary matches no balance state: receivable=%s payable=%s", got.Receivable, got.Payable)
		}

		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
	}
}

func sameTotals(a, b domain.BalanceTotals) bool {
	return a.Receivable.Equal(b.Receivable) && a.Payable.Equal(b.Payable)
}
