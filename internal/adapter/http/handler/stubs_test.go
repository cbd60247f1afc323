package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/usecase"
)

type customerServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error)
	getFn    func(ctx context.Context, id string) (*domain.Customer, error)
	listFn   func(ctx context.Context) ([]*domain.Customer, error)
}

func (s *customerServiceStub) CreateCustomer(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error) {
	return s.createFn(ctx, input)
}

func (s *customerServiceStub) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.getFn(ctx, id)
}

func (s *customerServiceStub) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.listFn(ctx)
}

type transactionServiceStub struct {
	applyFn          func(ctx context.Context, input usecase.ApplyTransactionInput) (*domain.Transaction, error)
	listRecentFn     func(ctx context.Context, limit int) ([]*domain.Transaction, error)
	listByCustomerFn func(ctx context.Context, input usecase.ListCustomerTransactionsInput) ([]*domain.Transaction, error)
}

func (s *transactionServiceStub) ApplyTransaction(ctx context.Context, input usecase.ApplyTransactionInput) (*domain.Transaction, error) {
	return s.applyFn(ctx, input)
}

func (s *transactionServiceStub) ListRecentTransactions(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	return s.listRecentFn(ctx, limit)
}

func (s *transactionServiceStub) ListCustomerTransactions(ctx context.Context, input usecase.ListCustomerTransactionsInput) ([]*domain.Transaction, error) {
	return s.listByCustomerFn(ctx, input)
}

type reminderServiceStub struct {
	createFn   func(ctx context.Context, input usecase.CreateReminderInput) (*domain.Reminder, error)
	listFn     func(ctx context.Context) ([]*domain.Reminder, error)
	completeFn func(ctx context.Context, id string) (*domain.Reminder, error)
	now        time.Time
}

func (s *reminderServiceStub) CreateReminder(ctx context.Context, input usecase.CreateReminderInput) (*domain.Reminder, error) {
	return s.createFn(ctx, input)
}

func (s *reminderServiceStub) ListReminders(ctx context.Context) ([]*domain.Reminder, error) {
	return s.listFn(ctx)
}

func (s *reminderServiceStub) CompleteReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	return s.completeFn(ctx, id)
}

func (s *reminderServiceStub) Now() time.Time {
	return s.now
}

type summaryServiceStub struct {
	getFn func(ctx context.Context) (*domain.Summary, error)
}

func (s *summaryServiceStub) GetSummary(ctx context.Context) (*domain.Summary, error) {
	return s.getFn(ctx)
}

type ledgerServiceStub struct {
	checkFn func(ctx context.Context) (*domain.ConsistencyReport, error)
}

func (s *ledgerServiceStub) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	return s.checkFn(ctx)
}

// withURLParam attaches a chi route parameter to req.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
