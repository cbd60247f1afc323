package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/usecase"
)

// MemoryStore is an in-memory ledger store. Its transaction manager holds an
// exclusive lock from Begin (or BeginSnapshot) until Commit or Rollback, and
// Rollback undoes every write made through the transaction.
type MemoryStore struct {
	mu           sync.RWMutex
	customers    map[string]*domain.Customer
	transactions map[string]*domain.Transaction
	order        []string
	reminders    map[string]*domain.Reminder

	Customers    *MemoryCustomerRepository
	Transactions *MemoryTransactionRepository
	Reminders    *MemoryReminderRepository
	TxManager    *MemoryTxManager
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		customers:    make(map[string]*domain.Customer),
		transactions: make(map[string]*domain.Transaction),
		reminders:    make(map[string]*domain.Reminder),
	}
	s.Customers = &MemoryCustomerRepository{store: s}
	s.Transactions = &MemoryTransactionRepository{store: s}
	s.Reminders = &MemoryReminderRepository{store: s}
	s.TxManager = &MemoryTxManager{}
	return s
}

// MemoryTx is the transaction handed out by MemoryTxManager.
type MemoryTx struct {
	manager  *MemoryTxManager
	undo     []func()
	done     bool
	readOnly bool

	CommitErr error
}

func (t *MemoryTx) record(undo func()) {
	t.undo = append(t.undo, undo)
}

// Commit releases the lock and keeps the writes.
func (t *MemoryTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("transaction already closed")
	}
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.done = true
	if !t.readOnly {
		t.manager.commits.Add(1)
	}
	t.manager.mu.Unlock()
	return nil
}

// Rollback undoes the writes and releases the lock. It is a no-op after Commit.
func (t *MemoryTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	if !t.readOnly {
		t.manager.rollbacks.Add(1)
	}
	t.manager.mu.Unlock()
	return nil
}

// MemoryTxManager serializes MemoryTx units of work.
type MemoryTxManager struct {
	mu        sync.Mutex
	commits   atomic.Int64
	rollbacks atomic.Int64

	BeginErr error
	// CommitErr is copied into every transaction begun afterwards.
	CommitErr error
}

// Begin starts a transaction, blocking while another one is open.
func (m *MemoryTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.mu.Lock()
	return &MemoryTx{manager: m, CommitErr: m.CommitErr}, nil
}

// BeginSnapshot starts a read-only transaction. It takes the same lock as
// Begin, so no write is half applied while it is open. Snapshots are not
// counted by Commits or Rollbacks.
func (m *MemoryTxManager) BeginSnapshot(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.mu.Lock()
	return &MemoryTx{manager: m, readOnly: true}, nil
}

// Commits returns how many transactions committed.
func (m *MemoryTxManager) Commits() int64 { return m.commits.Load() }

// Rollbacks returns how many transactions rolled back.
func (m *MemoryTxManager) Rollbacks() int64 { return m.rollbacks.Load() }

func asMemoryTx(tx usecase.Transaction) (*MemoryTx, error) {
	mtx, ok := tx.(*MemoryTx)
	if !ok || mtx == nil {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	if mtx.done {
		return nil, errors.New("transaction already closed")
	}
	return mtx, nil
}

func writableMemoryTx(tx usecase.Transaction) (*MemoryTx, error) {
	mtx, err := asMemoryTx(tx)
	if err != nil {
		return nil, err
	}
	if mtx.readOnly {
		return nil, errors.New("write in read-only transaction")
	}
	return mtx, nil
}

// MemoryCustomerRepository implements usecase.CustomerRepository.
type MemoryCustomerRepository struct {
	store *MemoryStore

	AdjustBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, date time.Time) error
	ListFunc          func(ctx context.Context) ([]*domain.Customer, error)
}

func (r *MemoryCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.customers[customer.ID]; ok {
		return domain.ErrDuplicateCustomer
	}
	c := *customer
	r.store.customers[customer.ID] = &c
	return nil
}

func (r *MemoryCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	out := *c
	return &out, nil
}

func (r *MemoryCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	if r.ListFunc != nil {
		return r.ListFunc(ctx)
	}
	return r.list(), nil
}

func (r *MemoryCustomerRepository) ListTx(ctx context.Context, tx usecase.Transaction) ([]*domain.Customer, error) {
	if _, err := asMemoryTx(tx); err != nil {
		return nil, err
	}
	return r.list(), nil
}

func (r *MemoryCustomerRepository) list() []*domain.Customer {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	customers := make([]*domain.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		out := *c
		customers = append(customers, &out)
	}
	sort.Slice(customers, func(i, j int) bool {
		if customers[i].Name == customers[j].Name {
			return customers[i].ID < customers[j].ID
		}
		return customers[i].Name < customers[j].Name
	})
	return customers
}

func (r *MemoryCustomerRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, date time.Time) error {
	if r.AdjustBalanceFunc != nil {
		return r.AdjustBalanceFunc(ctx, tx, id, delta, date)
	}
	mtx, err := writableMemoryTx(tx)
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}

	prevBalance := c.Balance
	prevDate := c.LastTransactionDate
	*c = c.Apply(delta, date)

	mtx.record(func() {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
		c.Balance = prevBalance
		c.LastTransactionDate = prevDate
	})
	return nil
}

func (r *MemoryCustomerRepository) SumBalances(ctx context.Context) (domain.BalanceTotals, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	totals := domain.BalanceTotals{Receivable: decimal.Zero, Payable: decimal.Zero}
	for _, c := range r.store.customers {
		switch {
		case c.IsReceivable():
			totals.Receivable = totals.Receivable.Add(c.Balance)
		case c.IsPayable():
			totals.Payable = totals.Payable.Add(c.Balance.Abs())
		}
	}
	return totals, nil
}

// MemoryTransactionRepository implements usecase.TransactionRepository.
type MemoryTransactionRepository struct {
	store *MemoryStore

	CreateFunc func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
}

func (r *MemoryTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, transaction)
	}
	mtx, err := writableMemoryTx(tx)
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.transactions[transaction.ID]; ok {
		return domain.ErrDuplicateTransaction
	}
	if transaction.HasCustomer() {
		if _, ok := r.store.customers[*transaction.CustomerID]; !ok {
			return domain.ErrCustomerNotFound
		}
	}

	t := *transaction
	r.store.transactions[t.ID] = &t
	r.store.order = append(r.store.order, t.ID)

	mtx.record(func() {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
		delete(r.store.transactions, t.ID)
		r.store.order = r.store.order[:len(r.store.order)-1]
	})
	return nil
}

// newestFirst returns transactions ordered by date then insertion, newest first.
func (r *MemoryTransactionRepository) newestFirst(match func(*domain.Transaction) bool) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(r.store.order))
	for i := len(r.store.order) - 1; i >= 0; i-- {
		t := r.store.transactions[r.store.order[i]]
		if match == nil || match(t) {
			c := *t
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func page(items []*domain.Transaction, limit, offset int) []*domain.Transaction {
	if offset >= len(items) {
		return []*domain.Transaction{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (r *MemoryTransactionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return page(r.newestFirst(nil), limit, 0), nil
}

func (r *MemoryTransactionRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	items := r.newestFirst(func(t *domain.Transaction) bool {
		return t.HasCustomer() && *t.CustomerID == customerID
	})
	return page(items, limit, offset), nil
}

func (r *MemoryTransactionRepository) SumExpensesOn(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	total := decimal.Zero
	for _, t := range r.store.transactions {
		if t.Type == domain.TransactionExpense && t.Date.Equal(date) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (r *MemoryTransactionRepository) SumByCustomerAndType(ctx context.Context, tx usecase.Transaction) ([]domain.TypeTotal, error) {
	if _, err := asMemoryTx(tx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	type key struct {
		customerID string
		txType     domain.TransactionType
	}
	sums := make(map[key]decimal.Decimal)
	for _, t := range r.store.transactions {
		if !t.HasCustomer() {
			continue
		}
		k := key{customerID: *t.CustomerID, txType: t.Type}
		sums[k] = sums[k].Add(t.Amount)
	}
	totals := make([]domain.TypeTotal, 0, len(sums))
	for k, amount := range sums {
		totals = append(totals, domain.TypeTotal{CustomerID: k.customerID, Type: k.txType, Amount: amount})
	}
	return totals, nil
}

// MemoryReminderRepository implements usecase.ReminderRepository.
type MemoryReminderRepository struct {
	store *MemoryStore
}

func (r *MemoryReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reminders[reminder.ID]; ok {
		return domain.ErrDuplicateReminder
	}
	rem := *reminder
	r.store.reminders[rem.ID] = &rem
	return nil
}

func (r *MemoryReminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rem, ok := r.store.reminders[id]
	if !ok {
		return nil, domain.ErrReminderNotFound
	}
	out := *rem
	return &out, nil
}

func (r *MemoryReminderRepository) List(ctx context.Context) ([]*domain.Reminder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	reminders := make([]*domain.Reminder, 0, len(r.store.reminders))
	for _, rem := range r.store.reminders {
		out := *rem
		reminders = append(reminders, &out)
	}
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].Date.Equal(reminders[j].Date) {
			return reminders[i].ID < reminders[j].ID
		}
		return reminders[i].Date.Before(reminders[j].Date)
	})
	return reminders, nil
}

func (r *MemoryReminderRepository) UpdateStatus(ctx context.Context, id string, status domain.ReminderStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rem, ok := r.store.reminders[id]
	if !ok {
		return domain.ErrReminderNotFound
	}
	rem.Status = status
	return nil
}

// PassthroughRetrier runs the operation once.
type PassthroughRetrier struct{}

func (PassthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// SequentialIDGenerator returns prefix-1, prefix-2, ...
type SequentialIDGenerator struct {
	Prefix string
	n      atomic.Int64
}

func (g *SequentialIDGenerator) Generate() string {
	prefix := g.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return prefix + "-" + strconv.FormatInt(g.n.Add(1), 10)
}

// FixedClock always returns Time.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}
