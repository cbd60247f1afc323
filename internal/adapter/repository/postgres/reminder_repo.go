package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/infrastructure/postgres/generated"
)

// ReminderRepository implements usecase.ReminderRepository.
type ReminderRepository struct {
	queries *generated.Queries
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return newReminderRepository(pool)
}

func newReminderRepository(db generated.DBTX) *ReminderRepository {
	return &ReminderRepository{queries: generated.New(db)}
}

// Create inserts a reminder.
func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	err := r.queries.CreateReminder(ctx, generated.CreateReminderParams{
		ID:         reminder.ID,
		Title:      reminder.Title,
		Date:       dateToPgDate(reminder.Date),
		Amount:     decimalPtrToNull(reminder.Amount),
		Type:       string(reminder.Type),
		Status:     string(reminder.Status),
		CustomerID: stringPtrToPgText(reminder.CustomerID),
		CreatedAt:  timeToPgTimestamptz(reminder.CreatedAt),
	})

	return translateError("create reminder", err, domain.ErrCustomerNotFound, domain.ErrDuplicateReminder)
}

// GetByID retrieves a reminder by ID.
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	row, err := r.queries.GetReminderByID(ctx, id)
	if err != nil {
		return nil, translateError("get reminder", err, domain.ErrReminderNotFound, nil)
	}
	return rowToReminder(row), nil
}

// List returns every reminder ordered by date.
func (r *ReminderRepository) List(ctx context.Context) ([]*domain.Reminder, error) {
	rows, err := r.queries.ListReminders(ctx)
	if err != nil {
		return nil, translateError("list reminders", err, nil, nil)
	}

	reminders := make([]*domain.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, rowToReminder(row))
	}
	return reminders, nil
}

// UpdateStatus sets the stored status of a reminder.
func (r *ReminderRepository) UpdateStatus(ctx context.Context, id string, status domain.ReminderStatus) error {
	affected, err := r.queries.UpdateReminderStatus(ctx, generated.UpdateReminderStatusParams{
		ID:     id,
		Status: string(status),
	})
	if err != nil {
		return translateError("update reminder status", err, nil, nil)
	}

	if affected == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func rowToReminder(row generated.Reminder) *domain.Reminder {
	return &domain.Reminder{
		ID:         row.ID,
		Title:      row.Title,
		Date:       row.Date.Time,
		Amount:     nullToDecimalPtr(row.Amount),
		Type:       domain.ReminderType(row.Type),
		Status:     domain.ReminderStatus(row.Status),
		CustomerID: pgTextToStringPtr(row.CustomerID),
		CreatedAt:  row.CreatedAt.Time,
	}
}
