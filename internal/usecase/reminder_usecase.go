package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/infrastructure/metrics"
)

// ReminderUseCase handles reminder business logic.
type ReminderUseCase struct {
	reminderRepo ReminderRepository
	idGen        IDGenerator
	clock        Clock
	metrics      *metrics.Metrics
}

// NewReminderUseCase creates a new ReminderUseCase.
func NewReminderUseCase(reminderRepo ReminderRepository, idGen IDGenerator, clock Clock, metrics *metrics.Metrics) *ReminderUseCase {
	return &ReminderUseCase{
		reminderRepo: reminderRepo,
		idGen:        idGen,
		clock:        clock,
		metrics:      metrics,
	}
}

// CreateReminderInput represents input for creating a reminder.
type CreateReminderInput struct {
	Date       time.Time
	Amount     *decimal.Decimal
	CustomerID *string
	ID         string
	Title      string
	Type       domain.ReminderType
	Status     domain.ReminderStatus
}

// CreateReminder creates a reminder. Status defaults to UPCOMING.
func (uc *ReminderUseCase) CreateReminder(ctx context.Context, input CreateReminderInput) (*domain.Reminder, error) {
	if err := domain.ValidateID(input.ID); err != nil {
		return nil, err
	}

	if err := domain.ValidateReminderTitle(input.Title); err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		return nil, domain.ErrMissingReminderDate
	}

	if !input.Type.Valid() {
		return nil, domain.ErrInvalidReminderType
	}

	status := input.Status
	if status == "" {
		status = domain.ReminderUpcoming
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidReminderState
	}

	if input.Amount != nil {
		if err := domain.ValidateAmount(input.Amount); err != nil {
			return nil, err
		}
	}

	var customerID *string
	if input.CustomerID != nil && *input.CustomerID != "" {
		cid := *input.CustomerID
		customerID = &cid
	}

	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	reminder := &domain.Reminder{
		ID:         id,
		Title:      strings.TrimSpace(input.Title),
		Date:       domain.DateOf(input.Date),
		Amount:     input.Amount,
		Type:       input.Type,
		Status:     status,
		CustomerID: customerID,
		CreatedAt:  uc.clock.Now().UTC(),
	}

	if err := uc.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RemindersCreated.WithLabelValues(string(reminder.Type)).Inc()
	}

	return reminder, nil
}

// ListReminders lists reminders ordered by date ascending.
func (uc *ReminderUseCase) ListReminders(ctx context.Context) ([]*domain.Reminder, error) {
	return uc.reminderRepo.List(ctx)
}

// CompleteReminder marks a reminder as completed.
func (uc *ReminderUseCase) CompleteReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	if err := uc.reminderRepo.UpdateStatus(ctx, id, domain.ReminderCompleted); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RemindersCompleted.Inc()
	}

	return uc.reminderRepo.GetByID(ctx, id)
}

// Now exposes the use case clock so callers classify reminders against the
// same notion of today.
func (uc *ReminderUseCase) Now() time.Time {
	return uc.clock.Now()
}
