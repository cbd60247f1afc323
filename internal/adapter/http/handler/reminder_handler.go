package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/khata/internal/adapter/http/dto"
	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/usecase"
)

// ReminderService defines the behavior needed by ReminderHandler.
type ReminderService interface {
	CreateReminder(ctx context.Context, input usecase.CreateReminderInput) (*domain.Reminder, error)
	ListReminders(ctx context.Context) ([]*domain.Reminder, error)
	CompleteReminder(ctx context.Context, id string) (*domain.Reminder, error)
	Now() time.Time
}

// ReminderHandler handles reminder-related HTTP requests.
type ReminderHandler struct {
	reminderUC ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderUC ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderUC: reminderUC}
}

// Create creates a reminder.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, "invalid request body", err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, "invalid request body", err)
		return
	}

	reminder, err := h.reminderUC.CreateReminder(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create reminder", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReminderFromDomain(reminder, h.reminderUC.Now()))
}

// List lists reminders by date, with overdue ones flagged in effective_status.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminderUC.ListReminders(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list reminders", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRemindersResponse{
		Reminders: dto.RemindersFromDomain(reminders, h.reminderUC.Now()),
		Total:     int64(len(reminders)),
	})
}

// Complete marks a reminder completed.
func (h *ReminderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing reminder ID", "")
		return
	}

	reminder, err := h.reminderUC.CompleteReminder(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to complete reminder", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderFromDomain(reminder, h.reminderUC.Now()))
}
