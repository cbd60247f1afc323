package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/usecase"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request's struct tags. Failures wrap
// domain.ErrValidation; FieldErrors extracts the per-field detail.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// FieldErrors flattens validator errors into field -> failed tag.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[strings.ToLower(fe.Field())] = fmt.Sprintf("failed on '%s' tag", fe.Tag())
	}
	return details
}

// CreateCustomerRequest represents a request to create a customer.
type CreateCustomerRequest struct {
	ID    string `json:"id,omitempty" validate:"omitempty,max=64"`
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Type  string `json:"type,omitempty" validate:"omitempty,oneof=CUSTOMER SUPPLIER"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		ID:    r.ID,
		Name:  r.Name,
		Phone: r.Phone,
		Type:  domain.CustomerType(r.Type),
	}
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	ID         string           `json:"id,omitempty" validate:"omitempty,max=64"`
	Type       string           `json:"type" validate:"required"`
	Amount     *decimal.Decimal `json:"amount" validate:"required"`
	Date       string           `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Note       string           `json:"note,omitempty"`
	CustomerID *string          `json:"customer_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() (usecase.ApplyTransactionInput, error) {
	var date time.Time
	if r.Date != "" {
		parsed, err := domain.ParseDate(r.Date)
		if err != nil {
			return usecase.ApplyTransactionInput{}, err
		}
		date = parsed
	}

	return usecase.ApplyTransactionInput{
		ID:         r.ID,
		Type:       domain.TransactionType(r.Type),
		Amount:     r.Amount,
		Date:       date,
		Note:       r.Note,
		CustomerID: r.CustomerID,
	}, nil
}

// CreateReminderRequest represents a request to create a reminder.
type CreateReminderRequest struct {
	ID         string           `json:"id,omitempty" validate:"omitempty,max=64"`
	Title      string           `json:"title" validate:"required,max=255"`
	Date       string           `json:"date" validate:"required,datetime=2006-01-02"`
	Type       string           `json:"type" validate:"required,oneof=COLLECTION PAYMENT PERSONAL"`
	Status     string           `json:"status,omitempty" validate:"omitempty,oneof=UPCOMING OVERDUE COMPLETED"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	CustomerID *string          `json:"customer_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReminderRequest) ToUseCaseInput() (usecase.CreateReminderInput, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return usecase.CreateReminderInput{}, err
	}

	return usecase.CreateReminderInput{
		ID:         r.ID,
		Title:      r.Title,
		Date:       date,
		Type:       domain.ReminderType(r.Type),
		Status:     domain.ReminderStatus(r.Status),
		Amount:     r.Amount,
		CustomerID: r.CustomerID,
	}, nil
}
