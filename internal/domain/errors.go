package domain

import (
	"errors"
	"fmt"
)

// Error categories. Specific errors below wrap one of these so callers can
// match either the precise failure or its class with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

var (
	// Customer errors
	ErrCustomerNotFound  = fmt.Errorf("customer %w", ErrNotFound)
	ErrDuplicateCustomer = fmt.Errorf("%w: customer id already exists", ErrConflict)

	// Transaction errors
	ErrInvalidAmount           = fmt.Errorf("%w: amount must be zero or positive", ErrValidation)
	ErrMissingAmount           = fmt.Errorf("%w: amount is required", ErrValidation)
	ErrInvalidTransactionType  = fmt.Errorf("%w: invalid transaction type", ErrValidation)
	ErrDuplicateTransaction    = fmt.Errorf("%w: transaction id already recorded", ErrConflict)
	ErrTransactionNoteTooLarge = fmt.Errorf("%w: note is too long", ErrValidation)

	// Reminder errors
	ErrReminderNotFound     = fmt.Errorf("reminder %w", ErrNotFound)
	ErrDuplicateReminder    = fmt.Errorf("%w: reminder id already exists", ErrConflict)
	ErrInvalidReminderType  = fmt.Errorf("%w: invalid reminder type", ErrValidation)
	ErrInvalidReminderState = fmt.Errorf("%w: invalid reminder status", ErrValidation)
	ErrInvalidReminderTitle = fmt.Errorf("%w: invalid reminder title", ErrValidation)
	ErrMissingReminderDate  = fmt.Errorf("%w: reminder date is required", ErrValidation)
)

// StorageError wraps a failed durable read or write so it matches ErrStorage
// while keeping the driver error reachable through errors.As.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
