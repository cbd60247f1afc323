package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength   = 255
	MaxPhoneLength  = 32
	MaxNoteLength   = 1024
	MaxTitleLength  = 255
	MaxIDLength     = 64
	MaxAmount       = "1000000000000" // 1 trillion
	MaxPageSize     = 100
	DefaultPageSize = 20
)

var (
	transactionTypePattern = regexp.MustCompile(`^[A-Z][A-Z_]*$`)
	idPattern              = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	phonePattern           = regexp.MustCompile(`^\+?[0-9 ()-]+$`)
)

// ValidateCustomerName validates a customer display name.
func ValidateCustomerName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrValidation, MaxNameLength)
	}

	return nil
}

// ValidatePhone validates an optional phone number.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}

	if len(phone) > MaxPhoneLength || !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: phone %q is not a valid number", ErrValidation, phone)
	}

	return nil
}

// ValidateID validates a caller-assigned identifier. Empty is allowed; the
// use case generates one.
func ValidateID(id string) error {
	if id == "" {
		return nil
	}

	if len(id) > MaxIDLength || !idPattern.MatchString(id) {
		return fmt.Errorf("%w: id %q must be 1-%d of [A-Za-z0-9_-]", ErrValidation, id, MaxIDLength)
	}

	return nil
}

// ValidateTransactionType checks that t is well formed. Unknown but well
// formed types are accepted and carry a zero delta.
func ValidateTransactionType(t TransactionType) error {
	if t == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidTransactionType)
	}

	if !transactionTypePattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, t)
	}

	return nil
}

// ValidateAmount validates a transaction or reminder amount.
func ValidateAmount(amount *decimal.Decimal) error {
	if amount == nil {
		return ErrMissingAmount
	}

	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	maxAmount := decimal.RequireFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrValidation, MaxAmount)
	}

	return nil
}

// ValidateNote validates a transaction note.
func ValidateNote(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return fmt.Errorf("%w: limit is %d characters", ErrTransactionNoteTooLarge, MaxNoteLength)
	}
	return nil
}

// ValidateReminderTitle validates a reminder title.
func ValidateReminderTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidReminderTitle)
	}

	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidReminderTitle, MaxTitleLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
