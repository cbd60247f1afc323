package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReminderType classifies what a reminder is about.
type ReminderType string

const (
	ReminderCollection ReminderType = "COLLECTION"
	ReminderPayment    ReminderType = "PAYMENT"
	ReminderPersonal   ReminderType = "PERSONAL"
)

// Valid reports whether t is a known reminder type.
func (t ReminderType) Valid() bool {
	switch t {
	case ReminderCollection, ReminderPayment, ReminderPersonal:
		return true
	}
	return false
}

// ReminderStatus is the lifecycle state of a reminder.
type ReminderStatus string

const (
	ReminderUpcoming  ReminderStatus = "UPCOMING"
	ReminderOverdue   ReminderStatus = "OVERDUE"
	ReminderCompleted ReminderStatus = "COMPLETED"
)

// Valid reports whether s is a known reminder status.
func (s ReminderStatus) Valid() bool {
	switch s {
	case ReminderUpcoming, ReminderOverdue, ReminderCompleted:
		return true
	}
	return false
}

// Reminder is a dated note, optionally tied to a customer and an amount.
type Reminder struct {
	Date       time.Time
	CreatedAt  time.Time
	Amount     *decimal.Decimal
	CustomerID *string
	ID         string
	Title      string
	Type       ReminderType
	Status     ReminderStatus
}

// ClassifyReminder derives the status a reminder has at now without touching
// storage. Completed reminders stay completed; a reminder dated before now's
// calendar date is overdue; anything else is upcoming.
func ClassifyReminder(r *Reminder, now time.Time) ReminderStatus {
	if r.Status == ReminderCompleted {
		return ReminderCompleted
	}

	if DateOf(r.Date).Before(DateOf(now)) {
		return ReminderOverdue
	}

	return ReminderUpcoming
}
