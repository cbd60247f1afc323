package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
)

func TestCustomerFromDomain(t *testing.T) {
	last := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	customer := &domain.Customer{
		ID:                  "c1",
		Name:                "Ravi",
		Type:                domain.CustomerTypeCustomer,
		Balance:             decimal.RequireFromString("60.00"),
		LastTransactionDate: &last,
	}

	resp := CustomerFromDomain(customer)
	if resp.ID != "c1" || resp.LastTransactionDate == nil || *resp.LastTransactionDate != "2024-03-10" {
		t.Fatalf("unexpected customer response: %+v", resp)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["balance"] != "60" {
		t.Fatalf("expected balance as decimal string, got %#v", decoded["balance"])
	}

	list := CustomersFromDomain([]*domain.Customer{customer, {ID: "c2"}})
	if len(list) != 2 || list[1].LastTransactionDate != nil {
		t.Fatalf("CustomersFromDomain returned %+v", list)
	}
}

func TestTransactionFromDomain(t *testing.T) {
	customer := "c1"
	tx := &domain.Transaction{
		ID:         "t1",
		Type:       domain.TransactionGiveCredit,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		CustomerID: &customer,
	}

	resp := TransactionFromDomain(tx)
	if resp.Date != "2024-03-15" || resp.Type != "GIVE_CREDIT" || *resp.CustomerID != "c1" {
		t.Fatalf("unexpected transaction response: %+v", resp)
	}
}

func TestReminderFromDomain_EffectiveStatus(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   time.Time
		status domain.ReminderStatus
		want   string
	}{
		{"past upcoming is overdue", now.AddDate(0, 0, -1), domain.ReminderUpcoming, "OVERDUE"},
		{"today is upcoming", now, domain.ReminderUpcoming, "UPCOMING"},
		{"completed stays completed", now.AddDate(0, 0, -5), domain.ReminderCompleted, "COMPLETED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ReminderFromDomain(&domain.Reminder{
				ID: "r1", Title: "t", Date: tt.date, Type: domain.ReminderPersonal, Status: tt.status,
			}, now)

			if resp.EffectiveStatus != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, resp.EffectiveStatus)
			}
			if resp.Status != string(tt.status) {
				t.Fatalf("stored status must be reported unchanged, got %s", resp.Status)
			}
		})
	}
}

func TestSummaryFromDomain(t *testing.T) {
	resp := SummaryFromDomain(&domain.Summary{
		Date:            time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		TodayExpense:    decimal.NewFromInt(25),
		TotalReceivable: decimal.NewFromInt(100),
		TotalPayable:    decimal.NewFromInt(40),
	})

	if resp.Date != "2024-03-15" || !resp.NetPosition.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected summary response: %+v", resp)
	}
}

func TestConsistencyFromDomain(t *testing.T) {
	resp := ConsistencyFromDomain(&domain.ConsistencyReport{
		CustomersChecked: 2,
		Mismatches: []domain.BalanceMismatch{
			{CustomerID: "c1", RecordedBalance: decimal.NewFromInt(50), CalculatedBalance: decimal.NewFromInt(60)},
		},
	})

	if resp.Consistent || len(resp.Mismatches) != 1 {
		t.Fatalf("unexpected consistency response: %+v", resp)
	}
	if !resp.Mismatches[0].Difference.Equal(decimal.NewFromInt(-10)) {
		t.Fatalf("expected difference -10, got %s", resp.Mismatches[0].Difference)
	}
}
