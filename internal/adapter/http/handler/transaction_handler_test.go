package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/adapter/http/dto"
	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/usecase"
)

func TestTransactionHandler_Create_Success(t *testing.T) {
	var captured usecase.ApplyTransactionInput
	handler := NewTransactionHandler(&transactionServiceStub{
		applyFn: func(ctx context.Context, input usecase.ApplyTransactionInput) (*domain.Transaction, error) {
			captured = input
			return &domain.Transaction{
				ID:         "tx-1",
				Type:       input.Type,
				Amount:     *input.Amount,
				Date:       input.Date,
				CustomerID: input.CustomerID,
			}, nil
		},
	})

	body := `{"type":"GIVE_CREDIT","amount":"100","customer_id":"c1","date":"2024-03-15"}`
	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.CustomerID == nil || *captured.CustomerID != "c1" {
		t.Fatalf("expected customer id to be passed through, got %+v", captured)
	}
	if !captured.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected parsed date, got %v", captured.Date)
	}

	var resp dto.ApplyTransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Transaction == nil || resp.Transaction.ID != "tx-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.Transaction.Amount.Equal(decimal.NewFromInt(100)) || resp.Transaction.Date != "2024-03-15" {
		t.Fatalf("unexpected transaction: %+v", resp.Transaction)
	}
}

func TestTransactionHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		applyErr   error
		wantStatus int
		wantCall   bool
	}{
		{"missing amount", `{"type":"GIVE_CREDIT"}`, nil, http.StatusBadRequest, false},
		{"malformed date", `{"type":"EXPENSE","amount":"1","date":"15-03-2024"}`, nil, http.StatusBadRequest, false},
		{"negative amount", `{"type":"EXPENSE","amount":"-1"}`, domain.ErrInvalidAmount, http.StatusBadRequest, true},
		{"unknown customer", `{"type":"GIVE_CREDIT","amount":"1","customer_id":"nope"}`, domain.ErrCustomerNotFound, http.StatusNotFound, true},
		{"duplicate id", `{"id":"t1","type":"GIVE_CREDIT","amount":"1"}`, domain.ErrDuplicateTransaction, http.StatusConflict, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := NewTransactionHandler(&transactionServiceStub{
				applyFn: func(ctx context.Context, input usecase.ApplyTransactionInput) (*domain.Transaction, error) {
					called = true
					return nil, tt.applyErr
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if called != tt.wantCall {
				t.Fatalf("expected use case called=%v, got %v", tt.wantCall, called)
			}
		})
	}
}

func TestTransactionHandler_List_PassesLimit(t *testing.T) {
	var gotLimit int
	handler := NewTransactionHandler(&transactionServiceStub{
		listRecentFn: func(ctx context.Context, limit int) ([]*domain.Transaction, error) {
			gotLimit = limit
			return []*domain.Transaction{{ID: "t2"}, {ID: "t1"}}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/transactions?limit=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotLimit != 5 {
		t.Fatalf("expected limit 5, got %d", gotLimit)
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 transactions, got %d", resp.Total)
	}
}

func TestTransactionHandler_ListByCustomer(t *testing.T) {
	var captured usecase.ListCustomerTransactionsInput
	handler := NewTransactionHandler(&transactionServiceStub{
		listByCustomerFn: func(ctx context.Context, input usecase.ListCustomerTransactionsInput) ([]*domain.Transaction, error) {
			captured = input
			return nil, domain.ErrCustomerNotFound
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/c9/transactions?offset=10", nil), "id", "c9")
	rec := httptest.NewRecorder()

	handler.ListByCustomer(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if captured.CustomerID != "c9" || captured.Offset != 10 {
		t.Fatalf("unexpected input: %+v", captured)
	}
}
