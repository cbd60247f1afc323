package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/adapter/http/dto"
	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/usecase"
)

func TestCustomerHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateCustomerInput
	handler := NewCustomerHandler(&customerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error) {
			captured = input
			return &domain.Customer{ID: "c1", Name: input.Name, Type: domain.CustomerTypeCustomer, Balance: decimal.Zero}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateCustomerRequest{Name: "Ravi", Phone: "98450"})
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "Ravi" || captured.Phone != "98450" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.CustomerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "c1" || !resp.Balance.IsZero() {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCustomerHandler_Create_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{invalid json"},
		{"missing name", `{"phone":"123"}`},
		{"unknown type", `{"name":"A","type":"VENDOR"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCustomerHandler(&customerServiceStub{
				createFn: func(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error) {
					t.Fatal("CreateCustomer should not be called for invalid payload")
					return nil, nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestCustomerHandler_Create_Duplicate(t *testing.T) {
	handler := NewCustomerHandler(&customerServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error) {
			return nil, domain.ErrDuplicateCustomer
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"id":"c1","name":"A"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCustomerHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"found", nil, http.StatusOK},
		{"not found", domain.ErrCustomerNotFound, http.StatusNotFound},
		{"storage failure", domain.StorageError("get customer", errors.New("down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCustomerHandler(&customerServiceStub{
				getFn: func(ctx context.Context, id string) (*domain.Customer, error) {
					if id != "c1" {
						t.Fatalf("expected id c1, got %s", id)
					}
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.Customer{ID: id, Name: "A", Type: domain.CustomerTypeCustomer}, nil
				},
			})

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/c1", nil), "id", "c1")
			rec := httptest.NewRecorder()

			handler.Get(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestCustomerHandler_List(t *testing.T) {
	handler := NewCustomerHandler(&customerServiceStub{
		listFn: func(ctx context.Context) ([]*domain.Customer, error) {
			return []*domain.Customer{{ID: "c2"}, {ID: "c1"}}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListCustomersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || resp.Customers[0].ID != "c2" {
		t.Fatalf("expected use case order preserved, got %+v", resp)
	}
}
