package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/khata/internal/domain"
	"github.com/iho/khata/internal/infrastructure/metrics"
)

// CustomerUseCase handles customer business logic.
type CustomerUseCase struct {
	customerRepo CustomerRepository
	idGen        IDGenerator
	clock        Clock
	metrics      *metrics.Metrics
}

// NewCustomerUseCase creates a new CustomerUseCase.
func NewCustomerUseCase(customerRepo CustomerRepository, idGen IDGenerator, clock Clock, metrics *metrics.Metrics) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		idGen:        idGen,
		clock:        clock,
		metrics:      metrics,
	}
}

// CreateCustomerInput represents input for creating a customer.
type CreateCustomerInput struct {
	ID    string
	Name  string
	Phone string
	Type  domain.CustomerType
}

// CreateCustomer creates a customer with a zero balance and no last
// transaction date.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	if err := domain.ValidateID(input.ID); err != nil {
		return nil, err
	}

	if err := domain.ValidateCustomerName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidatePhone(input.Phone); err != nil {
		return nil, err
	}

	customerType := input.Type
	if customerType == "" {
		customerType = domain.CustomerTypeCustomer
	}
	if !customerType.Valid() {
		return nil, fmt.Errorf("%w: unknown customer type %q", domain.ErrValidation, customerType)
	}

	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	customer := &domain.Customer{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Type:      customerType,
		Balance:   decimal.Zero,
		CreatedAt: uc.clock.Now().UTC(),
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CustomersCreated.WithLabelValues(string(customer.Type)).Inc()
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customerRepo.GetByID(ctx, id)
}

// ListCustomers lists every customer ordered by name.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return uc.customerRepo.List(ctx)
}
