package domain

import (
	"context"
	"errors"
	"time"

	"github.com/acueductoapp/acueducto/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Contract                string
	MeterNumber             string
	Name                    string
	LastName                string
	Email                   string
	Phone                   string
	Address                 string
	Zone                    string
	Category                string
	CurrentReading          *float64
	LastReadingDate         *time.Time
	Credit                  float64
	CreditDescription       string
	ExtraCharges            float64
	ExtraChargesDescription string
}

type UpdateCustomerRequest struct {
	MeterNumber             *string
	Name                    *string
	LastName                *string
	Email                   *string
	Phone                   *string
	Address                 *string
	Zone                    *string
	Category                *string
	Credit                  *float64
	CreditDescription       *string
	ExtraCharges            *float64
	ExtraChargesDescription *string
}

// ListCustomerRequest carries the office search box: a single term matched
// against contract codes and addresses.
type ListCustomerRequest struct {
	PageToken string
	PageSize  int
	Search    string
	Zone      string
	Category  string
}

type ListCustomerFilter struct {
	Search   string
	Zone     string
	Category string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	Update(ctx context.Context, contract string, req UpdateCustomerRequest) (Customer, error)
	GetByContract(ctx context.Context, contract string) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	Delete(ctx context.Context, contract string) error
}

var (
	ErrInvalidContract   = errors.New("invalid_contract")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidEmail      = errors.New("invalid_email")
	ErrInvalidCategory   = errors.New("invalid_category")
	ErrContractExists    = errors.New("contract_exists")
	ErrMeterNumberExists = errors.New("meter_number_exists")
	ErrEmailExists       = errors.New("email_exists")
	ErrNotFound          = errors.New("not_found")
)
