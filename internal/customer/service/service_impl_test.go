package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/acueductoapp/acueducto/internal/clock"
	"github.com/acueductoapp/acueducto/internal/customer/domain"
	"github.com/acueductoapp/acueducto/internal/customer/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.Exec(`
		CREATE TABLE customers (
			id INTEGER PRIMARY KEY,
			contract TEXT NOT NULL UNIQUE,
			meter_number TEXT,
			name TEXT NOT NULL,
			last_name TEXT,
			email TEXT,
			phone TEXT,
			address TEXT,
			zone TEXT,
			category TEXT,
			current_reading REAL,
			last_reading_date DATETIME,
			credit REAL NOT NULL DEFAULT 0,
			credit_description TEXT,
			extra_charges REAL NOT NULL DEFAULT 0,
			extra_charges_description TEXT,
			metadata TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)
	`).Error)
	require.NoError(t, conn.Exec(`
		CREATE UNIQUE INDEX idx_customers_meter_number ON customers (meter_number)
		WHERE meter_number IS NOT NULL AND meter_number <> ''
	`).Error)
	require.NoError(t, conn.Exec(`
		CREATE UNIQUE INDEX idx_customers_email ON customers (email)
		WHERE email IS NOT NULL AND email <> ''
	`).Error)

	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) domain.Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    conn,
		Log:   zaptest.NewLogger(t),
		Clock: clock.NewFakeClock(time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateCustomer_Validation(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidContract)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-001"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{
		Contract: "C-001",
		Name:     "Ana",
		Email:    "not-an-email",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{
		Contract: "C-001",
		Name:     "Ana",
		Category: "industrial",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestCreateCustomer_DuplicateContract(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-001", Name: "Ana"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-001", Name: "Luis"})
	assert.ErrorIs(t, err, domain.ErrContractExists)
}

func TestCreateCustomer_MeterNumberUniqueness(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Contract:    "C-001",
		Name:        "Ana",
		MeterNumber: "M-100",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{
		Contract:    "C-002",
		Name:        "Luis",
		MeterNumber: "M-100",
	})
	assert.ErrorIs(t, err, domain.ErrMeterNumberExists)

	// Customers without a meter never collide with each other.
	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-003", Name: "Rosa"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-004", Name: "Jorge"})
	require.NoError(t, err)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Contract: "C-001",
		Name:     "Ana",
		Email:    "ana@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{
		Contract: "C-002",
		Name:     "Luis",
		Email:    "ana@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	// Customers without an email never collide with each other.
	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-003", Name: "Rosa"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-004", Name: "Jorge"})
	require.NoError(t, err)
}

func TestCreateCustomer_Defaults(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Contract: "  C-001  ",
		Name:     "  Ana  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "C-001", created.Contract)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, domain.CategoryResidential, created.Category)
	assert.Nil(t, created.MeterNumber)
	assert.Nil(t, created.Email)
}

func TestUpdateCustomer_PartialFields(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Contract: "C-001",
		Name:     "Ana",
		Address:  "Calle 1",
		Credit:   100,
	})
	require.NoError(t, err)

	address := "Carrera 5 #10-20"
	updated, err := svc.Update(ctx, "C-001", domain.UpdateCustomerRequest{
		Address: &address,
	})
	require.NoError(t, err)
	assert.Equal(t, "Carrera 5 #10-20", updated.Address)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, float64(100), updated.Credit)

	_, err = svc.Update(ctx, "missing", domain.UpdateCustomerRequest{Address: &address})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByContract(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	_, err := svc.GetByContract(ctx, "C-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-001", Name: "Ana"})
	require.NoError(t, err)

	found, err := svc.GetByContract(ctx, "C-001")
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.Name)
}

func TestDeleteCustomer(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, "C-404"), domain.ErrNotFound)

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Contract: "C-001", Name: "Ana"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "C-001"))
	_, err = svc.GetByContract(ctx, "C-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCustomers_Search(t *testing.T) {
	svc := newTestService(t, openTestDB(t))
	ctx := context.Background()

	for i, req := range []domain.CreateCustomerRequest{
		{Contract: "C-001", Name: "Ana", Address: "Calle 1", Zone: "norte"},
		{Contract: "C-002", Name: "Luis", Address: "Calle 2", Zone: "sur"},
		{Contract: "D-003", Name: "Rosa", Address: "Avenida 3", Zone: "norte"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err, "customer %d", i)
	}

	resp, err := svc.List(ctx, domain.ListCustomerRequest{Search: "C-0"})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 2)

	resp, err = svc.List(ctx, domain.ListCustomerRequest{Search: "Avenida"})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 1)

	resp, err = svc.List(ctx, domain.ListCustomerRequest{Zone: "norte"})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 2)
}
