package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/acueductoapp/acueducto/internal/clock"
	customerdomain "github.com/acueductoapp/acueducto/internal/customer/domain"
	customerrepository "github.com/acueductoapp/acueducto/internal/customer/repository"
	"github.com/acueductoapp/acueducto/internal/reading/domain"
	"github.com/acueductoapp/acueducto/internal/reading/repository"
	routedomain "github.com/acueductoapp/acueducto/internal/route/domain"
	routerepository "github.com/acueductoapp/acueducto/internal/route/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	svc       domain.Service
	clock     *clock.FakeClock
	genID     *snowflake.Node
	customers customerdomain.Repository
	routes    routedomain.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE customers (
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
		)`,
		`CREATE TABLE readings (
			id INTEGER PRIMARY KEY,
			customer_id INTEGER NOT NULL,
			value REAL NOT NULL,
			reading_date DATETIME NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE routes (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			finalized_at DATETIME
		)`,
		`CREATE TABLE route_assignments (
			id INTEGER PRIMARY KEY,
			route_id INTEGER NOT NULL,
			customer_id INTEGER NOT NULL,
			sequence INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			UNIQUE (route_id, sequence)
		)`,
	} {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC))
	customers := customerrepository.Provide()
	routes := routerepository.Provide()

	svc := New(Params{
		DB:        conn,
		Log:       zaptest.NewLogger(t),
		Clock:     fc,
		GenID:     node,
		Repo:      repository.Provide(),
		Customers: customers,
		Routes:    routes,
	})

	return &fixture{
		db:        conn,
		svc:       svc,
		clock:     fc,
		genID:     node,
		customers: customers,
		routes:    routes,
	}
}

func (f *fixture) createCustomer(t *testing.T, contract string) *customerdomain.Customer {
	t.Helper()

	now := f.clock.Now()
	customer := &customerdomain.Customer{
		ID:        f.genID.Generate(),
		Contract:  contract,
		Name:      "Ana",
		LastName:  "Pérez",
		Zone:      "norte",
		Category:  customerdomain.CategoryResidential,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.customers.Insert(context.Background(), f.db, customer))
	return customer
}

func TestSubmit_UnknownContract(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, domain.SubmitReadingRequest{Contract: "missing", Value: 50})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	var count int64
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM readings`).Scan(&count).Error)
	assert.Zero(t, count)
}

func TestSubmit_EmptyContract(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), domain.SubmitReadingRequest{Value: 50})
	assert.ErrorIs(t, err, domain.ErrInvalidContract)
}

func TestSubmit_RecordsReadingAndUpdatesCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createCustomer(t, "C-001")

	resp, err := f.svc.Submit(ctx, domain.SubmitReadingRequest{Contract: "C-001", Value: 120})
	require.NoError(t, err)

	require.NotNil(t, resp.Customer.CurrentReading)
	assert.Equal(t, float64(120), *resp.Customer.CurrentReading)
	require.NotNil(t, resp.Customer.LastReadingDate)
	assert.False(t, resp.RouteUpdated)
	require.Len(t, resp.RecentReadings, 1)
	assert.Equal(t, float64(120), resp.RecentReadings[0].Value)

	var count int64
	require.NoError(t, f.db.Raw(`SELECT COUNT(*) FROM readings`).Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmit_CompletesActiveRouteAssignment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.createCustomer(t, "C-001")

	route := &routedomain.Route{
		ID:        f.genID.Generate(),
		Name:      "Enero",
		Active:    true,
		CreatedAt: f.clock.Now(),
	}
	require.NoError(t, f.routes.InsertRoute(ctx, f.db, route))
	require.NoError(t, f.routes.InsertAssignment(ctx, f.db, &routedomain.Assignment{
		ID:         f.genID.Generate(),
		RouteID:    route.ID,
		CustomerID: customer.ID,
		Sequence:   1,
	}))

	resp, err := f.svc.Submit(ctx, domain.SubmitReadingRequest{Contract: "C-001", Value: 88})
	require.NoError(t, err)
	assert.True(t, resp.RouteUpdated)

	_, completed, err := f.routes.CountAssignments(ctx, f.db, route.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	// A second submission has nothing left to flip.
	resp, err = f.svc.Submit(ctx, domain.SubmitReadingRequest{Contract: "C-001", Value: 90})
	require.NoError(t, err)
	assert.False(t, resp.RouteUpdated)
}

func TestSubmit_IgnoresInactiveRoutes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.createCustomer(t, "C-001")

	finalized := f.clock.Now()
	route := &routedomain.Route{
		ID:          f.genID.Generate(),
		Name:        "Diciembre",
		Active:      false,
		CreatedAt:   f.clock.Now(),
		FinalizedAt: &finalized,
	}
	require.NoError(t, f.routes.InsertRoute(ctx, f.db, route))
	require.NoError(t, f.routes.InsertAssignment(ctx, f.db, &routedomain.Assignment{
		ID:         f.genID.Generate(),
		RouteID:    route.ID,
		CustomerID: customer.ID,
		Sequence:   1,
	}))

	resp, err := f.svc.Submit(ctx, domain.SubmitReadingRequest{Contract: "C-001", Value: 42})
	require.NoError(t, err)
	assert.False(t, resp.RouteUpdated)
}

func TestHistory_MostRecentFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createCustomer(t, "C-001")

	for i := 1; i <= 8; i++ {
		_, err := f.svc.Submit(ctx, domain.SubmitReadingRequest{
			Contract: "C-001",
			Value:    float64(i * 10),
		})
		require.NoError(t, err)
		f.clock.Advance(24 * time.Hour)
	}

	history, err := f.svc.History(ctx, domain.HistoryRequest{Contract: "C-001"})
	require.NoError(t, err)
	require.Len(t, history, domain.RecentReadingsLimit)
	assert.Equal(t, float64(80), history[0].Value)
	assert.Equal(t, float64(30), history[len(history)-1].Value)

	_, err = f.svc.History(ctx, domain.HistoryRequest{Contract: "missing"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
