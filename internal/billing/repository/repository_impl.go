package repository

import (
	"context"

	"github.com/acueductoapp/acueducto/internal/billing/domain"
	"github.com/acueductoapp/acueducto/internal/seed"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	if err := tx.WithContext(ctx).Exec(
		`INSERT INTO billing_config (key, last_invoice_number)
		 VALUES (?, 0)
		 ON CONFLICT (key) DO NOTHING`,
		seed.BillingConfigKey,
	).Error; err != nil {
		return 0, err
	}

	var last int64
	stmt := tx.WithContext(ctx).Raw(
		`SELECT last_invoice_number FROM billing_config WHERE key = ? FOR UPDATE`,
		seed.BillingConfigKey,
	)
	if err := stmt.Scan(&last).Error; err != nil {
		return 0, err
	}

	next := last + 1
	if err := tx.WithContext(ctx).Exec(
		`UPDATE billing_config SET last_invoice_number = ? WHERE key = ?`,
		next,
		seed.BillingConfigKey,
	).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func (r *repo) InsertInvoice(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoices (
			id, invoice_number, customer_id, contract, customer_name, address, zone,
			emission_date, period_start, period_end,
			previous_reading, current_reading, consumption,
			unit_rate, consumption_cost, credit, extra_charges, total, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.InvoiceNumber,
		invoice.CustomerID,
		invoice.Contract,
		invoice.CustomerName,
		invoice.Address,
		invoice.Zone,
		invoice.EmissionDate,
		invoice.PeriodStart,
		invoice.PeriodEnd,
		invoice.PreviousReading,
		invoice.CurrentReading,
		invoice.Consumption,
		invoice.UnitRate,
		invoice.ConsumptionCost,
		invoice.Credit,
		invoice.ExtraCharges,
		invoice.Total,
		invoice.CreatedAt,
	).Error
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, number int64) (*domain.Invoice, error) {
	var invoice domain.Invoice
	stmt := db.WithContext(ctx).Raw(
		`SELECT * FROM invoices WHERE invoice_number = ?`,
		number,
	)
	if err := stmt.Scan(&invoice).Error; err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) FindLatestByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	stmt := db.WithContext(ctx).Raw(
		`SELECT * FROM invoices WHERE customer_id = ? ORDER BY invoice_number DESC LIMIT 1`,
		customerID,
	)
	if err := stmt.Scan(&invoice).Error; err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	stmt := db.WithContext(ctx).Raw(
		`SELECT * FROM invoices WHERE customer_id = ? ORDER BY invoice_number DESC`,
		customerID,
	)
	if err := stmt.Scan(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
