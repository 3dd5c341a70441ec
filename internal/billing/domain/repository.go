package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// NextInvoiceNumber increments the shared counter under a row lock and
	// returns the new value. Callers must run it inside a transaction.
	NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	InsertInvoice(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByNumber(ctx context.Context, db *gorm.DB, number int64) (*Invoice, error)
	// FindLatestByCustomer returns the customer's highest-numbered invoice,
	// or nil when none has been issued.
	FindLatestByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*Invoice, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]Invoice, error)
}
