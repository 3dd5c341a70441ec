package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reading *Reading) error
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID, limit int) ([]Reading, error)
	// UpdateCustomerReading refreshes the denormalized snapshot kept on the
	// customer row whenever a reading is submitted.
	UpdateCustomerReading(ctx context.Context, db *gorm.DB, customerID snowflake.ID, value float64, date time.Time, updatedAt time.Time) error
}
