package repository

import (
	"context"
	"time"

	"github.com/acueductoapp/acueducto/internal/reading/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reading *domain.Reading) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO readings (id, customer_id, value, reading_date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		reading.ID,
		reading.CustomerID,
		reading.Value,
		reading.ReadingDate,
		reading.CreatedAt,
	).Error
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID, limit int) ([]domain.Reading, error) {
	var readings []domain.Reading
	stmt := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, value, reading_date, created_at
		 FROM readings
		 WHERE customer_id = ?
		 ORDER BY reading_date DESC, created_at DESC
		 LIMIT ?`,
		customerID,
		limit,
	)
	if err := stmt.Scan(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) UpdateCustomerReading(ctx context.Context, db *gorm.DB, customerID snowflake.ID, value float64, date time.Time, updatedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE customers
		 SET current_reading = ?, last_reading_date = ?, updated_at = ?
		 WHERE id = ?`,
		value,
		date,
		updatedAt,
		customerID,
	).Error
}
