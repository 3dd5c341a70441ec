package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Reading is one observed meter value. The ledger is append-only: the
// application exposes no update or delete path for rows once written.
type Reading struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID `gorm:"not null;index" json:"customer_id"`
	Value       float64      `gorm:"not null" json:"value"`
	ReadingDate time.Time    `gorm:"not null" json:"reading_date"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
