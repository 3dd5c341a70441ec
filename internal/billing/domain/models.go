package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invoice is an immutable snapshot taken at issue time. Later edits to the
// customer never change an issued invoice.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceNumber int64        `gorm:"uniqueIndex;not null" json:"invoice_number"`
	CustomerID    snowflake.ID `gorm:"not null;index" json:"customer_id"`
	Contract      string       `gorm:"not null" json:"contract"`
	CustomerName  string       `gorm:"not null" json:"customer_name"`
	Address       string       `json:"address"`
	Zone          string       `json:"zone"`

	EmissionDate time.Time `gorm:"not null" json:"emission_date"`
	PeriodStart  time.Time `gorm:"not null" json:"period_start"`
	PeriodEnd    time.Time `gorm:"not null" json:"period_end"`

	PreviousReading *float64 `json:"previous_reading,omitempty"`
	CurrentReading  *float64 `json:"current_reading,omitempty"`
	Consumption     float64  `gorm:"not null" json:"consumption"`

	UnitRate        float64 `gorm:"not null" json:"unit_rate"`
	ConsumptionCost int64   `gorm:"not null" json:"consumption_cost"`
	Credit          float64 `gorm:"not null" json:"credit"`
	ExtraCharges    float64 `gorm:"not null" json:"extra_charges"`
	Total           int64   `gorm:"not null" json:"total"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
