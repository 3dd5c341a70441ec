package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryResidential Category = "residential"
	CategoryCommercial  Category = "commercial"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryResidential, CategoryCommercial:
		return true
	default:
		return false
	}
}

// Customer is one metered service contract. Contract codes are immutable
// and globally unique; meter numbers are unique only when present.
type Customer struct {
	ID                      snowflake.ID      `gorm:"primaryKey" json:"id"`
	Contract                string            `gorm:"not null;uniqueIndex" json:"contract"`
	MeterNumber             *string           `json:"meter_number,omitempty"`
	Name                    string            `gorm:"not null" json:"name"`
	LastName                string            `json:"last_name"`
	Email                   *string           `json:"email,omitempty"`
	Phone                   string            `json:"phone"`
	Address                 string            `json:"address"`
	Zone                    string            `json:"zone"`
	Category                Category          `gorm:"not null;default:residential" json:"category"`
	CurrentReading          *float64          `json:"current_reading,omitempty"`
	LastReadingDate         *time.Time        `json:"last_reading_date,omitempty"`
	Credit                  float64           `gorm:"not null;default:0" json:"credit"`
	CreditDescription       string            `json:"credit_description"`
	ExtraCharges            float64           `gorm:"not null;default:0" json:"extra_charges"`
	ExtraChargesDescription string            `json:"extra_charges_description"`
	Metadata                datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt               time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt               time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
