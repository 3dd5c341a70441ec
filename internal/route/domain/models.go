package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Route is an ordered field-visit worklist for reading collection. At most
// one route is active at any time; creating a new route deactivates the
// rest, preserving their history.
type Route struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Active      bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	FinalizedAt *time.Time   `json:"finalized_at,omitempty"`
}

// Assignment pairs a route with one customer at a sequence position.
// Sequence values come verbatim from the caller and are unique per route.
type Assignment struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	RouteID    snowflake.ID `gorm:"not null;index" json:"route_id"`
	CustomerID snowflake.ID `gorm:"not null;index" json:"customer_id"`
	Sequence   int          `gorm:"not null" json:"sequence"`
	Completed  bool         `gorm:"not null;default:false" json:"completed"`
}

// AssignmentStop is an assignment joined with the customer fields a field
// operator needs on the clipboard.
type AssignmentStop struct {
	Assignment
	Contract string `json:"contract"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Address  string `json:"address"`
	Zone     string `json:"zone"`
}
