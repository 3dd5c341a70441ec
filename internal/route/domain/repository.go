package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertRoute(ctx context.Context, db *gorm.DB, route *Route) error
	InsertAssignment(ctx context.Context, db *gorm.DB, assignment *Assignment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Route, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]Route, error)
	List(ctx context.Context, db *gorm.DB) ([]Route, error)
	// Deactivate stamps one route inactive with its own finalization time.
	Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
	ListStops(ctx context.Context, db *gorm.DB, routeID snowflake.ID) ([]AssignmentStop, error)
	CountAssignments(ctx context.Context, db *gorm.DB, routeID snowflake.ID) (total int64, completed int64, err error)
	// CompleteForCustomer flips the assignment flag for the customer on the
	// currently active route, if any. Reports whether a row changed.
	CompleteForCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (bool, error)
	FirstPending(ctx context.Context, db *gorm.DB, routeID snowflake.ID) (*AssignmentStop, error)
}
