package repository

import (
	"context"
	"time"

	"github.com/acueductoapp/acueducto/internal/route/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertRoute(ctx context.Context, db *gorm.DB, route *domain.Route) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO routes (id, name, active, created_at, finalized_at)
		 VALUES (?, ?, ?, ?, ?)`,
		route.ID,
		route.Name,
		route.Active,
		route.CreatedAt,
		route.FinalizedAt,
	).Error
}

func (r *repo) InsertAssignment(ctx context.Context, db *gorm.DB, assignment *domain.Assignment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO route_assignments (id, route_id, customer_id, sequence, completed)
		 VALUES (?, ?, ?, ?, ?)`,
		assignment.ID,
		assignment.RouteID,
		assignment.CustomerID,
		assignment.Sequence,
		assignment.Completed,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Route, error) {
	var route domain.Route
	stmt := db.WithContext(ctx).Raw(
		`SELECT id, name, active, created_at, finalized_at FROM routes WHERE id = ?`,
		id,
	)
	if err := stmt.Scan(&route).Error; err != nil {
		return nil, err
	}
	if route.ID == 0 {
		return nil, nil
	}
	return &route, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]domain.Route, error) {
	var routes []domain.Route
	stmt := db.WithContext(ctx).Raw(
		`SELECT id, name, active, created_at, finalized_at
		 FROM routes
		 WHERE active = ?
		 ORDER BY created_at ASC`,
		true,
	)
	if err := stmt.Scan(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Route, error) {
	var routes []domain.Route
	stmt := db.WithContext(ctx).Raw(
		`SELECT id, name, active, created_at, finalized_at
		 FROM routes
		 ORDER BY created_at DESC`,
	)
	if err := stmt.Scan(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *repo) Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE routes SET active = ?, finalized_at = ? WHERE id = ?`,
		false,
		at,
		id,
	).Error
}

func (r *repo) ListStops(ctx context.Context, db *gorm.DB, routeID snowflake.ID) ([]domain.AssignmentStop, error) {
	var stops []domain.AssignmentStop
	stmt := db.WithContext(ctx).Raw(
		`SELECT ra.id, ra.route_id, ra.customer_id, ra.sequence, ra.completed,
		        c.contract, c.name, c.last_name, c.address, c.zone
		 FROM route_assignments ra
		 JOIN customers c ON c.id = ra.customer_id
		 WHERE ra.route_id = ?
		 ORDER BY ra.sequence ASC`,
		routeID,
	)
	if err := stmt.Scan(&stops).Error; err != nil {
		return nil, err
	}
	return stops, nil
}

func (r *repo) CountAssignments(ctx context.Context, db *gorm.DB, routeID snowflake.ID) (int64, int64, error) {
	var counts struct {
		Total     int64
		Completed int64
	}
	stmt := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS total,
		        COUNT(CASE WHEN completed THEN 1 END) AS completed
		 FROM route_assignments
		 WHERE route_id = ?`,
		routeID,
	)
	if err := stmt.Scan(&counts).Error; err != nil {
		return 0, 0, err
	}
	return counts.Total, counts.Completed, nil
}

func (r *repo) CompleteForCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE route_assignments
		 SET completed = ?
		 WHERE customer_id = ?
		   AND completed = ?
		   AND route_id IN (SELECT id FROM routes WHERE active = ?)`,
		true,
		customerID,
		false,
		true,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) FirstPending(ctx context.Context, db *gorm.DB, routeID snowflake.ID) (*domain.AssignmentStop, error) {
	var stop domain.AssignmentStop
	stmt := db.WithContext(ctx).Raw(
		`SELECT ra.id, ra.route_id, ra.customer_id, ra.sequence, ra.completed,
		        c.contract, c.name, c.last_name, c.address, c.zone
		 FROM route_assignments ra
		 JOIN customers c ON c.id = ra.customer_id
		 WHERE ra.route_id = ? AND ra.completed = ?
		 ORDER BY ra.sequence ASC
		 LIMIT 1`,
		routeID,
		false,
	)
	if err := stmt.Scan(&stop).Error; err != nil {
		return nil, err
	}
	if stop.Assignment.ID == 0 {
		return nil, nil
	}
	return &stop, nil
}
