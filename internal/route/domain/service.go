package domain

import (
	"context"
	"errors"
)

type RouteStop struct {
	CustomerID string `json:"customer_id"`
	Sequence   int    `json:"sequence"`
}

type CreateRouteRequest struct {
	Name  string
	Stops []RouteStop
}

type RouteDetail struct {
	Route Route            `json:"route"`
	Stops []AssignmentStop `json:"stops"`
	// Completion is a truncated integer percentage, 0 when the route has
	// no assignments.
	Completion int `json:"completion"`
}

type Service interface {
	Create(context.Context, CreateRouteRequest) (Route, error)
	Finalize(ctx context.Context, id string) (Route, error)
	Get(ctx context.Context, id string) (RouteDetail, error)
	GetActive(ctx context.Context) (RouteDetail, error)
	List(ctx context.Context) ([]Route, error)
	NextPending(ctx context.Context, id string) (AssignmentStop, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrNoStops         = errors.New("no_stops")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrNoActiveRoute   = errors.New("no_active_route")
	ErrPendingReadings = errors.New("pending_readings")
	ErrRouteComplete   = errors.New("route_complete")
)
