package service

import (
	"context"
	"strings"

	"github.com/acueductoapp/acueducto/internal/clock"
	"github.com/acueductoapp/acueducto/internal/observability/metrics"
	"github.com/acueductoapp/acueducto/internal/route/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Metrics *metrics.Metrics
	Repo    domain.Repository
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	genID   *snowflake.Node
	metrics *metrics.Metrics
	repo    domain.Repository
}

func New(p Params) domain.Service {
	return &service{
		db:      p.DB,
		log:     p.Log.Named("route.service"),
		clock:   p.Clock,
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    p.Repo,
	}
}

// Create opens a new active route. Any routes still active are finalized in
// the same transaction so a crash never leaves two active routes behind.
func (s *service) Create(ctx context.Context, req domain.CreateRouteRequest) (domain.Route, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.Route{}, domain.ErrInvalidName
	}
	if len(req.Stops) == 0 {
		return domain.Route{}, domain.ErrNoStops
	}

	stops := make([]domain.Assignment, 0, len(req.Stops))
	for _, stop := range req.Stops {
		customerID, err := snowflake.ParseString(stop.CustomerID)
		if err != nil {
			return domain.Route{}, domain.ErrInvalidID
		}
		stops = append(stops, domain.Assignment{
			ID:         s.genID.Generate(),
			CustomerID: customerID,
			Sequence:   stop.Sequence,
		})
	}

	now := s.clock.Now()
	route := domain.Route{
		ID:        s.genID.Generate(),
		Name:      req.Name,
		Active:    true,
		CreatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := s.repo.ListActive(ctx, tx)
		if err != nil {
			return err
		}
		for _, prev := range active {
			if err := s.repo.Deactivate(ctx, tx, prev.ID, now); err != nil {
				return err
			}
		}
		if err := s.repo.InsertRoute(ctx, tx, &route); err != nil {
			return err
		}
		for i := range stops {
			stops[i].RouteID = route.ID
			if err := s.repo.InsertAssignment(ctx, tx, &stops[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("create route", zap.Error(err))
		return domain.Route{}, err
	}

	s.metrics.RecordRouteCreated()
	s.log.Info("route created",
		zap.String("route_id", route.ID.String()),
		zap.Int("stops", len(stops)),
	)
	return route, nil
}

// Finalize closes a route early. Routes with pending assignments are
// rejected untouched.
func (s *service) Finalize(ctx context.Context, id string) (domain.Route, error) {
	routeID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.Route{}, domain.ErrInvalidID
	}

	var finalized domain.Route
	var transitioned bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		route, err := s.repo.FindByID(ctx, tx, routeID)
		if err != nil {
			return err
		}
		if route == nil {
			return domain.ErrNotFound
		}
		if !route.Active {
			finalized = *route
			return nil
		}
		total, completed, err := s.repo.CountAssignments(ctx, tx, routeID)
		if err != nil {
			return err
		}
		if completed < total {
			return domain.ErrPendingReadings
		}
		now := s.clock.Now()
		if err := s.repo.Deactivate(ctx, tx, routeID, now); err != nil {
			return err
		}
		route.Active = false
		route.FinalizedAt = &now
		finalized = *route
		transitioned = true
		return nil
	})
	if err != nil {
		return domain.Route{}, err
	}

	if transitioned {
		s.metrics.RecordRouteFinalized()
		s.log.Info("route finalized", zap.String("route_id", finalized.ID.String()))
	}
	return finalized, nil
}

func (s *service) Get(ctx context.Context, id string) (domain.RouteDetail, error) {
	routeID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.RouteDetail{}, domain.ErrInvalidID
	}
	route, err := s.repo.FindByID(ctx, s.db, routeID)
	if err != nil {
		return domain.RouteDetail{}, err
	}
	if route == nil {
		return domain.RouteDetail{}, domain.ErrNotFound
	}
	return s.detail(ctx, *route)
}

func (s *service) GetActive(ctx context.Context) (domain.RouteDetail, error) {
	active, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return domain.RouteDetail{}, err
	}
	if len(active) == 0 {
		return domain.RouteDetail{}, domain.ErrNoActiveRoute
	}
	return s.detail(ctx, active[len(active)-1])
}

func (s *service) List(ctx context.Context) ([]domain.Route, error) {
	return s.repo.List(ctx, s.db)
}

func (s *service) NextPending(ctx context.Context, id string) (domain.AssignmentStop, error) {
	routeID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.AssignmentStop{}, domain.ErrInvalidID
	}
	route, err := s.repo.FindByID(ctx, s.db, routeID)
	if err != nil {
		return domain.AssignmentStop{}, err
	}
	if route == nil {
		return domain.AssignmentStop{}, domain.ErrNotFound
	}
	stop, err := s.repo.FirstPending(ctx, s.db, routeID)
	if err != nil {
		return domain.AssignmentStop{}, err
	}
	if stop == nil {
		return domain.AssignmentStop{}, domain.ErrRouteComplete
	}
	return *stop, nil
}

func (s *service) detail(ctx context.Context, route domain.Route) (domain.RouteDetail, error) {
	stops, err := s.repo.ListStops(ctx, s.db, route.ID)
	if err != nil {
		return domain.RouteDetail{}, err
	}
	total, completed, err := s.repo.CountAssignments(ctx, s.db, route.ID)
	if err != nil {
		return domain.RouteDetail{}, err
	}
	completion := 0
	if total > 0 {
		completion = int(completed * 100 / total)
	}
	return domain.RouteDetail{
		Route:      route,
		Stops:      stops,
		Completion: completion,
	}, nil
}
