package service

import (
	"context"
	"strings"

	"github.com/acueductoapp/acueducto/internal/clock"
	customerdomain "github.com/acueductoapp/acueducto/internal/customer/domain"
	"github.com/acueductoapp/acueducto/internal/observability/metrics"
	"github.com/acueductoapp/acueducto/internal/reading/domain"
	routedomain "github.com/acueductoapp/acueducto/internal/route/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Metrics   *metrics.Metrics
	Repo      domain.Repository
	Customers customerdomain.Repository
	Routes    routedomain.Repository
}

type service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	metrics   *metrics.Metrics
	repo      domain.Repository
	customers customerdomain.Repository
	routes    routedomain.Repository
}

func New(p Params) domain.Service {
	return &service{
		db:        p.DB,
		log:       p.Log.Named("reading.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		metrics:   p.Metrics,
		repo:      p.Repo,
		customers: p.Customers,
		routes:    p.Routes,
	}
}

// Submit records a meter reading, advances the customer's current reading
// and checks off the matching stop on the active route, all in one
// transaction. An unknown contract leaves everything untouched.
func (s *service) Submit(ctx context.Context, req domain.SubmitReadingRequest) (domain.SubmitReadingResponse, error) {
	contract := strings.TrimSpace(req.Contract)
	if contract == "" {
		return domain.SubmitReadingResponse{}, domain.ErrInvalidContract
	}

	readingDate := req.Date
	if readingDate.IsZero() {
		readingDate = s.clock.Now()
	}

	var resp domain.SubmitReadingResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.customers.FindByContract(ctx, tx, contract)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		now := s.clock.Now()
		reading := domain.Reading{
			ID:          s.genID.Generate(),
			CustomerID:  customer.ID,
			Value:       req.Value,
			ReadingDate: readingDate,
			CreatedAt:   now,
		}
		if err := s.repo.Insert(ctx, tx, &reading); err != nil {
			return err
		}

		if err := s.repo.UpdateCustomerReading(ctx, tx, customer.ID, req.Value, readingDate, now); err != nil {
			return err
		}
		customer.CurrentReading = &req.Value
		customer.LastReadingDate = &readingDate
		customer.UpdatedAt = now

		updated, err := s.routes.CompleteForCustomer(ctx, tx, customer.ID)
		if err != nil {
			return err
		}

		recent, err := s.repo.ListByCustomer(ctx, tx, customer.ID, domain.RecentReadingsLimit)
		if err != nil {
			return err
		}

		resp = domain.SubmitReadingResponse{
			Customer:       *customer,
			RecentReadings: recent,
			RouteUpdated:   updated,
		}
		return nil
	})
	if err != nil {
		return domain.SubmitReadingResponse{}, err
	}

	s.metrics.RecordReadingSubmitted(resp.Customer.Zone)
	s.log.Info("reading submitted",
		zap.String("contract", contract),
		zap.Float64("value", req.Value),
		zap.Time("reading_date", readingDate),
		zap.Bool("route_updated", resp.RouteUpdated),
	)
	return resp, nil
}

func (s *service) History(ctx context.Context, req domain.HistoryRequest) ([]domain.Reading, error) {
	contract := strings.TrimSpace(req.Contract)
	if contract == "" {
		return nil, domain.ErrInvalidContract
	}

	customer, err := s.customers.FindByContract(ctx, s.db, contract)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	limit := req.Limit
	if limit <= 0 {
		limit = domain.RecentReadingsLimit
	}
	return s.repo.ListByCustomer(ctx, s.db, customer.ID, limit)
}
