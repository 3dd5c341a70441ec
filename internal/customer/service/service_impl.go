package service

import (
	"context"
	"strings"
	"time"

	"github.com/acueductoapp/acueducto/internal/clock"
	"github.com/acueductoapp/acueducto/internal/customer/domain"
	"github.com/acueductoapp/acueducto/pkg/db"
	"github.com/acueductoapp/acueducto/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	contract := strings.TrimSpace(req.Contract)
	if contract == "" {
		return domain.Customer{}, domain.ErrInvalidContract
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	category := domain.Category(strings.TrimSpace(req.Category))
	if category == "" {
		category = domain.CategoryResidential
	}
	if !category.Valid() {
		return domain.Customer{}, domain.ErrInvalidCategory
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:                      s.genID.Generate(),
		Contract:                contract,
		MeterNumber:             optionalString(req.MeterNumber),
		Name:                    name,
		LastName:                strings.TrimSpace(req.LastName),
		Email:                   optionalString(email),
		Phone:                   strings.TrimSpace(req.Phone),
		Address:                 strings.TrimSpace(req.Address),
		Zone:                    strings.TrimSpace(req.Zone),
		Category:                category,
		CurrentReading:          req.CurrentReading,
		LastReadingDate:         req.LastReadingDate,
		Credit:                  req.Credit,
		CreditDescription:       strings.TrimSpace(req.CreditDescription),
		ExtraCharges:            req.ExtraCharges,
		ExtraChargesDescription: strings.TrimSpace(req.ExtraChargesDescription),
		Metadata:                datatypes.JSONMap{},
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, classifyDuplicate(err)
		}
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) Update(ctx context.Context, contract string, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	contract = strings.TrimSpace(contract)
	if contract == "" {
		return domain.Customer{}, domain.ErrInvalidContract
	}

	existing, err := s.repo.FindByContract(ctx, s.db, contract)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	if req.MeterNumber != nil {
		existing.MeterNumber = optionalString(*req.MeterNumber)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		existing.Name = name
	}
	if req.LastName != nil {
		existing.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !strings.Contains(email, "@") {
			return domain.Customer{}, domain.ErrInvalidEmail
		}
		existing.Email = optionalString(email)
	}
	if req.Phone != nil {
		existing.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		existing.Address = strings.TrimSpace(*req.Address)
	}
	if req.Zone != nil {
		existing.Zone = strings.TrimSpace(*req.Zone)
	}
	if req.Category != nil {
		category := domain.Category(strings.TrimSpace(*req.Category))
		if !category.Valid() {
			return domain.Customer{}, domain.ErrInvalidCategory
		}
		existing.Category = category
	}
	if req.Credit != nil {
		existing.Credit = *req.Credit
	}
	if req.CreditDescription != nil {
		existing.CreditDescription = strings.TrimSpace(*req.CreditDescription)
	}
	if req.ExtraCharges != nil {
		existing.ExtraCharges = *req.ExtraCharges
	}
	if req.ExtraChargesDescription != nil {
		existing.ExtraChargesDescription = strings.TrimSpace(*req.ExtraChargesDescription)
	}
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, classifyDuplicate(err)
		}
		return domain.Customer{}, err
	}

	return *existing, nil
}

func (s *Service) GetByContract(ctx context.Context, contract string) (domain.Customer, error) {
	contract = strings.TrimSpace(contract)
	if contract == "" {
		return domain.Customer{}, domain.ErrInvalidContract
	}

	item, err := s.repo.FindByContract(ctx, s.db, contract)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	filter := domain.ListCustomerFilter{
		Search:   strings.TrimSpace(req.Search),
		Zone:     strings.TrimSpace(req.Zone),
		Category: strings.TrimSpace(req.Category),
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(customer *domain.Customer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        customer.ID.String(),
			CreatedAt: customer.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	resp := domain.ListCustomerResponse{Customers: customers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Delete(ctx context.Context, contract string) error {
	contract = strings.TrimSpace(contract)
	if contract == "" {
		return domain.ErrInvalidContract
	}

	affected, err := s.repo.Delete(ctx, s.db, contract)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("customer deleted", zap.String("contract", contract))
	return nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func classifyDuplicate(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "meter_number"):
		return domain.ErrMeterNumberExists
	case strings.Contains(msg, "email"):
		return domain.ErrEmailExists
	case strings.Contains(msg, "contract"):
		return domain.ErrContractExists
	default:
		return domain.ErrContractExists
	}
}
