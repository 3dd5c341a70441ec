package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/acueductoapp/acueducto/internal/billing/domain"
	"github.com/acueductoapp/acueducto/internal/clock"
	"github.com/acueductoapp/acueducto/internal/config"
	customerdomain "github.com/acueductoapp/acueducto/internal/customer/domain"
	"github.com/acueductoapp/acueducto/internal/format"
	"github.com/acueductoapp/acueducto/internal/observability/metrics"
	"github.com/acueductoapp/acueducto/internal/providers/email"
	"github.com/acueductoapp/acueducto/internal/providers/pdf"
	readingdomain "github.com/acueductoapp/acueducto/internal/reading/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Config    config.Config
	Clock     clock.Clock
	GenID     *snowflake.Node
	Metrics   *metrics.Metrics
	Repo      domain.Repository
	Customers customerdomain.Repository
	Readings  readingdomain.Repository
	PDF       pdf.Provider
	Email     email.Provider
}

type service struct {
	db        *gorm.DB
	log       *zap.Logger
	unitRate  float64
	clock     clock.Clock
	genID     *snowflake.Node
	metrics   *metrics.Metrics
	repo      domain.Repository
	customers customerdomain.Repository
	readings  readingdomain.Repository
	pdf       pdf.Provider
	email     email.Provider
}

func New(p Params) domain.Service {
	return &service{
		db:        p.DB,
		log:       p.Log.Named("billing.service"),
		unitRate:  p.Config.UnitRate,
		clock:     p.Clock,
		genID:     p.GenID,
		metrics:   p.Metrics,
		repo:      p.Repo,
		customers: p.Customers,
		readings:  p.Readings,
		pdf:       p.PDF,
		email:     p.Email,
	}
}

// Issue snapshots the customer's current state into a numbered invoice.
// The number comes from the shared counter under a row lock, so concurrent
// issues never collide or leave gaps.
func (s *service) Issue(ctx context.Context, req domain.IssueInvoiceRequest) (domain.Invoice, error) {
	contract := strings.TrimSpace(req.Contract)
	if contract == "" {
		return domain.Invoice{}, domain.ErrInvalidContract
	}
	if err := validatePeriod(req.Period); err != nil {
		return domain.Invoice{}, err
	}

	var invoice domain.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.customers.FindByContract(ctx, tx, contract)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		previous, err := s.previousReading(ctx, tx, customer)
		if err != nil {
			return err
		}

		calc := domain.Calculate(domain.CalculationInput{
			CurrentReading:  customer.CurrentReading,
			PreviousReading: previous,
			UnitRate:        s.unitRate,
			Credit:          customer.Credit,
			ExtraCharges:    customer.ExtraCharges,
		})

		number, err := s.repo.NextInvoiceNumber(ctx, tx)
		if err != nil {
			return err
		}

		invoice = domain.Invoice{
			ID:              s.genID.Generate(),
			InvoiceNumber:   number,
			CustomerID:      customer.ID,
			Contract:        customer.Contract,
			CustomerName:    strings.TrimSpace(customer.Name + " " + customer.LastName),
			Address:         customer.Address,
			Zone:            customer.Zone,
			EmissionDate:    s.clock.Now(),
			PeriodStart:     req.Period.Start,
			PeriodEnd:       req.Period.End,
			PreviousReading: previous,
			CurrentReading:  customer.CurrentReading,
			Consumption:     calc.Consumption,
			UnitRate:        s.unitRate,
			ConsumptionCost: calc.ConsumptionCost,
			Credit:          customer.Credit,
			ExtraCharges:    customer.ExtraCharges,
			Total:           calc.Total,
			CreatedAt:       s.clock.Now(),
		}
		return s.repo.InsertInvoice(ctx, tx, &invoice)
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.RecordInvoiceIssued()
	s.log.Info("invoice issued",
		zap.Int64("invoice_number", invoice.InvoiceNumber),
		zap.String("contract", invoice.Contract),
	)
	return invoice, nil
}

func (s *service) GetByNumber(ctx context.Context, number int64) (domain.Invoice, error) {
	invoice, err := s.repo.FindByNumber(ctx, s.db, number)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return *invoice, nil
}

func (s *service) ListForContract(ctx context.Context, contract string) ([]domain.Invoice, error) {
	contract = strings.TrimSpace(contract)
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

	return s.repo.ListByCustomer(ctx, s.db, customer.ID)
}

func (s *service) NextInvoiceNumber(ctx context.Context) (int64, error) {
	var number int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		number, err = s.repo.NextInvoiceNumber(ctx, tx)
		return err
	})
	return number, err
}

func (s *service) RenderPDF(ctx context.Context, req domain.RenderInvoiceRequest) ([]byte, error) {
	contract := strings.TrimSpace(req.Contract)
	if contract == "" {
		return nil, domain.ErrInvalidContract
	}
	if err := validatePeriod(req.Period); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByContract(ctx, s.db, contract)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	return s.render(ctx, customer, req.Period)
}

// EmailInvoice renders the bill and mails it as a PDF attachment. Delivery
// failures surface to the caller; nothing is retried.
func (s *service) EmailInvoice(ctx context.Context, req domain.EmailInvoiceRequest) error {
	contract := strings.TrimSpace(req.Contract)
	if contract == "" {
		return domain.ErrInvalidContract
	}
	if err := validatePeriod(req.Period); err != nil {
		return err
	}

	customer, err := s.customers.FindByContract(ctx, s.db, contract)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrCustomerNotFound
	}
	if customer.Email == nil {
		return domain.ErrNoRecipient
	}

	rendered, err := s.render(ctx, customer, req.Period)
	if err != nil {
		return err
	}

	msg := email.Message{
		To:      *customer.Email,
		Subject: fmt.Sprintf("Factura de acueducto, contrato %s", customer.Contract),
		Body: fmt.Sprintf(
			"Estimado usuario,\n\nAdjuntamos su factura del período %s.\n\nAcueducto",
			format.Period(req.Period.Start, req.Period.End),
		),
		AttachmentName: fmt.Sprintf("factura_%s.pdf", customer.Contract),
		Attachment:     rendered,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.log.Error("email invoice",
			zap.String("contract", customer.Contract),
			zap.Error(err),
		)
		return err
	}

	s.log.Info("invoice emailed", zap.String("contract", customer.Contract))
	return nil
}

// BulkExport renders every customer's bill into one zip archive. A render
// failure for one customer is recorded and the batch continues.
func (s *service) BulkExport(ctx context.Context, req domain.BulkExportRequest) (domain.BulkExportResult, error) {
	if err := validatePeriod(req.Period); err != nil {
		return domain.BulkExportResult{}, err
	}

	customers, err := s.customers.ListAll(ctx, s.db)
	if err != nil {
		return domain.BulkExportResult{}, err
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	result := domain.BulkExportResult{}

	for _, customer := range customers {
		rendered, err := s.render(ctx, customer, req.Period)
		if err != nil {
			s.metrics.RecordRenderFailure()
			s.log.Warn("bulk export render",
				zap.String("contract", customer.Contract),
				zap.Error(err),
			)
			result.Failures = append(result.Failures, domain.ExportFailure{
				Contract: customer.Contract,
				Error:    err.Error(),
			})
			continue
		}

		entry, err := archive.Create(fmt.Sprintf("factura_%s.pdf", customer.Contract))
		if err != nil {
			return domain.BulkExportResult{}, err
		}
		if _, err := entry.Write(rendered); err != nil {
			return domain.BulkExportResult{}, err
		}
		result.Exported++
	}

	if err := archive.Close(); err != nil {
		return domain.BulkExportResult{}, err
	}

	result.Archive = buf.Bytes()
	s.log.Info("bulk export finished",
		zap.Int("exported", result.Exported),
		zap.Int("failures", len(result.Failures)),
	)
	return result, nil
}

func (s *service) render(ctx context.Context, customer *customerdomain.Customer, period domain.Period) ([]byte, error) {
	history, err := s.readings.ListByCustomer(ctx, s.db, customer.ID, readingdomain.RecentReadingsLimit)
	if err != nil {
		return nil, err
	}

	latest, err := s.repo.FindLatestByCustomer(ctx, s.db, customer.ID)
	if err != nil {
		return nil, err
	}

	previous := previousFromHistory(history)
	calc := domain.Calculate(domain.CalculationInput{
		CurrentReading:  customer.CurrentReading,
		PreviousReading: previous,
		UnitRate:        s.unitRate,
		Credit:          customer.Credit,
		ExtraCharges:    customer.ExtraCharges,
	})

	doc := pdf.InvoiceDocument{
		Contract:                customer.Contract,
		CustomerName:            strings.TrimSpace(customer.Name + " " + customer.LastName),
		Address:                 customer.Address,
		Zone:                    customer.Zone,
		EmissionDate:            s.clock.Now(),
		PeriodStart:             period.Start,
		PeriodEnd:               period.End,
		PreviousReading:         previous,
		CurrentReading:          customer.CurrentReading,
		Consumption:             calc.Consumption,
		UnitRate:                s.unitRate,
		ConsumptionCost:         calc.ConsumptionCost,
		Credit:                  customer.Credit,
		CreditDescription:       customer.CreditDescription,
		ExtraCharges:            customer.ExtraCharges,
		ExtraChargesDescription: customer.ExtraChargesDescription,
		Total:                   calc.Total,
	}
	if latest != nil {
		doc.InvoiceNumber = latest.InvoiceNumber
	}
	for _, reading := range history {
		doc.History = append(doc.History, pdf.HistoryEntry{
			Date:  reading.ReadingDate,
			Value: reading.Value,
		})
	}

	return s.pdf.RenderInvoice(ctx, doc)
}

func (s *service) previousReading(ctx context.Context, db *gorm.DB, customer *customerdomain.Customer) (*float64, error) {
	history, err := s.readings.ListByCustomer(ctx, db, customer.ID, 2)
	if err != nil {
		return nil, err
	}
	return previousFromHistory(history), nil
}

// previousFromHistory picks the reading before the latest one; the latest
// is the customer's current reading.
func previousFromHistory(history []readingdomain.Reading) *float64 {
	if len(history) < 2 {
		return nil
	}
	value := history[1].Value
	return &value
}

func validatePeriod(period domain.Period) error {
	if period.Start.IsZero() || period.End.IsZero() || period.End.Before(period.Start) {
		return domain.ErrInvalidPeriod
	}
	return nil
}
