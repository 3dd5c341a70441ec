package domain

import (
	"context"
	"errors"
	"time"
)

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type IssueInvoiceRequest struct {
	Contract string
	Period   Period
}

type RenderInvoiceRequest struct {
	Contract string
	Period   Period
}

type EmailInvoiceRequest struct {
	Contract string
	Period   Period
}

type BulkExportRequest struct {
	Period Period
}

// ExportFailure records one customer whose bill could not be rendered.
type ExportFailure struct {
	Contract string `json:"contract"`
	Error    string `json:"error"`
}

type BulkExportResult struct {
	Archive  []byte
	Exported int
	Failures []ExportFailure
}

type Service interface {
	Issue(context.Context, IssueInvoiceRequest) (Invoice, error)
	GetByNumber(ctx context.Context, number int64) (Invoice, error)
	ListForContract(ctx context.Context, contract string) ([]Invoice, error)
	NextInvoiceNumber(ctx context.Context) (int64, error)
	RenderPDF(context.Context, RenderInvoiceRequest) ([]byte, error)
	EmailInvoice(context.Context, EmailInvoiceRequest) error
	BulkExport(context.Context, BulkExportRequest) (BulkExportResult, error)
}

var (
	ErrInvalidContract  = errors.New("invalid_contract")
	ErrInvalidPeriod    = errors.New("invalid_period")
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrNoRecipient      = errors.New("no_recipient")
)
