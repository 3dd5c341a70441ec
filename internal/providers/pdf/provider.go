package pdf

import (
	"context"
	"time"
)

// HistoryEntry is one ledger row shown on the bill.
type HistoryEntry struct {
	Date  time.Time
	Value float64
}

// InvoiceDocument carries everything the renderer needs. Amounts arrive
// already rounded; the renderer only formats.
type InvoiceDocument struct {
	InvoiceNumber int64
	Contract      string
	CustomerName  string
	Address       string
	Zone          string

	EmissionDate time.Time
	PeriodStart  time.Time
	PeriodEnd    time.Time

	PreviousReading *float64
	CurrentReading  *float64
	Consumption     float64

	UnitRate        float64
	ConsumptionCost int64

	Credit                  float64
	CreditDescription       string
	ExtraCharges            float64
	ExtraChargesDescription string

	Total int64

	History []HistoryEntry
}

type Provider interface {
	RenderInvoice(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
