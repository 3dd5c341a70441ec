package domain

import (
	"context"
	"errors"
	"time"

	customerdomain "github.com/acueductoapp/acueducto/internal/customer/domain"
)

// RecentReadingsLimit is how many ledger rows the field display shows
// after a submission.
const RecentReadingsLimit = 6

type SubmitReadingRequest struct {
	Contract string
	Value    float64
	// Date defaults to today when zero.
	Date time.Time
}

type SubmitReadingResponse struct {
	Customer       customerdomain.Customer `json:"customer"`
	RecentReadings []Reading               `json:"recent_readings"`
	// RouteUpdated reports whether an active route assignment was marked
	// complete as part of this submission.
	RouteUpdated bool `json:"route_updated"`
}

type HistoryRequest struct {
	Contract string
	Limit    int
}

type Service interface {
	Submit(context.Context, SubmitReadingRequest) (SubmitReadingResponse, error)
	History(context.Context, HistoryRequest) ([]Reading, error)
}

var (
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrInvalidContract  = errors.New("invalid_contract")
)
