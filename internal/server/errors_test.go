package server

import (
	"errors"
	"net/http"
	"testing"

	billingdomain "github.com/acueductoapp/acueducto/internal/billing/domain"
	customerdomain "github.com/acueductoapp/acueducto/internal/customer/domain"
	routedomain "github.com/acueductoapp/acueducto/internal/route/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		etype  string
	}{
		{"validation errors struct", newValidationError("date", "invalid_date", "invalid date"), http.StatusBadRequest, "validation_error"},
		{"invalid contract", customerdomain.ErrInvalidContract, http.StatusBadRequest, "validation_error"},
		{"empty route stops", routedomain.ErrNoStops, http.StatusBadRequest, "validation_error"},
		{"invalid period", billingdomain.ErrInvalidPeriod, http.StatusBadRequest, "validation_error"},
		{"customer not found", customerdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"no active route", routedomain.ErrNoActiveRoute, http.StatusNotFound, "not_found"},
		{"duplicate contract", customerdomain.ErrContractExists, http.StatusConflict, "conflict"},
		{"duplicate email", customerdomain.ErrEmailExists, http.StatusConflict, "conflict"},
		{"pending readings", routedomain.ErrPendingReadings, http.StatusConflict, "conflict"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.etype, payload.Type)
		})
	}
}
