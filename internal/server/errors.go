package server

import (
	"errors"
	"net/http"

	billingdomain "github.com/acueductoapp/acueducto/internal/billing/domain"
	customerdomain "github.com/acueductoapp/acueducto/internal/customer/domain"
	readingdomain "github.com/acueductoapp/acueducto/internal/reading/domain"
	routedomain "github.com/acueductoapp/acueducto/internal/route/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, customerdomain.ErrInvalidContract),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidCategory),
		errors.Is(err, readingdomain.ErrInvalidContract),
		errors.Is(err, routedomain.ErrInvalidName),
		errors.Is(err, routedomain.ErrNoStops),
		errors.Is(err, routedomain.ErrInvalidID),
		errors.Is(err, billingdomain.ErrInvalidContract),
		errors.Is(err, billingdomain.ErrInvalidPeriod),
		errors.Is(err, billingdomain.ErrNoRecipient):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, readingdomain.ErrCustomerNotFound),
		errors.Is(err, routedomain.ErrNotFound),
		errors.Is(err, routedomain.ErrNoActiveRoute),
		errors.Is(err, billingdomain.ErrCustomerNotFound),
		errors.Is(err, billingdomain.ErrInvoiceNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrContractExists),
		errors.Is(err, customerdomain.ErrMeterNumberExists),
		errors.Is(err, customerdomain.ErrEmailExists),
		errors.Is(err, routedomain.ErrPendingReadings),
		errors.Is(err, routedomain.ErrRouteComplete):
		return true
	default:
		return false
	}
}
