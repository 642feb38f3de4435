package server

import (
	"errors"
	"net/http"

	auditdomain "github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	authdomain "github.com/dillondm/Invoice-Managment-systems/internal/auth/domain"
	clientdomain "github.com/dillondm/Invoice-Managment-systems/internal/client/domain"
	dashboarddomain "github.com/dillondm/Invoice-Managment-systems/internal/dashboard/domain"
	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	settingsdomain "github.com/dillondm/Invoice-Managment-systems/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not_found")
	ErrRateLimited  = errors.New("rate_limited")
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

func newValidationError(field, code, message string) error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Field:   field,
		Message: message,
	}
}

func invalidRequestError() error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

// AbortWithError maps domain errors onto HTTP responses. Unrecognized
// errors become opaque 500s so internals never leak to clients.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	message := "internal error"

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, invoicedomain.ErrInvalidUser),
		errors.Is(err, clientdomain.ErrInvalidUser),
		errors.Is(err, authdomain.ErrInvalidUser),
		errors.Is(err, settingsdomain.ErrInvalidUser),
		errors.Is(err, dashboarddomain.ErrInvalidUser),
		errors.Is(err, auditdomain.ErrInvalidUser):
		status = http.StatusUnauthorized
		code = "unauthorized"
		message = "authentication required"

	case errors.Is(err, authdomain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = "invalid_credentials"
		message = "invalid email or password"

	case errors.Is(err, ErrRateLimited):
		status = http.StatusTooManyRequests
		code = "rate_limited"
		message = "too many attempts, try again later"

	case errors.Is(err, ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, invoicedomain.ErrItemNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound):
		status = http.StatusNotFound
		code = "not_found"
		message = "resource not found"

	case errors.Is(err, authdomain.ErrEmailTaken),
		errors.Is(err, settingsdomain.ErrEmailTaken):
		status = http.StatusConflict
		code = "email_taken"
		message = "email is already registered"

	case errors.Is(err, invoicedomain.ErrInvoiceNotDraft),
		errors.Is(err, invoicedomain.ErrInvoiceNotPending):
		status = http.StatusConflict
		code = err.Error()
		message = "invoice is not in the required status"

	case isValidationError(err):
		status = http.StatusBadRequest
		code = err.Error()
		message = "invalid request"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
		Status:  status,
		Code:    code,
		Message: message,
	}})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidClientName),
		errors.Is(err, invoicedomain.ErrInvalidIssueDate),
		errors.Is(err, invoicedomain.ErrInvalidDueDate),
		errors.Is(err, invoicedomain.ErrInvalidItemDescription),
		errors.Is(err, invoicedomain.ErrNoItems),
		errors.Is(err, invoicedomain.ErrUnknownStatus),
		errors.Is(err, clientdomain.ErrInvalidID),
		errors.Is(err, clientdomain.ErrInvalidName),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrWeakPassword),
		errors.Is(err, settingsdomain.ErrInvalidEmail):
		return true
	default:
		return false
	}
}
