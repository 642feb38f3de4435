package domain

import (
	"errors"
	"strings"
)

// Status is the lifecycle label of an invoice.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Category groups statuses for rendering purposes only.
type Category string

const (
	CategoryInfo     Category = "info"
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
)

// ErrUnknownStatus is returned for any value outside the four known
// variants. Unrecognized statuses fail loudly instead of rendering a
// silent default.
var ErrUnknownStatus = errors.New("unknown_status")

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue:
		return status, nil
	default:
		return "", ErrUnknownStatus
	}
}

// Label returns the capitalized display text for the status.
func (s Status) Label() (string, error) {
	switch s {
	case StatusDraft:
		return "Draft", nil
	case StatusPending:
		return "Pending", nil
	case StatusPaid:
		return "Paid", nil
	case StatusOverdue:
		return "Overdue", nil
	default:
		return "", ErrUnknownStatus
	}
}

// Category returns the visual grouping of the status.
func (s Status) Category() (Category, error) {
	switch s {
	case StatusDraft, StatusPending:
		return CategoryInfo, nil
	case StatusPaid:
		return CategoryPositive, nil
	case StatusOverdue:
		return CategoryNegative, nil
	default:
		return "", ErrUnknownStatus
	}
}
