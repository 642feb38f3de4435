package domain

import (
	"context"
	"errors"
	"time"
)

type Entry struct {
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
}

type EntryResponse struct {
	Action     string         `json:"action"`
	TargetType string         `json:"target_type,omitempty"`
	TargetID   string         `json:"target_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Service records account activity. Record never fails the caller's
// request; write failures are logged and swallowed.
type Service interface {
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, limit int) ([]EntryResponse, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
)
