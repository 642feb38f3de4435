package domain

import (
	"context"
	"errors"
)

type ProfileResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

// UpdateProfileRequest carries partial updates; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Timezone *string `json:"timezone"`
}

type CompanyResponse struct {
	CompanyName  string `json:"company_name"`
	CompanyEmail string `json:"company_email"`
	Address      string `json:"address"`
	TaxID        string `json:"tax_id"`
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
	FontFamily   string `json:"font_family"`
}

type UpdateCompanyRequest struct {
	CompanyName  *string `json:"company_name"`
	CompanyEmail *string `json:"company_email"`
	Address      *string `json:"address"`
	TaxID        *string `json:"tax_id"`
	LogoURL      *string `json:"logo_url"`
	PrimaryColor *string `json:"primary_color"`
	FontFamily   *string `json:"font_family"`
}

type NotificationsResponse struct {
	EmailOnSent    bool `json:"email_on_sent"`
	EmailOnPaid    bool `json:"email_on_paid"`
	EmailOnOverdue bool `json:"email_on_overdue"`
}

type UpdateNotificationsRequest struct {
	EmailOnSent    *bool `json:"email_on_sent"`
	EmailOnPaid    *bool `json:"email_on_paid"`
	EmailOnOverdue *bool `json:"email_on_overdue"`
}

// Service owns per-account preferences. Company and notification rows are
// created with defaults on first read.
type Service interface {
	Profile(ctx context.Context) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*ProfileResponse, error)
	Company(ctx context.Context) (*CompanyResponse, error)
	UpdateCompany(ctx context.Context, req UpdateCompanyRequest) (*CompanyResponse, error)
	Notifications(ctx context.Context) (*NotificationsResponse, error)
	UpdateNotifications(ctx context.Context, req UpdateNotificationsRequest) (*NotificationsResponse, error)
}

var (
	ErrInvalidUser  = errors.New("invalid_user")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrEmailTaken   = errors.New("email_taken")
)
