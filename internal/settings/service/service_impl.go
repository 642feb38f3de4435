package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/dillondm/Invoice-Managment-systems/internal/auth/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"github.com/dillondm/Invoice-Managment-systems/internal/settings/domain"
	"github.com/dillondm/Invoice-Managment-systems/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPrimaryColor = "#111827"
	defaultFontFamily   = "Inter"
)

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	users         repository.Repository[authdomain.User]
	company       repository.Repository[domain.CompanySettings]
	notifications repository.Repository[domain.NotificationSettings]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("settings.service"),
		genID:         p.GenID,
		users:         repository.ProvideStore[authdomain.User](p.DB),
		company:       repository.ProvideStore[domain.CompanySettings](p.DB),
		notifications: repository.ProvideStore[domain.NotificationSettings](p.DB),
	}
}

func (s *Service) Profile(ctx context.Context) (*domain.ProfileResponse, error) {
	user, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	return profileResponse(user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.ProfileResponse, error) {
	user, err := s.loadUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		at := strings.Index(email, "@")
		if at <= 0 || at == len(email)-1 {
			return nil, domain.ErrInvalidEmail
		}
		if email != user.Email {
			existing, err := s.users.FindOne(ctx, "email = ?", email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrEmailTaken
			}
			user.Email = email
		}
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Timezone != nil {
		user.Timezone = strings.TrimSpace(*req.Timezone)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return profileResponse(user), nil
}

func (s *Service) Company(ctx context.Context) (*domain.CompanyResponse, error) {
	row, err := s.loadCompany(ctx)
	if err != nil {
		return nil, err
	}
	return companyResponse(row), nil
}

func (s *Service) UpdateCompany(ctx context.Context, req domain.UpdateCompanyRequest) (*domain.CompanyResponse, error) {
	row, err := s.loadCompany(ctx)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		row.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.CompanyEmail != nil {
		row.CompanyEmail = strings.TrimSpace(*req.CompanyEmail)
	}
	if req.Address != nil {
		row.Address = strings.TrimSpace(*req.Address)
	}
	if req.TaxID != nil {
		row.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.LogoURL != nil {
		row.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.PrimaryColor != nil {
		row.PrimaryColor = strings.TrimSpace(*req.PrimaryColor)
	}
	if req.FontFamily != nil {
		row.FontFamily = strings.TrimSpace(*req.FontFamily)
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.company.Save(ctx, row); err != nil {
		return nil, err
	}
	return companyResponse(row), nil
}

func (s *Service) Notifications(ctx context.Context) (*domain.NotificationsResponse, error) {
	row, err := s.loadNotifications(ctx)
	if err != nil {
		return nil, err
	}
	return notificationsResponse(row), nil
}

func (s *Service) UpdateNotifications(ctx context.Context, req domain.UpdateNotificationsRequest) (*domain.NotificationsResponse, error) {
	row, err := s.loadNotifications(ctx)
	if err != nil {
		return nil, err
	}

	if req.EmailOnSent != nil {
		row.EmailOnSent = *req.EmailOnSent
	}
	if req.EmailOnPaid != nil {
		row.EmailOnPaid = *req.EmailOnPaid
	}
	if req.EmailOnOverdue != nil {
		row.EmailOnOverdue = *req.EmailOnOverdue
	}
	row.UpdatedAt = time.Now().UTC()

	if err := s.notifications.Save(ctx, row); err != nil {
		return nil, err
	}
	return notificationsResponse(row), nil
}

func (s *Service) loadUser(ctx context.Context) (*authdomain.User, error) {
	userID, _ := sessionctx.UserFromContext(ctx)
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	user, err := s.users.FindOne(ctx, "id = ?", userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidUser
	}
	return user, nil
}

func (s *Service) loadCompany(ctx context.Context) (*domain.CompanySettings, error) {
	userID, _ := sessionctx.UserFromContext(ctx)
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	row, err := s.company.FindOne(ctx, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	if row != nil {
		return row, nil
	}

	now := time.Now().UTC()
	row = &domain.CompanySettings{
		ID:           s.genID.Generate(),
		UserID:       userID,
		PrimaryColor: defaultPrimaryColor,
		FontFamily:   defaultFontFamily,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.company.Insert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) loadNotifications(ctx context.Context) (*domain.NotificationSettings, error) {
	userID, _ := sessionctx.UserFromContext(ctx)
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	row, err := s.notifications.FindOne(ctx, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	if row != nil {
		return row, nil
	}

	now := time.Now().UTC()
	row = &domain.NotificationSettings{
		ID:             s.genID.Generate(),
		UserID:         userID,
		EmailOnSent:    true,
		EmailOnPaid:    true,
		EmailOnOverdue: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.notifications.Insert(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func profileResponse(user *authdomain.User) *domain.ProfileResponse {
	return &domain.ProfileResponse{
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		Timezone: user.Timezone,
	}
}

func companyResponse(row *domain.CompanySettings) *domain.CompanyResponse {
	return &domain.CompanyResponse{
		CompanyName:  row.CompanyName,
		CompanyEmail: row.CompanyEmail,
		Address:      row.Address,
		TaxID:        row.TaxID,
		LogoURL:      row.LogoURL,
		PrimaryColor: row.PrimaryColor,
		FontFamily:   row.FontFamily,
	}
}

func notificationsResponse(row *domain.NotificationSettings) *domain.NotificationsResponse {
	return &domain.NotificationsResponse{
		EmailOnSent:    row.EmailOnSent,
		EmailOnPaid:    row.EmailOnPaid,
		EmailOnOverdue: row.EmailOnOverdue,
	}
}
