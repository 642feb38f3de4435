package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/auth/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/auth/password"
	"github.com/dillondm/Invoice-Managment-systems/internal/cache"
	"github.com/dillondm/Invoice-Managment-systems/internal/config"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"github.com/dillondm/Invoice-Managment-systems/pkg/repository"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// resolveCacheTTL bounds how stale a revoked session can look. SignOut
// invalidates eagerly, so this only covers revocation from other nodes.
const resolveCacheTTL = time.Minute

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	users      repository.Repository[domain.User]
	sessions   repository.Repository[domain.Session]
	identities cache.Cache[string, domain.Identity]
	sessionTTL time.Duration
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Cfg   config.Config
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("auth.service"),
		genID:      p.GenID,
		users:      repository.ProvideStore[domain.User](p.DB),
		sessions:   repository.ProvideStore[domain.Session](p.DB),
		identities: cache.NewTTLCache[string, domain.Identity](),
		sessionTTL: p.Cfg.Session.TTL,
	}
}

func (s *Service) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.SessionResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	existing, err := s.users.FindOne(ctx, "email = ?", email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, &user); err != nil {
		return nil, err
	}
	s.log.Info("account created", zap.String("user_id", user.ID.String()))

	return s.startSession(ctx, &user)
}

func (s *Service) SignIn(ctx context.Context, req domain.SignInRequest) (*domain.SessionResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindOne(ctx, "email = ?", email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	s.identities.Delete(token)
	return s.sessions.Delete(ctx, "token = ?", token)
}

func (s *Service) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	if identity, ok := s.identities.Get(token); ok {
		return &identity, nil
	}

	session, err := s.sessions.FindOne(ctx, "token = ?", token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, "token = ?", token)
		return nil, domain.ErrSessionExpired
	}

	user, err := s.users.FindOne(ctx, "id = ?", session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrSessionNotFound
	}

	identity := domain.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}
	s.identities.Set(token, identity, resolveCacheTTL)
	return &identity, nil
}

func (s *Service) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) error {
	userID, _ := sessionctx.UserFromContext(ctx)
	if userID == 0 {
		return domain.ErrInvalidUser
	}
	if len(req.NewPassword) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	user, err := s.users.FindOne(ctx, "id = ?", userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidUser
	}
	if !password.Verify(req.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.log.Info("password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *Service) startSession(ctx context.Context, user *domain.User) (*domain.SessionResponse, error) {
	now := time.Now().UTC()
	session := domain.Session{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		UserAgent: sessionctx.UserAgentFromContext(ctx),
		IPAddress: sessionctx.IPAddressFromContext(ctx),
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Insert(ctx, &session); err != nil {
		return nil, err
	}

	return &domain.SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		UserID:    user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
	}, nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	return email
}
