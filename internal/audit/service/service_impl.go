package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry domain.Entry) {
	userID, _ := sessionctx.UserFromContext(ctx)
	if userID == 0 || entry.Action == "" {
		return
	}

	metadata := datatypes.JSONMap{}
	for key, value := range entry.Metadata {
		metadata[key] = value
	}

	row := domain.AuditLog{
		ID:         s.genID.Generate(),
		UserID:     userID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Metadata:   metadata,
		IPAddress:  sessionctx.IPAddressFromContext(ctx),
		UserAgent:  sessionctx.UserAgentFromContext(ctx),
		RequestID:  sessionctx.RequestIDFromContext(ctx),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &row); err != nil {
		s.log.Warn("failed to record audit entry",
			zap.String("action", entry.Action), zap.Error(err))
	}
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.EntryResponse, error) {
	userID, _ := sessionctx.UserFromContext(ctx)
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.repo.List(ctx, s.db, domain.ListFilter{UserID: userID, Limit: limit})
	if err != nil {
		return nil, err
	}

	responses := make([]domain.EntryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, domain.EntryResponse{
			Action:     row.Action,
			TargetType: row.TargetType,
			TargetID:   row.TargetID,
			Metadata:   row.Metadata,
			CreatedAt:  row.CreatedAt,
		})
	}
	return responses, nil
}
