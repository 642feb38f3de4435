package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/client/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"github.com/dillondm/Invoice-Managment-systems/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (*domain.ClientResponse, error) {
	userID, ok := userFrom(ctx)
	if !ok {
		return nil, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return nil, err
	}
	return toResponse(&client), nil
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	userID, ok := userFrom(ctx)
	if !ok {
		return domain.ListClientResponse{}, domain.ErrInvalidUser
	}

	clients, total, err := s.repo.List(ctx, s.db, userID, domain.ListFilter{
		Query:  strings.TrimSpace(req.Query),
		Limit:  req.Limit(),
		Offset: req.Offset(),
	})
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	responses := make([]domain.ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *toResponse(&clients[i]))
	}
	return domain.ListClientResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: req.NextToken(len(responses)),
			TotalSize:     total,
		},
		Clients: responses,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.ClientResponse, error) {
	_, client, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(client), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateClientRequest) (*domain.ClientResponse, error) {
	_, client, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		client.Name = name
	}
	if req.Email != nil {
		client.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		client.Notes = strings.TrimSpace(*req.Notes)
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, client); err != nil {
		return nil, err
	}
	return toResponse(client), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, client, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, userID, client.ID)
}

func (s *Service) load(ctx context.Context, id string) (snowflake.ID, *domain.Client, error) {
	userID, ok := userFrom(ctx)
	if !ok {
		return 0, nil, domain.ErrInvalidUser
	}
	clientID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, nil, domain.ErrInvalidID
	}
	client, err := s.repo.FindByID(ctx, s.db, userID, clientID)
	if err != nil {
		return 0, nil, err
	}
	if client == nil {
		return 0, nil, domain.ErrClientNotFound
	}
	return userID, client, nil
}

func toResponse(client *domain.Client) *domain.ClientResponse {
	return &domain.ClientResponse{
		ID:      client.ID.String(),
		Name:    client.Name,
		Email:   client.Email,
		Phone:   client.Phone,
		Address: client.Address,
		Notes:   client.Notes,
	}
}

func userFrom(ctx context.Context) (snowflake.ID, bool) {
	userID, _ := sessionctx.UserFromContext(ctx)
	return userID, userID != 0
}
