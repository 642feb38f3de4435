package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/dillondm/Invoice-Managment-systems/internal/client/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/client/repository"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupClientService(t *testing.T) (domain.Service, context.Context) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Client{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	ctx := sessionctx.WithUser(context.Background(), node.Generate(), "owner@example.com")
	return svc, ctx
}

func seedClients(t *testing.T, svc domain.Service, ctx context.Context) {
	t.Helper()
	for _, req := range []domain.CreateClientRequest{
		{Name: "Acme Corp", Email: "billing@acme.example", Phone: "555-0100"},
		{Name: "Globex LLC", Email: "ap@globex.example", Phone: "555-0199"},
		{Name: "Initech", Email: "accounts@initech.example", Phone: "777-2020"},
	} {
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("create %s: %v", req.Name, err)
		}
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, ctx := setupClientService(t)

	if _, err := svc.Create(ctx, domain.CreateClientRequest{Name: "  "}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInvalidName)
	}
}

func TestSearchMatchesNameEmailPhone(t *testing.T) {
	svc, ctx := setupClientService(t)
	seedClients(t, svc, ctx)

	cases := []struct {
		query string
		want  string
	}{
		{"ACME", "Acme Corp"},
		{"ap@globex", "Globex LLC"},
		{"777-2020", "Initech"},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			list, err := svc.List(ctx, domain.ListClientRequest{Query: tc.query})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(list.Clients) != 1 {
				t.Fatalf("hits = %d, want 1", len(list.Clients))
			}
			if list.Clients[0].Name != tc.want {
				t.Fatalf("hit = %q, want %q", list.Clients[0].Name, tc.want)
			}
		})
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	svc, ctx := setupClientService(t)
	seedClients(t, svc, ctx)

	list, err := svc.List(ctx, domain.ListClientRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Clients) != 3 {
		t.Fatalf("clients = %d, want 3", len(list.Clients))
	}
	if list.TotalSize != 3 {
		t.Fatalf("total = %d, want 3", list.TotalSize)
	}
}

func TestSearchNoMatchReturnsEmpty(t *testing.T) {
	svc, ctx := setupClientService(t)
	seedClients(t, svc, ctx)

	list, err := svc.List(ctx, domain.ListClientRequest{Query: "umbrella"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Clients) != 0 {
		t.Fatalf("hits = %d, want 0", len(list.Clients))
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc, ctx := setupClientService(t)

	created, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Acme Corp", Email: "old@acme.example"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	email := "new@acme.example"
	updated, err := svc.Update(ctx, created.ID, domain.UpdateClientRequest{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != email {
		t.Fatalf("email = %q, want %q", updated.Email, email)
	}
	if updated.Name != "Acme Corp" {
		t.Fatalf("name changed: %q", updated.Name)
	}

	blank := " "
	if _, err := svc.Update(ctx, created.ID, domain.UpdateClientRequest{Name: &blank}); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInvalidName)
	}
}

func TestDeleteAndGet(t *testing.T) {
	svc, ctx := setupClientService(t)

	created, err := svc.Create(ctx, domain.CreateClientRequest{Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("err = %v, want %v", err, domain.ErrClientNotFound)
	}
}

func TestClientsScopedToOwner(t *testing.T) {
	svc, ctx := setupClientService(t)
	seedClients(t, svc, ctx)

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	otherCtx := sessionctx.WithUser(context.Background(), node.Generate(), "other@example.com")

	list, err := svc.List(otherCtx, domain.ListClientRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Clients) != 0 {
		t.Fatalf("cross-owner rows = %d, want 0", len(list.Clients))
	}
}
