package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	auditrepository "github.com/dillondm/Invoice-Managment-systems/internal/audit/repository"
	auditservice "github.com/dillondm/Invoice-Managment-systems/internal/audit/service"
	authdomain "github.com/dillondm/Invoice-Managment-systems/internal/auth/domain"
	authservice "github.com/dillondm/Invoice-Managment-systems/internal/auth/service"
	clientdomain "github.com/dillondm/Invoice-Managment-systems/internal/client/domain"
	clientrepository "github.com/dillondm/Invoice-Managment-systems/internal/client/repository"
	clientservice "github.com/dillondm/Invoice-Managment-systems/internal/client/service"
	"github.com/dillondm/Invoice-Managment-systems/internal/config"
	dashboardservice "github.com/dillondm/Invoice-Managment-systems/internal/dashboard/service"
	"github.com/dillondm/Invoice-Managment-systems/internal/events"
	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	invoicerender "github.com/dillondm/Invoice-Managment-systems/internal/invoice/render"
	invoicerepository "github.com/dillondm/Invoice-Managment-systems/internal/invoice/repository"
	invoiceservice "github.com/dillondm/Invoice-Managment-systems/internal/invoice/service"
	settingsdomain "github.com/dillondm/Invoice-Managment-systems/internal/settings/domain"
	settingsservice "github.com/dillondm/Invoice-Managment-systems/internal/settings/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*gin.Engine, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&authdomain.User{}, &authdomain.Session{},
		&clientdomain.Client{},
		&invoicedomain.Invoice{}, &invoicedomain.InvoiceItem{},
		&events.InvoiceEvent{},
		&settingsdomain.CompanySettings{}, &settingsdomain.NotificationSettings{},
		&auditdomain.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	cfg := config.Config{}
	cfg.Session.TTL = time.Hour
	cfg.Session.CookieName = "invoicems_session"
	cfg.Billing.TaxRate = 0.1
	cfg.Auth.SignInLimit = 3
	cfg.Auth.SignInWindow = time.Minute

	log := zap.NewNop()
	outbox := events.NewOutbox(db, node)

	invoiceSvc := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB: db, Log: log, GenID: node,
		Repo: invoicerepository.Provide(), Outbox: outbox, Cfg: cfg,
	})
	srv := NewServer(Params{
		Log: log, Cfg: cfg, DB: db,
		AuthSvc:    authservice.NewService(authservice.ServiceParam{DB: db, Log: log, GenID: node, Cfg: cfg}),
		InvoiceSvc: invoiceSvc,
		ClientSvc:  clientservice.NewService(clientservice.ServiceParam{DB: db, Log: log, GenID: node, Repo: clientrepository.Provide()}),
		DashboardSvc: dashboardservice.NewService(dashboardservice.ServiceParam{
			DB: db, Log: log, Invoices: invoiceSvc,
		}),
		SettingsSvc: settingsservice.NewService(settingsservice.ServiceParam{DB: db, Log: log, GenID: node}),
		AuditSvc:    auditservice.NewService(auditservice.ServiceParam{DB: db, Log: log, GenID: node, Repo: auditrepository.Provide()}),
		Renderer:    invoicerender.NewRenderer(),
	})

	engine := gin.New()
	srv.RegisterRoutes(engine)
	return engine, cfg
}

func signUp(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"name":     "Tester",
		"email":    email,
		"password": "long enough password",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("sign up status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("missing session token")
	}
	return resp.Data.Token
}

func TestAnonymousPageRedirectsToAuth(t *testing.T) {
	engine, _ := setupTestServer(t)

	for _, path := range []string{"/dashboard", "/invoices", "/invoice/new", "/invoice/INV-001", "/clients", "/settings"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusFound {
			t.Fatalf("%s status = %d, want 302", path, rec.Code)
		}
		if location := rec.Header().Get("Location"); location != "/auth" {
			t.Fatalf("%s location = %q, want /auth", path, location)
		}
	}
}

func TestAnonymousAPIReturns401(t *testing.T) {
	engine, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHomeRedirects(t *testing.T) {
	engine, cfg := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/auth" {
		t.Fatalf("anonymous / -> %d %q, want 302 /auth", rec.Code, rec.Header().Get("Location"))
	}

	token := signUp(t, engine, "home@example.com")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("signed-in / -> %d %q, want 302 /dashboard", rec.Code, rec.Header().Get("Location"))
	}
}

func TestSignedInAuthPageRedirectsToDashboard(t *testing.T) {
	engine, cfg := setupTestServer(t)
	token := signUp(t, engine, "authpage@example.com")

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("auth page -> %d %q, want 302 /dashboard", rec.Code, rec.Header().Get("Location"))
	}
}

func TestInvoiceLifecycleOverHTTP(t *testing.T) {
	engine, cfg := setupTestServer(t)
	token := signUp(t, engine, "lifecycle@example.com")

	do := func(method, path string, payload any) *httptest.ResponseRecorder {
		var body []byte
		if payload != nil {
			body, _ = json.Marshal(payload)
		}
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/api/v1/invoices", map[string]any{
		"client_name": "Acme Corp",
		"issue_date":  "2026-08-01",
		"due_date":    "2026-09-01",
		"items": []map[string]any{
			{"description": "Website redesign", "quantity": 1, "unit_price_cents": 250000},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data struct {
			Number       string `json:"number"`
			Status       string `json:"status"`
			TotalDisplay string `json:"total_display"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.Number != "INV-001" || created.Data.Status != "draft" {
		t.Fatalf("created = %+v", created.Data)
	}
	if created.Data.TotalDisplay != "$2,750.00" {
		t.Fatalf("total display = %q, want $2,750.00", created.Data.TotalDisplay)
	}

	if rec := do(http.MethodPost, "/api/v1/invoices/INV-001/send", nil); rec.Code != http.StatusOK {
		t.Fatalf("send status = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(http.MethodPost, "/api/v1/invoices/INV-001/pay", nil); rec.Code != http.StatusOK {
		t.Fatalf("pay status = %d: %s", rec.Code, rec.Body.String())
	}
	// Paying twice conflicts.
	if rec := do(http.MethodPost, "/api/v1/invoices/INV-001/pay", nil); rec.Code != http.StatusConflict {
		t.Fatalf("second pay status = %d, want 409", rec.Code)
	}

	rec = do(http.MethodGet, "/api/v1/invoices/INV-001/document", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("document status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("INV-001")) {
		t.Fatal("document missing invoice number")
	}
}

func TestSignInRateLimited(t *testing.T) {
	engine, _ := setupTestServer(t)
	signUp(t, engine, "ratelimit@example.com")

	attempt := func() int {
		body, _ := json.Marshal(map[string]string{"email": "ratelimit@example.com", "password": "wrong password"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:50000"
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		if code := attempt(); code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, code)
		}
	}
	if code := attempt(); code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", code)
	}
}

func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	engine, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if contentType := rec.Header().Get("Content-Type"); contentType != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", contentType)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	limiter := newRateLimiter(2, 50*time.Millisecond)

	if !limiter.Allow("key") || !limiter.Allow("key") {
		t.Fatal("first attempts should pass")
	}
	if limiter.Allow("key") {
		t.Fatal("limit exceeded attempt should fail")
	}
	if !limiter.Allow("other") {
		t.Fatal("distinct keys are independent")
	}

	time.Sleep(60 * time.Millisecond)
	if !limiter.Allow("key") {
		t.Fatal("window should reset")
	}
}
