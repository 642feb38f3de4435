package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"github.com/gin-gonic/gin"
)

const pageShellTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>%s</title>
  <link rel="stylesheet" href="/assets/app.css" />
</head>
<body>
  <div id="root" data-page="%s"></div>
  <script src="/assets/app.js" defer></script>
</body>
</html>
`

// Home sends signed-in users to the dashboard and everyone else to the
// sign-in screen.
func (s *Server) Home(c *gin.Context) {
	if userID, _ := sessionctx.UserFromContext(c.Request.Context()); userID != 0 {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/auth")
}

// AuthPage serves the sign-in screen. Signed-in users skip straight to
// the dashboard.
func (s *Server) AuthPage(c *gin.Context) {
	if userID, _ := sessionctx.UserFromContext(c.Request.Context()); userID != 0 {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	s.renderPage(c, "Sign In", "auth")
}

func (s *Server) DashboardPage(c *gin.Context) {
	s.renderPage(c, "Dashboard", "dashboard")
}

func (s *Server) InvoicesPage(c *gin.Context) {
	s.renderPage(c, "Invoices", "invoices")
}

func (s *Server) NewInvoicePage(c *gin.Context) {
	s.renderPage(c, "New Invoice", "invoice-new")
}

func (s *Server) InvoicePage(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	s.renderPage(c, "Invoice "+number, "invoice-detail")
}

func (s *Server) ClientsPage(c *gin.Context) {
	s.renderPage(c, "Clients", "clients")
}

func (s *Server) SettingsPage(c *gin.Context) {
	s.renderPage(c, "Settings", "settings")
}

// NotFound handles unmatched routes: JSON for API paths, a 404 page for
// everything else.
func (s *Server) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		AbortWithError(c, ErrNotFound)
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8",
		[]byte(fmt.Sprintf(pageShellTemplate, "Page Not Found", "not-found")))
}

func (s *Server) renderPage(c *gin.Context, title, page string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(fmt.Sprintf(pageShellTemplate, title, page)))
}
