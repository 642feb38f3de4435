package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the JSON API under /api/v1 and the page shells at
// the top level. Session resolution runs on everything; guards differ
// between API (401) and pages (redirect to /auth).
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.Use(s.resolveSession())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	{
		api.POST("/auth/signup", s.SignUp)
		api.POST("/auth/signin", s.SignIn)
		api.POST("/auth/signout", s.SignOut)

		authed := api.Group("", s.SessionRequired())
		{
			authed.GET("/auth/me", s.Me)
			authed.PUT("/auth/password", s.ChangePassword)

			authed.GET("/dashboard", s.DashboardOverview)
			authed.GET("/dashboard/stats", s.DashboardStats)
			authed.GET("/activity", s.AccountActivity)

			authed.POST("/invoices", s.CreateInvoice)
			authed.GET("/invoices", s.ListInvoices)
			authed.GET("/invoices/:number", s.GetInvoice)
			authed.DELETE("/invoices/:number", s.DeleteInvoice)
			authed.POST("/invoices/:number/send", s.SendInvoice)
			authed.POST("/invoices/:number/pay", s.MarkInvoicePaid)
			authed.GET("/invoices/:number/document", s.InvoiceDocument)
			authed.POST("/invoices/:number/items", s.AddInvoiceItem)
			authed.PATCH("/invoices/:number/items/:item_id", s.UpdateInvoiceItem)
			authed.DELETE("/invoices/:number/items/:item_id", s.RemoveInvoiceItem)

			authed.POST("/clients", s.CreateClient)
			authed.GET("/clients", s.ListClients)
			authed.GET("/clients/:id", s.GetClient)
			authed.PATCH("/clients/:id", s.UpdateClient)
			authed.DELETE("/clients/:id", s.DeleteClient)

			authed.GET("/settings/profile", s.GetProfile)
			authed.PATCH("/settings/profile", s.UpdateProfile)
			authed.GET("/settings/company", s.GetCompanySettings)
			authed.PATCH("/settings/company", s.UpdateCompanySettings)
			authed.GET("/settings/notifications", s.GetNotificationSettings)
			authed.PATCH("/settings/notifications", s.UpdateNotificationSettings)
		}

		if !s.cfg.IsProduction() {
			api.POST("/test/cleanup", s.TestCleanup)
		}
	}

	engine.GET("/", s.Home)
	engine.GET("/auth", s.AuthPage)

	pages := engine.Group("", s.PageSessionRequired())
	{
		pages.GET("/dashboard", s.DashboardPage)
		pages.GET("/invoices", s.InvoicesPage)
		pages.GET("/invoice/new", s.NewInvoicePage)
		pages.GET("/invoice/:number", s.InvoicePage)
		pages.GET("/clients", s.ClientsPage)
		pages.GET("/settings", s.SettingsPage)
	}

	engine.NoRoute(s.NotFound)
}
