package server

import (
	"net/http"
	"strings"
	"time"

	auditdomain "github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/invoice/render"
	"github.com/gin-gonic/gin"
)

// @Summary      Create Invoice
// @Description  Create an invoice as a draft or send it immediately
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicedomain.CreateInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.InvoiceDetailResponse
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionInvoiceCreate,
		TargetType: "invoice",
		TargetID:   resp.Number,
		Metadata:   map[string]any{"total_cents": resp.TotalCents, "status": resp.Status},
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Description  List invoices, newest first, with status filter and search
// @Tags         invoices
// @Produce      json
// @Param        status      query  string  false  "Status filter"
// @Param        q           query  string  false  "Search by client name or number"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var req invoicedomain.ListInvoiceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get one invoice with line items and timeline
// @Tags         invoices
// @Produce      json
// @Param        number  path  string  true  "Invoice Number"
// @Success      200  {object}  invoicedomain.InvoiceDetailResponse
// @Router       /invoices/{number} [get]
func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Send Invoice
// @Description  Move a draft invoice to pending
// @Tags         invoices
// @Produce      json
// @Param        number  path  string  true  "Invoice Number"
// @Router       /invoices/{number}/send [post]
func (s *Server) SendInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.Send(c.Request.Context(), c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionInvoiceSend,
		TargetType: "invoice",
		TargetID:   resp.Number,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Mark Invoice Paid
// @Description  Record payment for a pending invoice
// @Tags         invoices
// @Produce      json
// @Param        number  path  string  true  "Invoice Number"
// @Router       /invoices/{number}/pay [post]
func (s *Server) MarkInvoicePaid(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkPaid(c.Request.Context(), c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionInvoicePaid,
		TargetType: "invoice",
		TargetID:   resp.Number,
		Metadata:   map[string]any{"total_cents": resp.TotalCents},
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Description  Delete an invoice and its line items
// @Tags         invoices
// @Produce      json
// @Param        number  path  string  true  "Invoice Number"
// @Router       /invoices/{number} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if err := s.invoiceSvc.Delete(c.Request.Context(), number); err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionInvoiceDelete,
		TargetType: "invoice",
		TargetID:   number,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Invoice Document
// @Description  Render the invoice as a printable HTML document
// @Tags         invoices
// @Produce      html
// @Param        number  path  string  true  "Invoice Number"
// @Router       /invoices/{number}/document [get]
func (s *Server) InvoiceDocument(c *gin.Context) {
	ctx := c.Request.Context()
	detail, err := s.invoiceSvc.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	company, err := s.settingsSvc.Company(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items := make([]render.LineItemView, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, render.LineItemView{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			AmountCents:    item.AmountCents,
		})
	}

	html, err := s.renderer.RenderHTML(render.RenderInput{
		Company: render.CompanyView{
			Name:         company.CompanyName,
			Email:        company.CompanyEmail,
			Address:      company.Address,
			LogoURL:      company.LogoURL,
			PrimaryColor: company.PrimaryColor,
			FontFamily:   company.FontFamily,
		},
		Invoice: render.InvoiceView{
			Number:        detail.Number,
			StatusLabel:   detail.StatusLabel,
			ClientName:    detail.ClientName,
			ClientEmail:   detail.ClientEmail,
			ClientAddress: detail.ClientAddress,
			IssueDate:     parseDisplayDate(detail.IssueDate),
			DueDate:       parseDisplayDate(detail.DueDate),
			TaxRate:       detail.TaxRate,
			SubtotalCents: detail.SubtotalCents,
			TaxCents:      detail.TaxCents,
			TotalCents:    detail.TotalCents,
		},
		Items: items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func parseDisplayDate(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}
