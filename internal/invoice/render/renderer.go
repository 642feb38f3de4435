package render

import "time"

// RenderInput is the deterministic input used for invoice rendering.
type RenderInput struct {
	Company CompanyView
	Invoice InvoiceView
	Items   []LineItemView
}

type CompanyView struct {
	Name         string
	Email        string
	Address      string
	LogoURL      string
	PrimaryColor string
	FontFamily   string
}

type InvoiceView struct {
	Number        string
	StatusLabel   string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	IssueDate     *time.Time
	DueDate       *time.Time
	TaxRate       float64
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

type LineItemView struct {
	Description    string
	Quantity       int64
	UnitPriceCents int64
	AmountCents    int64
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
