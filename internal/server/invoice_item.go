package server

import (
	"net/http"

	invoicedomain "github.com/dillondm/Invoice-Managment-systems/internal/invoice/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      Add Line Item
// @Description  Append a line item to a draft invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        number   path  string  true  "Invoice Number"
// @Param        request  body  invoicedomain.ItemInput  true  "Line Item"
// @Success      200  {object}  invoicedomain.InvoiceDetailResponse
// @Router       /invoices/{number}/items [post]
func (s *Server) AddInvoiceItem(c *gin.Context) {
	var req invoicedomain.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.AddItem(c.Request.Context(), c.Param("number"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Line Item
// @Description  Edit a line item's description, quantity, or unit price
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        number   path  string  true  "Invoice Number"
// @Param        item_id  path  string  true  "Item ID"
// @Param        request  body  invoicedomain.UpdateItemRequest  true  "Line Item Update"
// @Success      200  {object}  invoicedomain.InvoiceDetailResponse
// @Router       /invoices/{number}/items/{item_id} [patch]
func (s *Server) UpdateInvoiceItem(c *gin.Context) {
	var req invoicedomain.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.UpdateItem(c.Request.Context(), c.Param("number"), c.Param("item_id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Remove Line Item
// @Description  Delete a line item; the last remaining item is kept
// @Tags         invoices
// @Produce      json
// @Param        number   path  string  true  "Invoice Number"
// @Param        item_id  path  string  true  "Item ID"
// @Success      200  {object}  invoicedomain.InvoiceDetailResponse
// @Router       /invoices/{number}/items/{item_id} [delete]
func (s *Server) RemoveInvoiceItem(c *gin.Context) {
	resp, err := s.invoiceSvc.RemoveItem(c.Request.Context(), c.Param("number"), c.Param("item_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
