package server

import (
	"net/http"
	"strings"

	auditdomain "github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	clientdomain "github.com/dillondm/Invoice-Managment-systems/internal/client/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      Create Client
// @Description  Save a billing contact
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body clientdomain.CreateClientRequest true "Create Client Request"
// @Success      200  {object}  clientdomain.ClientResponse
// @Router       /clients [post]
func (s *Server) CreateClient(c *gin.Context) {
	var req clientdomain.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionClientCreate,
		TargetType: "client",
		TargetID:   resp.ID,
		Metadata:   map[string]any{"name": resp.Name},
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Clients
// @Description  List saved clients with case-insensitive search
// @Tags         clients
// @Produce      json
// @Param        q           query  string  false  "Search by name, email, or phone"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  clientdomain.ListClientResponse
// @Router       /clients [get]
func (s *Server) ListClients(c *gin.Context) {
	var req clientdomain.ListClientRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Client
// @Tags         clients
// @Produce      json
// @Param        id  path  string  true  "Client ID"
// @Success      200  {object}  clientdomain.ClientResponse
// @Router       /clients/{id} [get]
func (s *Server) GetClient(c *gin.Context) {
	resp, err := s.clientSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Client ID"
// @Param        request  body  clientdomain.UpdateClientRequest  true  "Update Client Request"
// @Success      200  {object}  clientdomain.ClientResponse
// @Router       /clients/{id} [patch]
func (s *Server) UpdateClient(c *gin.Context) {
	var req clientdomain.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionClientUpdate,
		TargetType: "client",
		TargetID:   resp.ID,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Client
// @Tags         clients
// @Produce      json
// @Param        id  path  string  true  "Client ID"
// @Router       /clients/{id} [delete]
func (s *Server) DeleteClient(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.clientSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionClientDelete,
		TargetType: "client",
		TargetID:   id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
