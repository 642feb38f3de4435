package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      Dashboard Stats
// @Description  Outstanding, sent, overdue, and paid-this-month figures
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboarddomain.StatsResponse
// @Router       /dashboard/stats [get]
func (s *Server) DashboardStats(c *gin.Context) {
	resp, err := s.dashboardSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Dashboard Overview
// @Description  Stats plus the most recent invoices
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboarddomain.OverviewResponse
// @Router       /dashboard [get]
func (s *Server) DashboardOverview(c *gin.Context) {
	resp, err := s.dashboardSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Account Activity
// @Description  Recent audit entries for the signed-in account
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Max entries"
// @Router       /activity [get]
func (s *Server) AccountActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp, err := s.auditSvc.List(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
