package server

import (
	"net/http"

	auditdomain "github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	settingsdomain "github.com/dillondm/Invoice-Managment-systems/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      Get Profile
// @Tags         settings
// @Produce      json
// @Success      200  {object}  settingsdomain.ProfileResponse
// @Router       /settings/profile [get]
func (s *Server) GetProfile(c *gin.Context) {
	resp, err := s.settingsSvc.Profile(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Profile
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsdomain.UpdateProfileRequest true "Profile Update"
// @Success      200  {object}  settingsdomain.ProfileResponse
// @Router       /settings/profile [patch]
func (s *Server) UpdateProfile(c *gin.Context) {
	var req settingsdomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingsSvc.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.recordSettingsAudit(c, "profile")

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Company Settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  settingsdomain.CompanyResponse
// @Router       /settings/company [get]
func (s *Server) GetCompanySettings(c *gin.Context) {
	resp, err := s.settingsSvc.Company(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Company Settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsdomain.UpdateCompanyRequest true "Company Update"
// @Success      200  {object}  settingsdomain.CompanyResponse
// @Router       /settings/company [patch]
func (s *Server) UpdateCompanySettings(c *gin.Context) {
	var req settingsdomain.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingsSvc.UpdateCompany(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.recordSettingsAudit(c, "company")

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Notification Settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  settingsdomain.NotificationsResponse
// @Router       /settings/notifications [get]
func (s *Server) GetNotificationSettings(c *gin.Context) {
	resp, err := s.settingsSvc.Notifications(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Notification Settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsdomain.UpdateNotificationsRequest true "Notifications Update"
// @Success      200  {object}  settingsdomain.NotificationsResponse
// @Router       /settings/notifications [patch]
func (s *Server) UpdateNotificationSettings(c *gin.Context) {
	var req settingsdomain.UpdateNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingsSvc.UpdateNotifications(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.recordSettingsAudit(c, "notifications")

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) recordSettingsAudit(c *gin.Context, section string) {
	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		Action:     auditdomain.ActionSettingsUpdate,
		TargetType: "settings",
		TargetID:   section,
	})
}
