package server

import (
	"net/http"
	"time"

	auditdomain "github.com/dillondm/Invoice-Managment-systems/internal/audit/domain"
	authdomain "github.com/dillondm/Invoice-Managment-systems/internal/auth/domain"
	"github.com/dillondm/Invoice-Managment-systems/internal/sessionctx"
	"github.com/gin-gonic/gin"
)

// @Summary      Sign Up
// @Description  Register a new account and start a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body authdomain.SignUpRequest true "Sign Up Request"
// @Success      200  {object}  authdomain.SessionResponse
// @Router       /auth/signup [post]
func (s *Server) SignUp(c *gin.Context) {
	var req authdomain.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.authSvc.SignUp(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.setSessionCookie(c, resp)
	s.recordAuthAudit(c, resp, auditdomain.ActionSignUp)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Sign In
// @Description  Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body authdomain.SignInRequest true "Sign In Request"
// @Success      200  {object}  authdomain.SessionResponse
// @Router       /auth/signin [post]
func (s *Server) SignIn(c *gin.Context) {
	var req authdomain.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if !s.signInLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrRateLimited)
		return
	}

	resp, err := s.authSvc.SignIn(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.setSessionCookie(c, resp)
	s.recordAuthAudit(c, resp, auditdomain.ActionSignIn)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Sign Out
// @Description  Revoke the current session
// @Tags         auth
// @Produce      json
// @Router       /auth/signout [post]
func (s *Server) SignOut(c *gin.Context) {
	token := s.sessionToken(c)
	if token != "" {
		if err := s.authSvc.SignOut(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}
	s.clearSessionCookie(c)
	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{Action: auditdomain.ActionSignOut})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Current Session
// @Description  Return the signed-in account
// @Tags         auth
// @Produce      json
// @Router       /auth/me [get]
func (s *Server) Me(c *gin.Context) {
	userID, email := sessionctx.UserFromContext(c.Request.Context())
	if userID == 0 {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"user_id": userID.String(),
		"email":   email,
	}})
}

// @Summary      Change Password
// @Description  Replace the account password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Router       /auth/password [put]
func (s *Server) ChangePassword(c *gin.Context) {
	var req authdomain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authSvc.ChangePassword(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}
	s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{Action: auditdomain.ActionPasswordChange})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) setSessionCookie(c *gin.Context, session *authdomain.SessionResponse) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.Session.CookieName, session.Token, maxAge, "/", "", s.cfg.IsProduction(), true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.Session.CookieName, "", -1, "/", "", s.cfg.IsProduction(), true)
}

// recordAuthAudit runs with the fresh identity since the middleware saw an
// anonymous request.
func (s *Server) recordAuthAudit(c *gin.Context, session *authdomain.SessionResponse, action string) {
	identity, err := s.authSvc.Resolve(c.Request.Context(), session.Token)
	if err != nil || identity == nil {
		return
	}
	ctx := sessionctx.WithUser(c.Request.Context(), identity.UserID, identity.Email)
	s.auditSvc.Record(ctx, auditdomain.Entry{Action: action})
}
