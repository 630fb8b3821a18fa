package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/middleware"
	"github.com/quizmize/backend/internal/services"
	"github.com/quizmize/backend/internal/utils"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	handlerLog := log.With("handler", "AuthHandler")
	return &AuthHandler{log: handlerLog, authService: authService}
}

func (ah *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}

	user, token, err := ah.authService.SignupUser(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	ah.setSessionCookie(c, token)
	RespondCreated(c, gin.H{"user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}

	user, token, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	ah.setSessionCookie(c, token)
	RespondOK(c, gin.H{"user": user})
}

// Logout clears the session cookie; there is no server-side session state
// to revoke.
func (ah *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	RespondOK(c, gin.H{"message": "Logged out"})
}

func (ah *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, int(utils.TokenTTL.Seconds()), "/", "", false, true)
}
