// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/proglide/admin-console/internal/i18n"
	"github.com/proglide/admin-console/internal/middleware"
	"github.com/proglide/admin-console/internal/services"
	"github.com/proglide/admin-console/internal/session"
	"github.com/proglide/admin-console/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"token":      authResponse.Token,
		"token_type": authResponse.TokenType,
		"expires_at": authResponse.ExpiresAt,
		"expires_in": authResponse.ExpiresIn,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	h.authService.Logout(sess)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	utils.SuccessResponse(c, sess)
}
