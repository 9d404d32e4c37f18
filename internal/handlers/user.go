// internal/handlers/user.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/proglide/admin-console/internal/i18n"
	"github.com/proglide/admin-console/internal/services"
	"github.com/proglide/admin-console/internal/upstream"
	"github.com/proglide/admin-console/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /users
func (h *UserHandler) GetUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /users/subscriptions
func (h *UserHandler) GetSubscriptions(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	users, err := h.userService.ListSubscriptions(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to load subscriptions")

		msg := err.Error()
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeySubscriptionsFailed, msg), gin.H{
			"retryable": true,
		})
		return
	}

	utils.SuccessResponseWithMeta(c, users, gin.H{"total": len(users)})
}
