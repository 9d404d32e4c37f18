// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/proglide/admin-console/internal/catalog"
	"github.com/proglide/admin-console/internal/i18n"
	"github.com/proglide/admin-console/internal/models"
	"github.com/proglide/admin-console/internal/search"
	"github.com/proglide/admin-console/internal/services"
	"github.com/proglide/admin-console/internal/tags"
	"github.com/proglide/admin-console/internal/upstream"
	"github.com/proglide/admin-console/internal/utils"
)

// respondError maps service errors onto the response envelope. failureKey
// is the notice shown when the remote API fails for any other reason; an
// empty key means the generic "unavailable" message.
func respondError(c *gin.Context, err error, failureKey string) {
	lang := utils.GetLangFromContext(c)

	var conflict *tags.ConflictError
	var fieldErr *catalog.FieldError

	switch {
	case errors.Is(err, upstream.ErrSessionExpired):
		utils.SessionExpiredResponse(c)
	case errors.As(err, &conflict):
		utils.ConflictResponse(c, "DEVICE_CONFLICT",
			i18n.T(lang, i18n.KeyDeviceConflict, conflict.Device, conflict.ProductName, conflict.Category),
			gin.H{
				"device":       conflict.Device,
				"product_id":   conflict.ProductID,
				"product_name": conflict.ProductName,
				"category":     conflict.Category,
			})
	case errors.As(err, &fieldErr):
		utils.ValidationErrorResponse(c, []utils.ValidationError{{
			Field:   string(fieldErr.Field),
			Tag:     "spec",
			Message: fieldErr.Message,
		}})
	case errors.Is(err, services.ErrUnknownCategory):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyCategoryInvalid, c.Param("category")), nil)
	case errors.Is(err, services.ErrSortNotAvailable), errors.Is(err, search.ErrInvalidSort):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySortInvalid, c.Query("sort"), c.Param("category")), nil)
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Upstream request failed")
		message := ""
		if failureKey != "" {
			message = i18n.T(lang, failureKey)
		}
		utils.BadGatewayResponse(c, message, nil)
	}
}

// categoryParam resolves the :category path segment from a slug or name.
func categoryParam(c *gin.Context) (models.Category, bool) {
	category, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		lang := utils.GetLangFromContext(c)
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyCategoryInvalid, c.Param("category")), nil)
		return "", false
	}
	return category, true
}
