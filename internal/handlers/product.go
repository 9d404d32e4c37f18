// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/proglide/admin-console/internal/i18n"
	"github.com/proglide/admin-console/internal/middleware"
	"github.com/proglide/admin-console/internal/models"
	"github.com/proglide/admin-console/internal/search"
	"github.com/proglide/admin-console/internal/services"
	"github.com/proglide/admin-console/internal/utils"
)

type ProductHandler struct {
	inventoryService *services.InventoryService
}

func NewProductHandler(inventoryService *services.InventoryService) *ProductHandler {
	return &ProductHandler{
		inventoryService: inventoryService,
	}
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, h.inventoryService.Categories())
}

// GET /categories/:category/schema
func (h *ProductHandler) GetSchema(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	schema, form, err := h.inventoryService.Schema(category)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"schema": schema,
		"form":   form,
	})
}

// GET /categories/:category/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	order, err := search.ParseSort(c.Query("sort"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	result, err := h.inventoryService.Browse(c.Request.Context(), sess, category, search.Query{
		Text: c.Query("q"),
		Sort: order,
	}, refresh)
	if err != nil {
		respondError(c, err, "")
		return
	}

	meta := gin.H{"total": result.Total, "shown": len(result.Cards)}
	if len(result.Cards) == 0 {
		meta["notice"] = i18n.T(utils.GetLangFromContext(c), i18n.KeySearchNoResults)
	}
	utils.SuccessResponseWithMeta(c, result, meta)
}

// POST /categories/:category/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	input, ok := bindProductInput(c, category)
	if !ok {
		return
	}

	product, err := h.inventoryService.Create(c.Request.Context(), sess, input)
	if err != nil {
		respondError(c, err, i18n.KeyProductSaveFailed)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
		"card":    services.NewCard(*product),
	})
}

// PUT /categories/:category/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	input, ok := bindProductInput(c, category)
	if !ok {
		return
	}

	product, err := h.inventoryService.Update(c.Request.Context(), sess, c.Param("id"), input)
	if err != nil {
		respondError(c, err, i18n.KeyProductSaveFailed)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
		"card":    services.NewCard(*product),
	})
}

// DELETE /categories/:category/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), sess, category, c.Param("id")); err != nil {
		respondError(c, err, i18n.KeyProductDeleteFail)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /categories/:category/devices
func (h *ProductHandler) AddDevice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	req, ok := bindDeviceEdit(c)
	if !ok {
		return
	}

	res, err := h.inventoryService.AddDevice(c.Request.Context(), sess, category, req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDeviceAdded),
		"devices": res.Devices,
		"tags":    res.Tags,
	})
}

// POST /categories/:category/devices/remove
func (h *ProductHandler) RemoveDevice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, ok := categoryParam(c); !ok {
		return
	}

	req, ok := bindDeviceEdit(c)
	if !ok {
		return
	}

	res := h.inventoryService.RemoveDevice(req)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDeviceRemoved),
		"devices": res.Devices,
		"tags":    res.Tags,
	})
}

// bindProductInput reads a product body; the path category always wins over
// the body's.
func bindProductInput(c *gin.Context, category models.Category) (*models.ProductInput, bool) {
	lang := utils.GetLangFromContext(c)

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return nil, false
	}
	input.Category = category
	if input.Specs == nil {
		input.Specs = models.Specs{}
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&input)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return nil, false
	}
	return &input, true
}

func bindDeviceEdit(c *gin.Context) (*services.DeviceEditRequest, bool) {
	lang := utils.GetLangFromContext(c)

	var req services.DeviceEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return nil, false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return nil, false
	}
	return &req, true
}
