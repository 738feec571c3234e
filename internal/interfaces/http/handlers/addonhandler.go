package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"solarops/internal/application/agreement/usecases"
	"solarops/internal/shared/id"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

type AddonHandler struct {
	createUC usecases.CreateAddonProductExecutor
	updateUC usecases.UpdateAddonProductExecutor
	listUC   usecases.ListAddonProductsExecutor
	logger   logger.Interface
}

func NewAddonHandler(
	createUC usecases.CreateAddonProductExecutor,
	updateUC usecases.UpdateAddonProductExecutor,
	listUC usecases.ListAddonProductsExecutor,
	logger logger.Interface,
) *AddonHandler {
	return &AddonHandler{
		createUC: createUC,
		updateUC: updateUC,
		listUC:   listUC,
		logger:   logger,
	}
}

type CreateAddonProductRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=1000"`
	Category    string          `json:"category" binding:"required"`
	Frequency   string          `json:"frequency" binding:"required"`
	BasePrice   decimal.Decimal `json:"base_price" validate:"decimal_nonneg"`
	Unit        string          `json:"unit" binding:"max=20"`
	SortOrder   int             `json:"sort_order"`
}

type UpdateAddonProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	BasePrice   *decimal.Decimal `json:"base_price" validate:"omitempty,decimal_nonneg"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	SortOrder   *int             `json:"sort_order"`
	Active      *bool            `json:"active"`
}

func (h *AddonHandler) Create(c *gin.Context) {
	var req CreateAddonProductRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateAddonProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Frequency:   req.Frequency,
		BasePrice:   req.BasePrice,
		Unit:        req.Unit,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Add-on product created successfully")
}

func (h *AddonHandler) Update(c *gin.Context) {
	addonID, ok := pathID(c, "id", id.PrefixAddonProduct, "add-on product")
	if !ok {
		return
	}

	var req UpdateAddonProductRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateAddonProductCommand{
		AddonID:     addonID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Unit:        req.Unit,
		SortOrder:   req.SortOrder,
		Active:      req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Add-on product updated successfully", result)
}

// List returns active products unless include_inactive=true.
func (h *AddonHandler) List(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAddonProductsQuery{ActiveOnly: !includeInactive})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
