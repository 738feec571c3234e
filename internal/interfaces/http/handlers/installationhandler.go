package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"solarops/internal/application/installation/usecases"
	"solarops/internal/shared/id"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

type createInstallationUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateInstallationCommand) (*usecases.InstallationDTO, error)
}

type getInstallationUseCase interface {
	Execute(ctx context.Context, installationID string) (*usecases.InstallationDTO, error)
}

type listInstallationsUseCase interface {
	Execute(ctx context.Context, page, pageSize int) (*usecases.ListInstallationsResult, error)
}

type InstallationHandler struct {
	createUC createInstallationUseCase
	getUC    getInstallationUseCase
	listUC   listInstallationsUseCase
	logger   logger.Interface
}

func NewInstallationHandler(
	createUC createInstallationUseCase,
	getUC getInstallationUseCase,
	listUC listInstallationsUseCase,
	logger logger.Interface,
) *InstallationHandler {
	return &InstallationHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		logger:   logger,
	}
}

type CreateInstallationRequest struct {
	CustomerName string          `json:"customer_name" binding:"required,max=200"`
	Address      string          `json:"address" binding:"required,max=500"`
	SystemType   string          `json:"system_type" binding:"required,oneof=SOLAR BATTERY HYBRID"`
	CapacityKw   decimal.Decimal `json:"capacity_kw" validate:"decimal_positive"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

func (h *InstallationHandler) Create(c *gin.Context) {
	var req CreateInstallationRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateInstallationCommand{
		CustomerName: req.CustomerName,
		Address:      req.Address,
		SystemType:   req.SystemType,
		CapacityKw:   req.CapacityKw,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Installation created successfully")
}

func (h *InstallationHandler) Get(c *gin.Context) {
	installationID, ok := pathID(c, "id", id.PrefixInstallation, "installation")
	if !ok {
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), installationID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *InstallationHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Installations, result.Total, result.Page, result.PageSize)
}
