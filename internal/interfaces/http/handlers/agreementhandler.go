package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"solarops/internal/application/agreement/usecases"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/id"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

type AgreementHandler struct {
	createUC   usecases.CreateAgreementExecutor
	updateUC   usecases.UpdateAgreementExecutor
	activateUC usecases.ActivateAgreementExecutor
	cancelUC   usecases.CancelAgreementExecutor
	statusUC   usecases.ChangeAgreementStatusExecutor
	priceUC    usecases.CalculatePriceExecutor
	getUC      usecases.GetAgreementExecutor
	listUC     usecases.ListAgreementsExecutor
	maintainUC usecases.MaintainAgreementsExecutor
	logger     logger.Interface
}

// AgreementUseCases groups the executors behind the agreement endpoints.
type AgreementUseCases struct {
	Create   usecases.CreateAgreementExecutor
	Update   usecases.UpdateAgreementExecutor
	Activate usecases.ActivateAgreementExecutor
	Cancel   usecases.CancelAgreementExecutor
	Status   usecases.ChangeAgreementStatusExecutor
	Price    usecases.CalculatePriceExecutor
	Get      usecases.GetAgreementExecutor
	List     usecases.ListAgreementsExecutor
	Maintain usecases.MaintainAgreementsExecutor
}

func NewAgreementHandler(ucs AgreementUseCases, logger logger.Interface) *AgreementHandler {
	return &AgreementHandler{
		createUC:   ucs.Create,
		updateUC:   ucs.Update,
		activateUC: ucs.Activate,
		cancelUC:   ucs.Cancel,
		statusUC:   ucs.Status,
		priceUC:    ucs.Price,
		getUC:      ucs.Get,
		listUC:     ucs.List,
		maintainUC: ucs.Maintain,
		logger:     logger,
	}
}

type AddonRequest struct {
	AddonID     string           `json:"addon_id" binding:"required"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=1,max=1000"`
	CustomPrice *decimal.Decimal `json:"custom_price" validate:"omitempty,decimal_nonneg"`
	Notes       string           `json:"notes" binding:"max=500"`
}

type CreateAgreementRequest struct {
	InstallationID     string           `json:"installation_id" binding:"required"`
	AgreementType      string           `json:"agreement_type" binding:"required"`
	SLALevel           string           `json:"sla_level"`
	StartDate          string           `json:"start_date" binding:"required"`
	EndDate            *string          `json:"end_date"`
	BasePrice          *decimal.Decimal `json:"base_price" validate:"omitempty,decimal_nonneg"`
	DiscountPercent    *decimal.Decimal `json:"discount_percent" validate:"omitempty,decimal_nonneg"`
	AutoRenew          *bool            `json:"auto_renew"`
	VisitFrequency     int              `json:"visit_frequency" binding:"omitempty,min=1,max=12"`
	PreferredVisitDay  string           `json:"preferred_visit_day"`
	PreferredVisitTime string           `json:"preferred_visit_time"`
	Notes              string           `json:"notes" binding:"max=2000"`
	SeasonalAdjust     bool             `json:"seasonal_adjust"`
	Addons             []AddonRequest   `json:"addons" binding:"dive" validate:"dive"`
}

type UpdateAgreementRequest struct {
	AgreementType      *string          `json:"agreement_type"`
	SLALevel           *string          `json:"sla_level"`
	StartDate          *string          `json:"start_date"`
	EndDate            *string          `json:"end_date"`
	ClearEndDate       bool             `json:"clear_end_date"`
	BasePrice          *decimal.Decimal `json:"base_price" validate:"omitempty,decimal_nonneg"`
	DiscountPercent    *decimal.Decimal `json:"discount_percent" validate:"omitempty,decimal_nonneg"`
	ClearDiscount      bool             `json:"clear_discount"`
	AutoRenew          *bool            `json:"auto_renew"`
	VisitFrequency     *int             `json:"visit_frequency" binding:"omitempty,min=1,max=12"`
	PreferredVisitDay  *string          `json:"preferred_visit_day"`
	PreferredVisitTime *string          `json:"preferred_visit_time"`
	Notes              *string          `json:"notes" binding:"omitempty,max=2000"`
	Addons             []AddonRequest   `json:"addons" binding:"omitempty,dive" validate:"omitempty,dive"`
}

type CalculatePriceRequest struct {
	AgreementType   string           `json:"agreement_type" binding:"required"`
	BasePrice       *decimal.Decimal `json:"base_price" validate:"omitempty,decimal_nonneg"`
	DiscountPercent *decimal.Decimal `json:"discount_percent" validate:"omitempty,decimal_nonneg"`
	Addons          []AddonRequest   `json:"addons" binding:"dive" validate:"dive"`
}

type CancelAgreementRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func toAddonInputs(reqs []AddonRequest) []usecases.AddonInput {
	if reqs == nil {
		return nil
	}
	out := make([]usecases.AddonInput, 0, len(reqs))
	for _, r := range reqs {
		qty := 1
		if r.Quantity != nil {
			qty = *r.Quantity
		}
		out = append(out, usecases.AddonInput{
			AddonID:     r.AddonID,
			Quantity:    qty,
			CustomPrice: r.CustomPrice,
			Notes:       r.Notes,
		})
	}
	return out
}

// Create handles POST /agreements
// @Summary Create an agreement
// @Description Create a DRAFT service agreement with a priced add-on list
// @Tags Agreements
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateAgreementRequest true "Agreement data"
// @Success 201 {object} utils.APIResponse{data=usecases.CreateAgreementResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /agreements [post]
func (h *AgreementHandler) Create(c *gin.Context) {
	var req CreateAgreementRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateAgreementCommand{
		InstallationID:     req.InstallationID,
		AgreementType:      req.AgreementType,
		SLALevel:           req.SLALevel,
		StartDate:          startDate,
		EndDate:            endDate,
		BasePrice:          req.BasePrice,
		DiscountPercent:    req.DiscountPercent,
		AutoRenew:          autoRenew,
		VisitFrequency:     req.VisitFrequency,
		PreferredVisitDay:  req.PreferredVisitDay,
		PreferredVisitTime: req.PreferredVisitTime,
		Notes:              req.Notes,
		SeasonalAdjust:     req.SeasonalAdjust,
		Addons:             toAddonInputs(req.Addons),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Agreement created successfully")
}

// Update handles PATCH /agreements/:id
// @Summary Update an agreement
// @Description Change a DRAFT agreement; the price is recalculated
// @Tags Agreements
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Agreement ID"
// @Param request body UpdateAgreementRequest true "Changed fields"
// @Success 200 {object} utils.APIResponse{data=usecases.UpdateAgreementResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /agreements/{id} [patch]
func (h *AgreementHandler) Update(c *gin.Context) {
	agreementID, ok := pathID(c, "id", id.PrefixAgreement, "agreement")
	if !ok {
		return
	}

	var req UpdateAgreementRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	startDate, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateAgreementCommand{
		AgreementID:        agreementID,
		AgreementType:      req.AgreementType,
		SLALevel:           req.SLALevel,
		StartDate:          startDate,
		EndDate:            endDate,
		ClearEndDate:       req.ClearEndDate,
		BasePrice:          req.BasePrice,
		DiscountPercent:    req.DiscountPercent,
		ClearDiscount:      req.ClearDiscount,
		AutoRenew:          req.AutoRenew,
		VisitFrequency:     req.VisitFrequency,
		PreferredVisitDay:  req.PreferredVisitDay,
		PreferredVisitTime: req.PreferredVisitTime,
		Notes:              req.Notes,
		Addons:             toAddonInputs(req.Addons),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Agreement updated successfully", result)
}

// Activate handles POST /agreements/:id/activate
// @Summary Activate an agreement
// @Tags Agreements
// @Produce json
// @Security Bearer
// @Param id path string true "Agreement ID"
// @Success 200 {object} utils.APIResponse{data=dto.AgreementDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /agreements/{id}/activate [post]
func (h *AgreementHandler) Activate(c *gin.Context) {
	agreementID, ok := pathID(c, "id", id.PrefixAgreement, "agreement")
	if !ok {
		return
	}

	result, err := h.activateUC.Execute(c.Request.Context(), usecases.ActivateAgreementCommand{AgreementID: agreementID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Agreement activated successfully", result)
}

// Cancel handles POST /agreements/:id/cancel
// @Summary Cancel an agreement
// @Tags Agreements
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Agreement ID"
// @Param request body CancelAgreementRequest true "Cancellation reason"
// @Success 200 {object} utils.APIResponse{data=dto.AgreementDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /agreements/{id}/cancel [post]
func (h *AgreementHandler) Cancel(c *gin.Context) {
	agreementID, ok := pathID(c, "id", id.PrefixAgreement, "agreement")
	if !ok {
		return
	}

	var req CancelAgreementRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelAgreementCommand{
		AgreementID: agreementID,
		Reason:      req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Agreement cancelled successfully", result)
}

// ChangeStatus handles submit, suspend and resume given as :action.
// @Summary Submit, suspend or resume an agreement
// @Tags Agreements
// @Produce json
// @Security Bearer
// @Param id path string true "Agreement ID"
// @Param action path string true "submit, suspend or resume"
// @Success 200 {object} utils.APIResponse{data=dto.AgreementDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /agreements/{id}/status/{action} [post]
func (h *AgreementHandler) ChangeStatus(c *gin.Context) {
	agreementID, ok := pathID(c, "id", id.PrefixAgreement, "agreement")
	if !ok {
		return
	}

	action := usecases.StatusAction(strings.ToLower(c.Param("action")))
	switch action {
	case usecases.StatusActionSubmit, usecases.StatusActionSuspend, usecases.StatusActionResume:
	default:
		utils.ErrorResponseWithError(c, errors.NewValidationError("unsupported status action", c.Param("action")))
		return
	}

	result, err := h.statusUC.Execute(c.Request.Context(), usecases.ChangeAgreementStatusCommand{
		AgreementID: agreementID,
		Action:      action,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Agreement status updated successfully", result)
}

// CalculatePrice handles POST /agreements/calculate-price
// @Summary Calculate an agreement price
// @Description Price a plan and add-ons without saving anything
// @Tags Agreements
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CalculatePriceRequest true "Price input"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /agreements/calculate-price [post]
func (h *AgreementHandler) CalculatePrice(c *gin.Context) {
	var req CalculatePriceRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.priceUC.Execute(c.Request.Context(), usecases.CalculatePriceCommand{
		AgreementType:   req.AgreementType,
		BasePrice:       req.BasePrice,
		DiscountPercent: req.DiscountPercent,
		Addons:          toAddonInputs(req.Addons),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Get handles GET /agreements/:id
// @Summary Get agreement by ID
// @Tags Agreements
// @Produce json
// @Security Bearer
// @Param id path string true "Agreement ID"
// @Success 200 {object} utils.APIResponse{data=dto.AgreementDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /agreements/{id} [get]
func (h *AgreementHandler) Get(c *gin.Context) {
	agreementID, ok := pathID(c, "id", id.PrefixAgreement, "agreement")
	if !ok {
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetAgreementQuery{AgreementID: agreementID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetByNumber handles GET /agreements/by-number/:number
// @Summary Get agreement by number
// @Tags Agreements
// @Produce json
// @Security Bearer
// @Param number path string true "Agreement number, SA-xxxxx-yyyy"
// @Success 200 {object} utils.APIResponse{data=dto.AgreementDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /agreements/by-number/{number} [get]
func (h *AgreementHandler) GetByNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("agreement number is required"))
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetAgreementQuery{AgreementNumber: number})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /agreements
// @Summary List agreements
// @Tags Agreements
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Status filter"
// @Param installation_id query string false "Installation filter"
// @Param agreement_type query string false "Agreement type filter"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /agreements [get]
func (h *AgreementHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAgreementsQuery{
		InstallationID: c.Query("installation_id"),
		Status:         strings.ToUpper(c.Query("status")),
		AgreementType:  strings.ToUpper(c.Query("agreement_type")),
		Page:           p.Page,
		PageSize:       p.PageSize,
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Agreements, result.Total, result.Page, result.PageSize)
}

// RunMaintenance renews or expires agreements past their end date on demand.
func (h *AgreementHandler) RunMaintenance(c *gin.Context) {
	result, err := h.maintainUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("agreement maintenance triggered manually",
		"user_id", callerID(c),
		"renewed", result.Renewed,
		"expired", result.Expired,
		"failed", result.Failed,
	)
	utils.SuccessResponse(c, http.StatusOK, "Agreement maintenance completed", result)
}
