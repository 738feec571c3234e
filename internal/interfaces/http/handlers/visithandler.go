package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"solarops/internal/application/visit/usecases"
	"solarops/internal/shared/auth"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/id"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

// VisitUseCases groups the executors behind the visit endpoints.
type VisitUseCases struct {
	Create          usecases.CreateVisitExecutor
	Start           usecases.StartVisitExecutor
	Complete        usecases.CompleteVisitExecutor
	Cancel          usecases.CancelVisitExecutor
	Reschedule      usecases.RescheduleVisitExecutor
	Update          usecases.UpdateVisitExecutor
	RecordSignature usecases.RecordSignatureExecutor
	AddPhoto        usecases.AddPhotoExecutor
	Get             usecases.GetVisitExecutor
	List            usecases.ListVisitsExecutor
	ExportInvoice   usecases.ExportInvoiceExecutor
}

// VisitHandler serves the visit endpoints. Callers holding only the technician
// role are limited to visits assigned to them.
type VisitHandler struct {
	ucs    VisitUseCases
	logger logger.Interface
}

func NewVisitHandler(ucs VisitUseCases, logger logger.Interface) *VisitHandler {
	return &VisitHandler{
		ucs:    ucs,
		logger: logger,
	}
}

type CreateVisitRequest struct {
	AgreementID      string  `json:"agreement_id" binding:"required"`
	TechnicianID     string  `json:"technician_id"`
	ScheduledDate    string  `json:"scheduled_date" binding:"required"`
	ScheduledEndDate *string `json:"scheduled_end_date"`
	VisitType        string  `json:"visit_type"`
	Notes            string  `json:"notes" binding:"max=2000"`
}

type CompleteVisitRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

type CancelVisitRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type RescheduleVisitRequest struct {
	ScheduledDate    string  `json:"scheduled_date" binding:"required"`
	ScheduledEndDate *string `json:"scheduled_end_date"`
}

type UpdateVisitRequest struct {
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
	TechnicianID *string `json:"technician_id"`
}

type RecordSignatureRequest struct {
	Signature string `json:"signature" binding:"required"`
}

type AddPhotoRequest struct {
	URL     string     `json:"url" binding:"required,url,max=1000"`
	Caption string     `json:"caption" binding:"max=500"`
	TakenAt *time.Time `json:"taken_at"`
}

// authorizeVisit writes a 403 when a field-only caller touches another
// technician's visit.
func (h *VisitHandler) authorizeVisit(c *gin.Context, visitID string) bool {
	if !auth.IsFieldOnly(callerRoles(c)) {
		return true
	}
	v, err := h.ucs.Get.Execute(c.Request.Context(), visitID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return false
	}
	if v.TechnicianID != callerID(c) {
		h.logger.Warnw("technician denied access to visit",
			"user_id", callerID(c),
			"visit_id", visitID,
		)
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("visit is assigned to another technician"))
		return false
	}
	return true
}

// visitID reads the :id parameter and checks ownership.
func (h *VisitHandler) visitID(c *gin.Context) (string, bool) {
	visitID, ok := pathID(c, "id", id.PrefixVisit, "visit")
	if !ok {
		return "", false
	}
	if !h.authorizeVisit(c, visitID) {
		return "", false
	}
	return visitID, true
}

// Create handles POST /visits
// @Summary Schedule a visit
// @Tags Visits
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateVisitRequest true "Visit data"
// @Success 201 {object} utils.APIResponse{data=dto.VisitDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /visits [post]
func (h *VisitHandler) Create(c *gin.Context) {
	var req CreateVisitRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	scheduled, err := parseDate("scheduled_date", req.ScheduledDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	scheduledEnd, err := parseOptionalDate("scheduled_end_date", req.ScheduledEndDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ucs.Create.Execute(c.Request.Context(), usecases.CreateVisitCommand{
		AgreementID:      req.AgreementID,
		TechnicianID:     req.TechnicianID,
		ScheduledDate:    scheduled,
		ScheduledEndDate: scheduledEnd,
		VisitType:        strings.ToUpper(req.VisitType),
		Notes:            req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Visit scheduled successfully")
}

func (h *VisitHandler) Get(c *gin.Context) {
	visitID, ok := pathID(c, "id", id.PrefixVisit, "visit")
	if !ok {
		return
	}

	result, err := h.ucs.Get.Execute(c.Request.Context(), visitID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if auth.IsFieldOnly(callerRoles(c)) && result.TechnicianID != callerID(c) {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("visit is assigned to another technician"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List filters by agreement_id, technician_id, status and a scheduled date
// range given as from/to in YYYY-MM-DD.
func (h *VisitHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	from, err := utils.ParseDateQuery(c, "from")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	to, err := utils.ParseDateQuery(c, "to")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	technicianID := c.Query("technician_id")
	if auth.IsFieldOnly(callerRoles(c)) {
		technicianID = callerID(c)
	}

	result, err := h.ucs.List.Execute(c.Request.Context(), usecases.ListVisitsQuery{
		AgreementID:  c.Query("agreement_id"),
		TechnicianID: technicianID,
		Status:       strings.ToUpper(c.Query("status")),
		From:         from,
		To:           to,
		Page:         p.Page,
		PageSize:     p.PageSize,
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Visits, result.Total, result.Page, result.PageSize)
}

// Start handles POST /visits/:id/start
// @Summary Start a visit
// @Tags Visits
// @Produce json
// @Security Bearer
// @Param id path string true "Visit ID"
// @Success 200 {object} utils.APIResponse{data=dto.VisitDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /visits/{id}/start [post]
func (h *VisitHandler) Start(c *gin.Context) {
	visitID, ok := h.visitID(c)
	if !ok {
		return
	}

	result, err := h.ucs.Start.Execute(c.Request.Context(), usecases.StartVisitCommand{VisitID: visitID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visit started", result)
}

// Complete handles POST /visits/:id/complete
// @Summary Complete a visit
// @Description Every checklist of the visit must be completed first
// @Tags Visits
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Visit ID"
// @Param request body CompleteVisitRequest true "Closing notes"
// @Success 200 {object} utils.APIResponse{data=dto.VisitDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /visits/{id}/complete [post]
func (h *VisitHandler) Complete(c *gin.Context) {
	visitID, ok := h.visitID(c)
	if !ok {
		return
	}

	var req CompleteVisitRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.ucs.Complete.Execute(c.Request.Context(), usecases.CompleteVisitCommand{
		VisitID: visitID,
		Notes:   req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visit completed", result)
}

// Cancel handles POST /visits/:id/cancel
// @Summary Cancel a visit
// @Tags Visits
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Visit ID"
// @Param request body CancelVisitRequest true "Cancellation reason"
// @Success 200 {object} utils.APIResponse{data=dto.VisitDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /visits/{id}/cancel [post]
func (h *VisitHandler) Cancel(c *gin.Context) {
	visitID, ok := pathID(c, "id", id.PrefixVisit, "visit")
	if !ok {
		return
	}

	var req CancelVisitRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.ucs.Cancel.Execute(c.Request.Context(), usecases.CancelVisitCommand{
		VisitID: visitID,
		Reason:  req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visit cancelled", result)
}

// Reschedule handles POST /visits/:id/reschedule
// @Summary Reschedule a visit
// @Tags Visits
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Visit ID"
// @Param request body RescheduleVisitRequest true "New date"
// @Success 200 {object} utils.APIResponse{data=dto.VisitDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /visits/{id}/reschedule [post]
func (h *VisitHandler) Reschedule(c *gin.Context) {
	visitID, ok := pathID(c, "id", id.PrefixVisit, "visit")
	if !ok {
		return
	}

	var req RescheduleVisitRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}
	scheduled, err := parseDate("scheduled_date", req.ScheduledDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	scheduledEnd, err := parseOptionalDate("scheduled_end_date", req.ScheduledEndDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ucs.Reschedule.Execute(c.Request.Context(), usecases.RescheduleVisitCommand{
		VisitID:          visitID,
		ScheduledDate:    scheduled,
		ScheduledEndDate: scheduledEnd,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visit rescheduled", result)
}

func (h *VisitHandler) Update(c *gin.Context) {
	visitID, ok := h.visitID(c)
	if !ok {
		return
	}

	var req UpdateVisitRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}
	if req.TechnicianID != nil && auth.IsFieldOnly(callerRoles(c)) {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("technicians cannot reassign visits"))
		return
	}

	result, err := h.ucs.Update.Execute(c.Request.Context(), usecases.UpdateVisitCommand{
		VisitID:      visitID,
		Notes:        req.Notes,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Visit updated successfully", result)
}

func (h *VisitHandler) RecordSignature(c *gin.Context) {
	visitID, ok := h.visitID(c)
	if !ok {
		return
	}

	var req RecordSignatureRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.ucs.RecordSignature.Execute(c.Request.Context(), usecases.RecordSignatureCommand{
		VisitID:   visitID,
		Signature: req.Signature,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Signature recorded", result)
}

func (h *VisitHandler) AddPhoto(c *gin.Context) {
	visitID, ok := h.visitID(c)
	if !ok {
		return
	}

	var req AddPhotoRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.ucs.AddPhoto.Execute(c.Request.Context(), usecases.AddPhotoCommand{
		VisitID: visitID,
		URL:     req.URL,
		Caption: req.Caption,
		TakenAt: req.TakenAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Photo added")
}

func (h *VisitHandler) ExportInvoice(c *gin.Context) {
	visitID, ok := pathID(c, "id", id.PrefixVisit, "visit")
	if !ok {
		return
	}

	result, err := h.ucs.ExportInvoice.Execute(c.Request.Context(), usecases.ExportInvoiceCommand{VisitID: visitID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := "Invoice exported"
	if result.Skipped {
		msg = "Nothing to invoice"
	}
	utils.SuccessResponse(c, http.StatusOK, msg, result)
}
