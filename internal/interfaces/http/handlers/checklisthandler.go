package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"solarops/internal/application/checklist/usecases"
	visitusecases "solarops/internal/application/visit/usecases"
	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/shared/auth"
	"solarops/internal/shared/constants"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/id"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

// ChecklistUseCases groups the executors behind the checklist endpoints.
// Visit resolves visit ownership for field-only callers.
type ChecklistUseCases struct {
	Create      usecases.CreateChecklistExecutor
	Start       usecases.StartChecklistExecutor
	UpdateItem  usecases.UpdateItemExecutor
	UpdateItems usecases.UpdateItemsExecutor
	Complete    usecases.CompleteChecklistExecutor
	Get         usecases.GetChecklistExecutor
	ListByVisit usecases.ListVisitChecklistsExecutor
	Report      usecases.ChecklistReportExecutor
	Visit       visitusecases.GetVisitExecutor
}

type ChecklistHandler struct {
	ucs    ChecklistUseCases
	logger logger.Interface
}

func NewChecklistHandler(ucs ChecklistUseCases, logger logger.Interface) *ChecklistHandler {
	return &ChecklistHandler{
		ucs:    ucs,
		logger: logger,
	}
}

type CreateChecklistRequest struct {
	TemplateID   string `json:"template_id" binding:"required"`
	TechnicianID string `json:"technician_id"`
}

type GPSRequest struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

type ItemUpdateRequest struct {
	ItemID        string      `json:"item_id"`
	Status        *string     `json:"status"`
	Value         *string     `json:"value" binding:"omitempty,max=2000"`
	NumericValue  *float64    `json:"numeric_value"`
	Notes         *string     `json:"notes" binding:"omitempty,max=2000"`
	Severity      *string     `json:"severity"`
	ClearSeverity bool        `json:"clear_severity"`
	PhotoURLs     []string    `json:"photo_urls" binding:"omitempty,max=20,dive,url"`
	GPS           *GPSRequest `json:"gps"`
}

type UpdateItemsRequest struct {
	Items []ItemUpdateRequest `json:"items" binding:"required,min=1,dive"`
}

type CompleteChecklistRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

func (r ItemUpdateRequest) toInput() usecases.ItemInput {
	in := usecases.ItemInput{
		ItemID:        r.ItemID,
		Status:        r.Status,
		Value:         r.Value,
		NumericValue:  r.NumericValue,
		Notes:         r.Notes,
		Severity:      r.Severity,
		ClearSeverity: r.ClearSeverity,
		PhotoURLs:     r.PhotoURLs,
	}
	if r.GPS != nil {
		in.GPS = &vo.GPS{Latitude: r.GPS.Latitude, Longitude: r.GPS.Longitude}
	}
	return in
}

// ownsVisit writes a 403 when a field-only caller works on another
// technician's visit.
func (h *ChecklistHandler) ownsVisit(c *gin.Context, visitID string) bool {
	if !auth.IsFieldOnly(callerRoles(c)) {
		return true
	}
	v, err := h.ucs.Visit.Execute(c.Request.Context(), visitID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return false
	}
	if v.TechnicianID != callerID(c) {
		h.logger.Warnw("technician denied access to visit checklists", "user_id", callerID(c), "visit_id", visitID)
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("visit is assigned to another technician"))
		return false
	}
	return true
}

// checklistID reads :id and, for field-only callers, checks the checklist's visit.
func (h *ChecklistHandler) checklistID(c *gin.Context) (string, bool) {
	checklistID, ok := pathID(c, "id", id.PrefixChecklist, "checklist")
	if !ok {
		return "", false
	}
	if !auth.IsFieldOnly(callerRoles(c)) {
		return checklistID, true
	}
	chk, err := h.ucs.Get.Execute(c.Request.Context(), checklistID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", false
	}
	if !h.ownsVisit(c, chk.VisitID) {
		return "", false
	}
	return checklistID, true
}

// Create instantiates a checklist for the visit in :id from a template.
// @Summary Create a checklist for a visit
// @Tags Checklists
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Visit ID"
// @Param request body CreateChecklistRequest true "Template to instantiate"
// @Success 201 {object} utils.APIResponse{data=dto.ChecklistDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /visits/{id}/checklists [post]
func (h *ChecklistHandler) Create(c *gin.Context) {
	visitID, ok := pathID(c, "id", id.PrefixVisit, "visit")
	if !ok {
		return
	}
	if !h.ownsVisit(c, visitID) {
		return
	}

	var req CreateChecklistRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.ucs.Create.Execute(c.Request.Context(), usecases.CreateChecklistCommand{
		VisitID:      visitID,
		TemplateID:   req.TemplateID,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Checklist created successfully")
}

func (h *ChecklistHandler) ListByVisit(c *gin.Context) {
	visitID, ok := pathID(c, "id", id.PrefixVisit, "visit")
	if !ok {
		return
	}
	if !h.ownsVisit(c, visitID) {
		return
	}

	result, err := h.ucs.ListByVisit.Execute(c.Request.Context(), visitID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ChecklistHandler) Get(c *gin.Context) {
	checklistID, ok := pathID(c, "id", id.PrefixChecklist, "checklist")
	if !ok {
		return
	}

	result, err := h.ucs.Get.Execute(c.Request.Context(), checklistID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !h.ownsVisit(c, result.VisitID) {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ChecklistHandler) Start(c *gin.Context) {
	checklistID, ok := h.checklistID(c)
	if !ok {
		return
	}

	result, err := h.ucs.Start.Execute(c.Request.Context(), usecases.StartChecklistCommand{ChecklistID: checklistID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checklist started", result)
}

// UpdateItem patches the item in :item_id.
func (h *ChecklistHandler) UpdateItem(c *gin.Context) {
	checklistID, ok := h.checklistID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id", id.PrefixChecklistItem, "checklist item")
	if !ok {
		return
	}

	var req ItemUpdateRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}
	req.ItemID = itemID

	result, err := h.ucs.UpdateItem.Execute(c.Request.Context(), usecases.UpdateItemCommand{
		ChecklistID: checklistID,
		Item:        req.toInput(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checklist item updated", result)
}

// UpdateItems applies a batch of item updates; either all apply or none do.
// @Summary Update checklist items
// @Description Apply a batch of item updates; CHOICE answers must be one of the template options
// @Tags Checklists
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Checklist ID"
// @Param request body UpdateItemsRequest true "Item updates"
// @Success 200 {object} utils.APIResponse{data=dto.ChecklistDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /checklists/{id}/items [patch]
func (h *ChecklistHandler) UpdateItems(c *gin.Context) {
	checklistID, ok := h.checklistID(c)
	if !ok {
		return
	}

	var req UpdateItemsRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	items := make([]usecases.ItemInput, 0, len(req.Items))
	for i, item := range req.Items {
		if item.ItemID == "" {
			utils.ErrorResponseWithError(c, errors.NewValidationError("item_id is required", fmt.Sprintf("items[%d]", i)))
			return
		}
		items = append(items, item.toInput())
	}

	result, err := h.ucs.UpdateItems.Execute(c.Request.Context(), usecases.UpdateItemsCommand{
		ChecklistID: checklistID,
		Items:       items,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checklist items updated", result)
}

// Complete handles POST /checklists/:id/complete
// @Summary Complete a checklist
// @Description Rejected while mandatory items are pending
// @Tags Checklists
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Checklist ID"
// @Param request body CompleteChecklistRequest true "Technician notes"
// @Success 200 {object} utils.APIResponse{data=dto.ChecklistDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /checklists/{id}/complete [post]
func (h *ChecklistHandler) Complete(c *gin.Context) {
	checklistID, ok := h.checklistID(c)
	if !ok {
		return
	}

	var req CompleteChecklistRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.ucs.Complete.Execute(c.Request.Context(), usecases.CompleteChecklistCommand{
		ChecklistID: checklistID,
		Notes:       req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checklist completed", result)
}

// Report serves the findings report as HTML, or as JSON with format=json.
func (h *ChecklistHandler) Report(c *gin.Context) {
	checklistID, ok := h.checklistID(c)
	if !ok {
		return
	}

	result, err := h.ucs.Report.Execute(c.Request.Context(), checklistID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if c.Query("format") == "json" {
		utils.SuccessResponse(c, http.StatusOK, "", result)
		return
	}
	c.Data(http.StatusOK, constants.ContentTypeHTML, []byte(result.HTML))
}
