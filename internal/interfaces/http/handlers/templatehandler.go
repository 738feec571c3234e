package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"solarops/internal/application/checklist/usecases"
	"solarops/internal/shared/id"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

// TemplateUseCases groups the executors behind the checklist template endpoints.
type TemplateUseCases struct {
	Create usecases.CreateTemplateExecutor
	Revise usecases.ReviseTemplateExecutor
	Get    usecases.GetTemplateExecutor
	List   usecases.ListTemplatesExecutor
	Seed   usecases.SeedTemplatesExecutor
}

type TemplateHandler struct {
	ucs    TemplateUseCases
	logger logger.Interface
}

func NewTemplateHandler(ucs TemplateUseCases, logger logger.Interface) *TemplateHandler {
	return &TemplateHandler{
		ucs:    ucs,
		logger: logger,
	}
}

type TemplateItemRequest struct {
	Category      string   `json:"category" binding:"required,max=100"`
	SortOrder     int      `json:"sort_order"`
	Description   string   `json:"description" binding:"required,max=500"`
	InputType     string   `json:"input_type"`
	MinValue      *float64 `json:"min_value"`
	MaxValue      *float64 `json:"max_value"`
	Options       []string `json:"options"`
	IsMandatory   bool     `json:"is_mandatory"`
	PhotoRequired bool     `json:"photo_required"`
	HelpText      string   `json:"help_text" binding:"max=1000"`
}

type TemplateRequest struct {
	Name        string                `json:"name" binding:"required,max=200"`
	Description string                `json:"description" binding:"max=1000"`
	SystemType  string                `json:"system_type"`
	VisitType   string                `json:"visit_type"`
	Items       []TemplateItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r TemplateRequest) toInput() usecases.TemplateInput {
	in := usecases.TemplateInput{
		Name:        r.Name,
		Description: r.Description,
		SystemType:  strings.ToUpper(r.SystemType),
		VisitType:   strings.ToUpper(r.VisitType),
		Items:       make([]usecases.TemplateItemInput, 0, len(r.Items)),
	}
	for i, item := range r.Items {
		sortOrder := item.SortOrder
		if sortOrder == 0 {
			sortOrder = i + 1
		}
		in.Items = append(in.Items, usecases.TemplateItemInput{
			Category:      item.Category,
			SortOrder:     sortOrder,
			Description:   item.Description,
			InputType:     strings.ToUpper(item.InputType),
			MinValue:      item.MinValue,
			MaxValue:      item.MaxValue,
			Options:       item.Options,
			IsMandatory:   item.IsMandatory,
			PhotoRequired: item.PhotoRequired,
			HelpText:      item.HelpText,
		})
	}
	return in
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req TemplateRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.ucs.Create.Execute(c.Request.Context(), usecases.CreateTemplateCommand{TemplateInput: req.toInput()})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Template created successfully")
}

// Revise stores a new version of the template in :id.
func (h *TemplateHandler) Revise(c *gin.Context) {
	templateID, ok := pathID(c, "id", id.PrefixTemplate, "template")
	if !ok {
		return
	}

	var req TemplateRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	result, err := h.ucs.Revise.Execute(c.Request.Context(), usecases.ReviseTemplateCommand{
		TemplateID:    templateID,
		TemplateInput: req.toInput(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Template revised successfully")
}

func (h *TemplateHandler) Get(c *gin.Context) {
	templateID, ok := pathID(c, "id", id.PrefixTemplate, "template")
	if !ok {
		return
	}

	result, err := h.ucs.Get.Execute(c.Request.Context(), templateID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TemplateHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))

	result, err := h.ucs.List.Execute(c.Request.Context(), usecases.ListTemplatesQuery{
		SystemType:      strings.ToUpper(c.Query("system_type")),
		VisitType:       strings.ToUpper(c.Query("visit_type")),
		IncludeInactive: includeInactive,
		Page:            p.Page,
		PageSize:        p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Templates, result.Total, result.Page, result.PageSize)
}

// Seed installs the built-in templates; existing names are skipped.
func (h *TemplateHandler) Seed(c *gin.Context) {
	result, err := h.ucs.Seed.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("built-in templates seeded", "user_id", callerID(c), "created", len(result.Created), "skipped", len(result.Skipped))
	utils.SuccessResponse(c, http.StatusOK, "Templates seeded", result)
}
