package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"

	APIVersionPrefix = "/api/v1"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRoles = "user_roles"
	ContextKeyRequestID = "request_id"

	// Roles
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleTechnician = "technician"

	// Database table names
	TableInstallations      = "installations"
	TableServiceAgreements  = "service_agreements"
	TableAgreementAddons    = "agreement_addons"
	TableAddonProducts      = "addon_products"
	TableServicePlans       = "service_plans"
	TableServiceVisits      = "service_visits"
	TableVisitPhotos        = "visit_photos"
	TableChecklistTemplates = "checklist_templates"
	TableTemplateItems      = "checklist_template_items"
	TableChecklists         = "checklists"
	TableChecklistItems     = "checklist_items"
	TableSequences          = "sequences"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
