package permission

import "solarops/internal/shared/constants"

type Resource string

const (
	ResourceAll           Resource = "*"
	ResourceInstallations Resource = "installations"
	ResourceAgreements    Resource = "agreements"
	ResourceAddons        Resource = "addons"
	ResourceVisits        Resource = "visits"
	ResourceChecklists    Resource = "checklists"
	ResourceTemplates     Resource = "templates"
)

func (r Resource) String() string { return string(r) }

type Action string

const (
	ActionAll   Action = "*"
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

func (a Action) String() string { return string(a) }

// Policy grants a role an action on a resource.
type Policy struct {
	Role     string
	Resource Resource
	Action   Action
}

// DefaultPolicies is the built-in role matrix.
func DefaultPolicies() []Policy {
	return []Policy{
		{Role: constants.RoleAdmin, Resource: ResourceAll, Action: ActionAll},

		{Role: constants.RoleDispatcher, Resource: ResourceInstallations, Action: ActionRead},
		{Role: constants.RoleDispatcher, Resource: ResourceInstallations, Action: ActionWrite},
		{Role: constants.RoleDispatcher, Resource: ResourceAgreements, Action: ActionRead},
		{Role: constants.RoleDispatcher, Resource: ResourceAgreements, Action: ActionWrite},
		{Role: constants.RoleDispatcher, Resource: ResourceAddons, Action: ActionRead},
		{Role: constants.RoleDispatcher, Resource: ResourceAddons, Action: ActionWrite},
		{Role: constants.RoleDispatcher, Resource: ResourceVisits, Action: ActionRead},
		{Role: constants.RoleDispatcher, Resource: ResourceVisits, Action: ActionWrite},
		{Role: constants.RoleDispatcher, Resource: ResourceTemplates, Action: ActionRead},

		{Role: constants.RoleTechnician, Resource: ResourceAgreements, Action: ActionRead},
		{Role: constants.RoleTechnician, Resource: ResourceVisits, Action: ActionRead},
		{Role: constants.RoleTechnician, Resource: ResourceVisits, Action: ActionWrite},
		{Role: constants.RoleTechnician, Resource: ResourceChecklists, Action: ActionRead},
		{Role: constants.RoleTechnician, Resource: ResourceChecklists, Action: ActionWrite},
		{Role: constants.RoleTechnician, Resource: ResourceTemplates, Action: ActionRead},
	}
}
