package permission

// PermissionEnforcer decides whether any of a caller's roles may perform an
// action on a resource.
type PermissionEnforcer interface {
	Enforce(roles []string, resource Resource, action Action) (bool, error)
	AddPolicy(role string, resource Resource, action Action) error
	RemovePolicy(role string, resource Resource, action Action) error
	GetPermissionsForRole(role string) ([][]string, error)
	LoadPolicy() error
}
