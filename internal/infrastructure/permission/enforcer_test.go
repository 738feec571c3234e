package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"solarops/internal/domain/permission"
	"solarops/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, logger.NewLogger())
	require.NoError(t, err)
	require.NoError(t, InitDefaultPermissions(e, logger.NewLogger()))
	return e, db
}

func TestEnforcer_DefaultRoleMatrix(t *testing.T) {
	e, _ := newTestEnforcer(t)

	tests := []struct {
		name     string
		roles    []string
		resource permission.Resource
		action   permission.Action
		want     bool
	}{
		{"admin writes templates", []string{"admin"}, permission.ResourceTemplates, permission.ActionWrite, true},
		{"admin writes checklists", []string{"admin"}, permission.ResourceChecklists, permission.ActionWrite, true},
		{"dispatcher writes agreements", []string{"dispatcher"}, permission.ResourceAgreements, permission.ActionWrite, true},
		{"dispatcher writes visits", []string{"dispatcher"}, permission.ResourceVisits, permission.ActionWrite, true},
		{"dispatcher reads templates", []string{"dispatcher"}, permission.ResourceTemplates, permission.ActionRead, true},
		{"dispatcher cannot write templates", []string{"dispatcher"}, permission.ResourceTemplates, permission.ActionWrite, false},
		{"dispatcher cannot write checklists", []string{"dispatcher"}, permission.ResourceChecklists, permission.ActionWrite, false},
		{"technician writes checklists", []string{"technician"}, permission.ResourceChecklists, permission.ActionWrite, true},
		{"technician reads agreements", []string{"technician"}, permission.ResourceAgreements, permission.ActionRead, true},
		{"technician cannot write agreements", []string{"technician"}, permission.ResourceAgreements, permission.ActionWrite, false},
		{"technician cannot write addons", []string{"technician"}, permission.ResourceAddons, permission.ActionWrite, false},
		{"any role suffices", []string{"technician", "dispatcher"}, permission.ResourceAgreements, permission.ActionWrite, true},
		{"unknown role", []string{"customer"}, permission.ResourceAgreements, permission.ActionRead, false},
		{"no roles", nil, permission.ResourceAgreements, permission.ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := e.Enforce(tt.roles, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestEnforcer_PoliciesPersistAndInitIsIdempotent(t *testing.T) {
	e, db := newTestEnforcer(t)

	require.NoError(t, InitDefaultPermissions(e, logger.NewLogger()))

	var count int64
	require.NoError(t, db.Table("casbin_rule").Count(&count).Error)
	assert.Equal(t, int64(len(permission.DefaultPolicies())), count)

	require.NoError(t, e.AddPolicy("auditor", permission.ResourceVisits, permission.ActionRead))
	reloaded, err := NewEnforcer(db, logger.NewLogger())
	require.NoError(t, err)

	allowed, err := reloaded.Enforce([]string{"auditor"}, permission.ResourceVisits, permission.ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, reloaded.RemovePolicy("auditor", permission.ResourceVisits, permission.ActionRead))
	require.NoError(t, reloaded.LoadPolicy())
	allowed, err = reloaded.Enforce([]string{"auditor"}, permission.ResourceVisits, permission.ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)

	perms, err := reloaded.GetPermissionsForRole("technician")
	require.NoError(t, err)
	assert.Len(t, perms, 6)
}
