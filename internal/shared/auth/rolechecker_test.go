package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleChecks(t *testing.T) {
	tests := []struct {
		name      string
		roles     []string
		admin     bool
		fieldOnly bool
	}{
		{name: "admin", roles: []string{"admin"}, admin: true},
		{name: "technician", roles: []string{"technician"}, fieldOnly: true},
		{name: "technician and dispatcher", roles: []string{"technician", "dispatcher"}},
		{name: "none", roles: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.admin, IsAdmin(tt.roles))
			assert.Equal(t, tt.fieldOnly, IsFieldOnly(tt.roles))
		})
	}
	assert.True(t, HasRole([]string{"dispatcher"}, "dispatcher"))
}
