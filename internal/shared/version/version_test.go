package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "v1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "v1.2.3", Normalize(" v1.2.3 "))
	assert.Equal(t, "", Normalize("  "))
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"v1.4.0", true},
		{"1.4.0", true},
		{"v1.4.0-rc.1", false},
		{"dev", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRelease(tt.in))
		})
	}
}

func TestGet(t *testing.T) {
	orig := Current
	t.Cleanup(func() { Current = orig })

	Current = "v2.1.0"
	info := Get()
	assert.Equal(t, "v2.1.0", info.Version)
	assert.Equal(t, "v2", info.Major)
	assert.True(t, info.Release)

	Current = "dev"
	info = Get()
	assert.Empty(t, info.Major)
	assert.False(t, info.Release)
}
