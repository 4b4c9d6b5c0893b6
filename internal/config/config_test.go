package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.ApiServicePort)
	assert.EqualValues(t, 900, cfg.AccessTokenExpiration)
	assert.EqualValues(t, 604800, cfg.RefreshTokenExpiration)
	assert.EqualValues(t, 3600, cfg.TokenSweepInterval)
	assert.EqualValues(t, 300, cfg.EntryCacheTTL)
	assert.NotEmpty(t, cfg.JWTAccessSecret)
	assert.NotEmpty(t, cfg.JWTRefreshSecret)
	assert.NotEqual(t, cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("API_SERVICE_PORT", "9999")
	t.Setenv("ACCESS_TOKEN_EXPIRATION", "60")
	t.Setenv("REFRESH_TOKEN_EXPIRATION", "not-a-number")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, "9999", cfg.ApiServicePort)
	assert.EqualValues(t, 60, cfg.AccessTokenExpiration)
	// Unparseable values fall back to the default
	assert.EqualValues(t, 604800, cfg.RefreshTokenExpiration)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestRole_Can(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		capability Capability
		want       bool
	}{
		{name: "user writes entries", role: RoleUser, capability: CapWriteEntries, want: true},
		{name: "user cannot list users", role: RoleUser, capability: CapListUsers, want: false},
		{name: "admin writes entries", role: RoleAdmin, capability: CapWriteEntries, want: true},
		{name: "admin lists users", role: RoleAdmin, capability: CapListUsers, want: true},
		{name: "unknown role has nothing", role: Role("ghost"), capability: CapWriteEntries, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Can(tt.capability))
		})
	}
}
