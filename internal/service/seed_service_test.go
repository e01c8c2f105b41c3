package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func seedConfigForTest() config.SeedConfig {
	return config.SeedConfig{
		Enabled:       true,
		AdminEmail:    "admin@ticketing.com",
		AdminPassword: "admin123",
		AdminName:     "System Administrator",
	}
}

func TestSeedServiceCreatesAdminOnce(t *testing.T) {
	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	svc := NewSeedService(users, roles, seedConfigForTest(), 4, zap.NewNop())

	require.NoError(t, svc.Run(context.Background()))

	admin, err := users.GetByEmail(context.Background(), "admin@ticketing.com")
	require.NoError(t, err)
	require.True(t, admin.Active)
	require.True(t, admin.HasRole(domain.RoleAdmin))

	// A second run leaves the existing account untouched.
	require.NoError(t, svc.Run(context.Background()))
	all, err := users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSeedServiceDisabled(t *testing.T) {
	users := newFakeUserRepo()
	cfg := seedConfigForTest()
	cfg.Enabled = false
	svc := NewSeedService(users, newFakeRoleRepo(), cfg, 4, zap.NewNop())

	require.NoError(t, svc.Run(context.Background()))

	all, err := users.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}
