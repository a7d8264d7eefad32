package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findr-api/internal/config"
	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/infrastructure/rabbitmq"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:            "development",
		StoreBackend:      config.StoreMemory,
		SeedDemo:          true,
		JWTPrivateKeyPath: "/nonexistent/private.pem",
		JWTPublicKeyPath:  "/nonexistent/public.pem",
		JWTExpiry:         time.Hour,
		ImageMaxDim:       512,
	}
}

func TestOpenBackend_MemorySeeded(t *testing.T) {
	b, err := openBackend(context.Background(), testConfig())
	require.NoError(t, err)

	items, err := b.items.List(context.Background(), domain.ItemFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 4)
	staff, err := b.users.FirstByRole(context.Background(), domain.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", staff.UserID)
}

func TestOpenBackend_MemoryEmpty(t *testing.T) {
	cfg := testConfig()
	cfg.SeedDemo = false
	b, err := openBackend(context.Background(), cfg)
	require.NoError(t, err)
	items, err := b.items.List(context.Background(), domain.ItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpenBackend_Unknown(t *testing.T) {
	cfg := testConfig()
	cfg.StoreBackend = "postgres"
	_, err := openBackend(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenTokens_EphemeralOnlyInDevelopment(t *testing.T) {
	cfg := testConfig()
	p, err := openTokens(cfg)
	require.NoError(t, err)
	tok, err := p.Sign("user-1", domain.RoleStudent)
	require.NoError(t, err)
	claims, err := p.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	cfg.AppEnv = "production"
	_, err = openTokens(cfg)
	assert.Error(t, err)
}

func TestOpenEvents_WithoutBrokerLogs(t *testing.T) {
	assert.IsType(t, rabbitmq.LogPublisher{}, openEvents(testConfig()))
}

func TestBuildDeps_LoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	b, err := openBackend(ctx, cfg)
	require.NoError(t, err)
	tokens, err := openTokens(cfg)
	require.NoError(t, err)

	deps := buildDeps(ctx, cfg, b, tokens, rabbitmq.LogPublisher{})
	u, bearer, err := deps.Sessions.Login(ctx, domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.UserID)

	claims, err := deps.Tokens.Verify(bearer)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, claims.Role)

	_, err = deps.Media.UploadItemImage(ctx, u.UserID, nil)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
