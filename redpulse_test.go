package redpulse

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redpulse/client-go/config"
	"github.com/redpulse/client-go/demo"
	"github.com/redpulse/client-go/session"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:  "http://127.0.0.1:1",
		AuthURL:  "http://127.0.0.1:1/auth/v1",
		DataURL:  "http://127.0.0.1:1/rest/v1",
		AnonKey:  "anon",
		Env:      "development",
		LogLevel: "error",
	}
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(&config.Config{})
	assert.ErrorIs(t, err, config.ErrBaseURLRequired)
}

func TestNewWiresMemoryStoreByDefault(t *testing.T) {
	client, err := New(testConfig())
	require.NoError(t, err)
	require.NotNil(t, client.Store)
	require.NotNil(t, client.Auth)
	require.NotNil(t, client.Resolver)
}

func TestDemoFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.StorePath = filepath.Join(t.TempDir(), "redpulse.json")

	client, err := New(cfg)
	require.NoError(t, err)

	result, err := client.Auth.SignIn(ctx, "patient@demo.com", demo.DemoPassword)
	require.NoError(t, err)
	require.NotNil(t, result.Session)

	// The whole backend surface works offline against the emulator.
	profile, err := client.API.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Priya Patel", profile.FullName)

	requests, err := client.API.NearbyRequests(ctx, result.Session.User.ID)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	for _, request := range requests {
		assert.Equal(t, "A+", request.BloodType)
	}

	// A fresh client over the same file resumes the demo session.
	reopened, err := New(cfg)
	require.NoError(t, err)
	decision := reopened.ResolveSession(ctx)
	assert.Equal(t, session.RouteDashboard, decision.Route)
	require.NotNil(t, decision.Profile)
	assert.Equal(t, "Priya Patel", decision.Profile.FullName)

	require.NoError(t, client.Auth.SignOut(ctx))
	decision = client.ResolveSession(ctx)
	assert.Equal(t, session.RouteLanding, decision.Route)
}

func TestProfileSetupFlags(t *testing.T) {
	ctx := context.Background()
	client, err := New(testConfig())
	require.NoError(t, err)

	done, err := client.ProfileCompleted(ctx, "donor@demo.com")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, client.MarkProfileCompleted(ctx, "donor@demo.com"))
	done, err = client.ProfileCompleted(ctx, "donor@demo.com")
	require.NoError(t, err)
	assert.True(t, done)

	skipped, err := client.ProfileSkipped(ctx, "donor@demo.com")
	require.NoError(t, err)
	assert.False(t, skipped)

	require.NoError(t, client.MarkProfileSkipped(ctx, "patient@demo.com"))
	skipped, err = client.ProfileSkipped(ctx, "patient@demo.com")
	require.NoError(t, err)
	assert.True(t, skipped)
}
