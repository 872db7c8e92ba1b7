// Package redpulse assembles the RedPulse client: a connectivity-aware
// session and authentication layer over the hosted backend, with a local
// demo backend substituted transparently whenever the real one is
// unreachable.
package redpulse

import (
	"context"

	"github.com/redpulse/client-go/api"
	"github.com/redpulse/client-go/auth"
	"github.com/redpulse/client-go/config"
	"github.com/redpulse/client-go/demo"
	"github.com/redpulse/client-go/identity"
	"github.com/redpulse/client-go/probe"
	"github.com/redpulse/client-go/session"
	"github.com/redpulse/client-go/store"
	"github.com/redpulse/client-go/store/file"
	"github.com/redpulse/client-go/utils/logger"
)

// Client is the assembled SDK surface.
type Client struct {
	Store    store.Store
	Prober   *probe.Prober
	Identity *identity.Client
	Demo     *demo.Emulator
	API      *api.Client
	Auth     *auth.Gateway
	Resolver *session.Resolver
}

// New wires the client from configuration. A StorePath selects the durable
// file store; otherwise state lives in memory only.
func New(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(&logger.Config{Level: cfg.LogLevel, Env: cfg.Env})

	var s store.Store
	if cfg.StorePath != "" {
		fileStore, err := file.New(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		s = fileStore
	} else {
		s = store.NewMemory()
	}

	prober := probe.New(probe.Config{
		BaseURL:     cfg.BaseURL,
		AuthURL:     cfg.AuthURL,
		DataURL:     cfg.DataURL,
		InternetURL: cfg.InternetProbeURL,
		AnonKey:     cfg.AnonKey,
	})

	idsvc := identity.New(identity.Config{
		AuthURL: cfg.AuthURL,
		AnonKey: cfg.AnonKey,
	}, s)

	emulator := demo.NewEmulator(s, demo.Config{
		DisableLatency:  !cfg.DemoLatency,
		StrictEndpoints: cfg.StrictDemoEndpoints,
	})

	apiClient := api.NewClient(api.Config{
		BaseURL:     cfg.BaseURL,
		AnonKey:     cfg.AnonKey,
		CallTimeout: cfg.CallTimeout,
	}, s, idsvc, emulator)

	gateway := auth.NewGateway(auth.Config{}, s, prober, idsvc, emulator, apiClient)

	resolver := session.NewResolver(session.Config{}, s, emulator, idsvc, apiClient)

	return &Client{
		Store:    s,
		Prober:   prober,
		Identity: idsvc,
		Demo:     emulator,
		API:      apiClient,
		Auth:     gateway,
		Resolver: resolver,
	}, nil
}

// ResolveSession runs the boot-time session resolution.
func (c *Client) ResolveSession(ctx context.Context) session.Decision {
	return c.Resolver.Resolve(ctx)
}

// MarkProfileCompleted records that email finished profile setup, so the
// setup screen is not offered again on later boots.
func (c *Client) MarkProfileCompleted(ctx context.Context, email string) error {
	return c.Store.Set(ctx, store.ProfileCompletedKey(email), "true")
}

// ProfileCompleted reports whether email finished profile setup.
func (c *Client) ProfileCompleted(ctx context.Context, email string) (bool, error) {
	return store.Has(ctx, c.Store, store.ProfileCompletedKey(email))
}

// MarkProfileSkipped records that email declined profile setup.
func (c *Client) MarkProfileSkipped(ctx context.Context, email string) error {
	return c.Store.Set(ctx, store.ProfileSkippedKey(email), "true")
}

// ProfileSkipped reports whether email declined profile setup.
func (c *Client) ProfileSkipped(ctx context.Context, email string) (bool, error) {
	return store.Has(ctx, c.Store, store.ProfileSkippedKey(email))
}
