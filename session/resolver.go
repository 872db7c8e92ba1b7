// Package session decides, once per application boot, whether the user
// lands on the authenticated dashboard or the unauthenticated landing
// screen, without ever blocking indefinitely on the network.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/redpulse/client-go/demo"
	"github.com/redpulse/client-go/enums"
	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/store"
	"github.com/redpulse/client-go/utils"
	"github.com/redpulse/client-go/utils/logger"
)

type Route string

const (
	RouteDashboard Route = "dashboard"
	RouteLanding   Route = "landing"
)

// Decision is the resolver's terminal state.
type Decision struct {
	Route   Route
	Kind    enums.SessionKind
	Profile *models.Profile
}

// SessionVerifier checks that a real backend session is live.
type SessionVerifier interface {
	GetSession(ctx context.Context) (*models.Session, error)
}

// ProfileFetcher loads the profile paired with the current session.
type ProfileFetcher interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
}

// Config holds the configuration for the resolver.
type Config struct {
	// VerifyTimeout bounds the real-session verification race.
	VerifyTimeout time.Duration
	// WatchdogTimeout is the hard upper bound from boot to a terminal
	// decision. It is a last resort, not part of the normal control path.
	WatchdogTimeout time.Duration
}

type Resolver struct {
	cfg      Config
	store    store.Store
	emulator *demo.Emulator
	verifier SessionVerifier
	profiles ProfileFetcher
}

var errProfileHasNoRole = errors.New("profile carries no role")

func NewResolver(cfg Config, s store.Store, emulator *demo.Emulator, verifier SessionVerifier, profiles ProfileFetcher) *Resolver {
	if cfg.VerifyTimeout == 0 {
		cfg.VerifyTimeout = 2 * time.Second
	}
	if cfg.WatchdogTimeout == 0 {
		cfg.WatchdogTimeout = 5 * time.Second
	}

	return &Resolver{cfg: cfg, store: s, emulator: emulator, verifier: verifier, profiles: profiles}
}

// Resolve walks the boot state machine to a terminal decision. The watchdog
// guarantees one even if the verification race itself misbehaves.
func (r *Resolver) Resolve(ctx context.Context) Decision {
	decision, err := utils.Race(ctx, r.cfg.WatchdogTimeout, func(ctx context.Context) (Decision, error) {
		return r.resolve(ctx), nil
	})
	if err != nil {
		logger.LogWarn("session resolver watchdog fired", zap.Error(err))
		return Decision{Route: RouteLanding}
	}
	return decision
}

// ResolveAsync runs Resolve in its own goroutine so first paint can show a
// "checking" state eagerly and swap once the decision arrives.
func (r *Resolver) ResolveAsync(ctx context.Context) <-chan Decision {
	decisions := make(chan Decision, 1)
	go func() {
		decisions <- r.Resolve(ctx)
	}()
	return decisions
}

func (r *Resolver) resolve(ctx context.Context) Decision {
	// Demo session with a paired profile routes straight to the dashboard.
	if _, ok := r.emulator.ActiveSession(ctx); ok {
		if profile := r.demoProfile(ctx); profile != nil {
			logger.LogInfo("demo session found", zap.String("email", profile.Email))
			return Decision{Route: RouteDashboard, Kind: enums.SessionDemo, Profile: profile}
		}

		// Incomplete pairing: exactly one reconstruction attempt, then the
		// demo session is abandoned.
		profile, err := r.emulator.RestoreProfile(ctx)
		if err == nil {
			logger.LogInfo("demo session restored", zap.String("email", profile.Email))
			return Decision{Route: RouteDashboard, Kind: enums.SessionDemo, Profile: profile}
		}
		logger.LogWarn("demo session unrecoverable", zap.Error(err))
		_ = r.store.Remove(ctx, store.KeyDemoSession)
	}

	stay, err := r.store.Get(ctx, store.KeyStayLoggedIn)
	if err != nil || stay != "true" {
		return Decision{Route: RouteLanding}
	}

	profile, err := utils.Race(ctx, r.cfg.VerifyTimeout, r.verifyRealSession)
	if err != nil {
		logger.LogInfo("real session verification failed", zap.Error(err))
		_ = r.store.Remove(ctx, store.KeyStayLoggedIn)
		_ = r.store.Remove(ctx, store.KeyAccessToken)
		return Decision{Route: RouteLanding}
	}

	return Decision{Route: RouteDashboard, Kind: enums.SessionReal, Profile: profile}
}

func (r *Resolver) demoProfile(ctx context.Context) *models.Profile {
	raw, err := r.store.Get(ctx, store.KeyDemoProfile)
	if err != nil {
		return nil
	}

	var profile models.Profile
	if err := utils.BytesToStruct([]byte(raw), &profile); err != nil {
		_ = r.store.Remove(ctx, store.KeyDemoProfile)
		return nil
	}
	return &profile
}

// verifyRealSession succeeds only when the session is live and its profile
// carries a role.
func (r *Resolver) verifyRealSession(ctx context.Context) (*models.Profile, error) {
	if _, err := r.verifier.GetSession(ctx); err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}

	profile, err := r.profiles.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if profile.Role == "" {
		return nil, errProfileHasNoRole
	}
	return profile, nil
}
