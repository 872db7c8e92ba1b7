package demo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/store"
	"github.com/redpulse/client-go/utils"
	"github.com/redpulse/client-go/utils/logger"
)

var (
	ErrInvalidDemoCredentials = errors.New("invalid demo credentials")
	ErrUnknownDemoAccount     = errors.New("demo session email not in directory")
	ErrCorruptDemoSession     = errors.New("stored demo session is unparsable")
	ErrProfileNotFound        = errors.New("demo profile not found")
	ErrUnknownDemoEndpoint    = errors.New("unknown demo endpoint")
)

// Config holds the configuration for the emulator.
type Config struct {
	// MinLatency/MaxLatency bound the injected artificial latency. Both
	// default to the 200-500ms window that keeps loading-state UX honest.
	MinLatency time.Duration
	MaxLatency time.Duration
	// DisableLatency turns injection off entirely (tests).
	DisableLatency bool
	// StrictEndpoints makes unrecognized endpoints a hard error instead of
	// a generic success envelope. Intended for dev/test builds, where the
	// lenient envelope would mask calls to endpoints that do not exist.
	StrictEndpoints bool
}

// Emulator answers the backend's endpoint surface from local state only.
type Emulator struct {
	store store.Store
	cfg   Config

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewEmulator(s store.Store, cfg Config) *Emulator {
	if cfg.MinLatency == 0 {
		cfg.MinLatency = 200 * time.Millisecond
	}
	if cfg.MaxLatency == 0 {
		cfg.MaxLatency = 500 * time.Millisecond
	}

	return &Emulator{
		store: s,
		cfg:   cfg,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Authenticate checks credentials against the directory and, on success,
// activates a demo session. Activating a demo session clears any real
// session preference so at most one kind is ever live.
func (e *Emulator) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	account, ok := Lookup(email)
	if !ok || account.Password != password {
		return nil, ErrInvalidDemoCredentials
	}

	session := models.Session{
		AccessToken:  fmt.Sprintf("demo_token_%d_%s", time.Now().UnixMilli(), random.String(8)),
		RefreshToken: fmt.Sprintf("demo_refresh_%d_%s", time.Now().UnixMilli(), random.String(8)),
		User: models.SessionUser{
			ID:    account.Profile.ID,
			Email: account.Profile.Email,
		},
	}

	for _, key := range []string{store.KeyDemoSession, store.KeyDemoProfile, store.KeyStayLoggedIn, store.KeyAccessToken} {
		if err := e.store.Remove(ctx, key); err != nil {
			return nil, err
		}
	}

	sessionJSON, err := utils.StructToBytes(session)
	if err != nil {
		return nil, err
	}
	profileJSON, err := utils.StructToBytes(account.Profile)
	if err != nil {
		return nil, err
	}
	if err := e.store.Set(ctx, store.KeyDemoSession, string(sessionJSON)); err != nil {
		return nil, err
	}
	if err := e.store.Set(ctx, store.KeyDemoProfile, string(profileJSON)); err != nil {
		return nil, err
	}

	logger.LogInfo("demo authentication successful", zap.String("email", email))
	return &session, nil
}

// ActiveSession returns the stored demo session, if any. A stored record
// that no longer parses is purged and reported as absent.
func (e *Emulator) ActiveSession(ctx context.Context) (*models.Session, bool) {
	raw, err := e.store.Get(ctx, store.KeyDemoSession)
	if err != nil {
		return nil, false
	}

	var session models.Session
	if err := utils.BytesToStruct([]byte(raw), &session); err != nil {
		logger.LogWarn("purging corrupted demo session", zap.Error(err))
		_ = e.store.Remove(ctx, store.KeyDemoSession)
		return nil, false
	}
	return &session, true
}

// RestoreProfile rebuilds the demo profile from the directory, keyed by the
// stored session's email. It is idempotent: the same stored session always
// yields the same profile record.
func (e *Emulator) RestoreProfile(ctx context.Context) (*models.Profile, error) {
	raw, err := e.store.Get(ctx, store.KeyDemoSession)
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := utils.BytesToStruct([]byte(raw), &session); err != nil {
		_ = e.store.Remove(ctx, store.KeyDemoSession)
		return nil, fmt.Errorf("%w: %v", ErrCorruptDemoSession, err)
	}

	account, ok := Lookup(session.User.Email)
	if !ok {
		return nil, ErrUnknownDemoAccount
	}

	profileJSON, err := utils.StructToBytes(account.Profile)
	if err != nil {
		return nil, err
	}
	if err := e.store.Set(ctx, store.KeyDemoProfile, string(profileJSON)); err != nil {
		return nil, err
	}

	logger.LogInfo("demo profile restored", zap.String("email", session.User.Email))
	profile := account.Profile
	return &profile, nil
}

// EnsureProfile repairs the session/profile pairing: a demo session without
// a cached profile gets one restored from the directory.
func (e *Emulator) EnsureProfile(ctx context.Context) (*models.Profile, error) {
	raw, err := e.store.Get(ctx, store.KeyDemoProfile)
	if err == nil {
		var profile models.Profile
		if err := utils.BytesToStruct([]byte(raw), &profile); err == nil {
			return &profile, nil
		}
		_ = e.store.Remove(ctx, store.KeyDemoProfile)
	}
	return e.RestoreProfile(ctx)
}

// Do dispatches a demo request and returns the synthetic response body.
// Every call incurs the injected latency before answering.
func (e *Emulator) Do(ctx context.Context, req Request) ([]byte, error) {
	if err := e.sleep(ctx); err != nil {
		return nil, err
	}

	switch r := req.(type) {
	case ProfileGetRequest:
		return e.profileGet(ctx)
	case ProfileUpdateRequest:
		return e.profileUpdate(ctx, r.Fields)
	case NearbyRequestsRequest:
		return e.nearbyRequests(ctx)
	case NotificationsRequest:
		return utils.StructToBytes(map[string]interface{}{
			"notifications": syntheticNotifications(r.UserID),
		})
	case NotificationReadRequest:
		return utils.StructToBytes(map[string]interface{}{"success": true})
	case AcceptBloodRequestRequest:
		return utils.StructToBytes(map[string]interface{}{
			"success": true,
			"message": "Blood request accepted successfully",
		})
	case GenericRequest:
		if e.cfg.StrictEndpoints {
			return nil, fmt.Errorf("%w: %s %s", ErrUnknownDemoEndpoint, r.Method, r.Endpoint)
		}
		logger.LogDebug("generic demo envelope for unrecognized endpoint",
			zap.String("method", r.Method), zap.String("endpoint", r.Endpoint))
		return utils.StructToBytes(map[string]interface{}{"success": true, "data": []interface{}{}})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownDemoEndpoint, req)
	}
}

func (e *Emulator) profileGet(ctx context.Context) ([]byte, error) {
	profile, err := e.EnsureProfile(ctx)
	if errors.Is(err, store.ErrKeyNotFound) || errors.Is(err, ErrUnknownDemoAccount) || errors.Is(err, ErrCorruptDemoSession) {
		fallback, fbErr := e.fallbackProfile(ctx)
		if fbErr != nil {
			return nil, fbErr
		}
		profile = fallback
	} else if err != nil {
		return nil, err
	}

	return utils.StructToBytes(map[string]interface{}{"profile": profile})
}

func (e *Emulator) profileUpdate(ctx context.Context, fields map[string]interface{}) ([]byte, error) {
	raw, err := e.store.Get(ctx, store.KeyDemoProfile)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	merged, err := utils.MergeJSON([]byte(raw), fields)
	if err != nil {
		return nil, err
	}
	if err := e.store.Set(ctx, store.KeyDemoProfile, string(merged)); err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := utils.BytesToStruct(merged, &profile); err != nil {
		return nil, err
	}
	return utils.StructToBytes(map[string]interface{}{"profile": profile, "success": true})
}

func (e *Emulator) nearbyRequests(ctx context.Context) ([]byte, error) {
	raw, err := e.store.Get(ctx, store.KeyDemoProfile)
	if err != nil {
		return utils.StructToBytes(map[string]interface{}{"requests": []models.BloodRequest{}})
	}

	var profile models.Profile
	if err := utils.BytesToStruct([]byte(raw), &profile); err != nil {
		return utils.StructToBytes(map[string]interface{}{"requests": []models.BloodRequest{}})
	}

	bloodType := profile.BloodType
	if bloodType == "" {
		bloodType = "O+"
	}
	return utils.StructToBytes(map[string]interface{}{
		"requests": syntheticBloodRequests(bloodType),
	})
}

func (e *Emulator) sleep(ctx context.Context) error {
	if e.cfg.DisableLatency {
		return nil
	}

	e.mu.Lock()
	window := e.cfg.MaxLatency - e.cfg.MinLatency
	delay := e.cfg.MinLatency
	if window > 0 {
		delay += time.Duration(e.rnd.Int63n(int64(window)))
	}
	e.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
