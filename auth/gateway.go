// Package auth is the single entry point for sign-in, sign-up, and
// sign-out. Per call it decides between the demo emulator and the remote
// identity service, and converts failure categories into either a hard
// error or a soft "switch to demo" suggestion.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/redpulse/client-go/demo"
	"github.com/redpulse/client-go/enums"
	"github.com/redpulse/client-go/identity"
	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/store"
	"github.com/redpulse/client-go/utils"
	"github.com/redpulse/client-go/utils/logger"
)

// QuickChecker gates real-account attempts on backend reachability.
type QuickChecker interface {
	QuickCheck(ctx context.Context) bool
}

// IdentityService is the remote identity surface the gateway consumes.
type IdentityService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
}

// SignUpSender submits registrations through the backend signup endpoint.
type SignUpSender interface {
	SignUpRemote(ctx context.Context, payload map[string]interface{}) ([]byte, error)
}

// Config holds the configuration for the gateway.
type Config struct {
	// SignInTimeout bounds the real sign-in attempt.
	SignInTimeout time.Duration
	// SignOutTimeout bounds the best-effort remote sign-out.
	SignOutTimeout time.Duration
	// SignUpTimeout bounds the registration call.
	SignUpTimeout time.Duration
}

type Gateway struct {
	cfg      Config
	store    store.Store
	probe    QuickChecker
	identity IdentityService
	emulator *demo.Emulator
	signup   SignUpSender
	validate *validator.Validate
}

// SignInResult is the sign-in outcome. RequiresDemoMode is a soft signal:
// network unavailability is not a user error, so the caller offers a
// one-click switch to a demo account instead of a dead end.
type SignInResult struct {
	Session          *models.Session   `json:"session,omitempty"`
	Kind             enums.SessionKind `json:"kind,omitempty"`
	RequiresDemoMode bool              `json:"requiresDemoMode"`
	Message          string            `json:"message,omitempty"`
}

// SignUpInput carries registration fields. Format rules ride on validator
// tags; business classification happens after the remote call.
type SignUpInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"fullName" validate:"required"`
	BloodType   string `json:"bloodType"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
}

func NewGateway(cfg Config, s store.Store, probe QuickChecker, idsvc IdentityService, emulator *demo.Emulator, signup SignUpSender) *Gateway {
	if cfg.SignInTimeout == 0 {
		cfg.SignInTimeout = 2 * time.Second
	}
	if cfg.SignOutTimeout == 0 {
		cfg.SignOutTimeout = 5 * time.Second
	}
	if cfg.SignUpTimeout == 0 {
		cfg.SignUpTimeout = 10 * time.Second
	}

	return &Gateway{
		cfg:      cfg,
		store:    s,
		probe:    probe,
		identity: idsvc,
		emulator: emulator,
		signup:   signup,
		validate: validator.New(),
	}
}

// SignIn authenticates email/password. Demo accounts never touch the
// network; real accounts degrade to a RequiresDemoMode suggestion on any
// connectivity-class failure.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if demo.IsDemoEmail(email) {
		session, err := g.emulator.Authenticate(ctx, email, password)
		if err != nil {
			return nil, ErrIncorrectDemoPassword
		}
		return &SignInResult{Session: session, Kind: enums.SessionDemo}, nil
	}

	if !g.probe.QuickCheck(ctx) {
		logger.LogInfo("backend unreachable, suggesting demo mode", zap.String("email", email))
		return &SignInResult{
			RequiresDemoMode: true,
			Message:          "Servers are currently unavailable. Would you like to try our demo accounts instead?",
		}, nil
	}

	session, err := utils.Race(ctx, g.cfg.SignInTimeout, func(ctx context.Context) (*models.Session, error) {
		return g.identity.SignInWithPassword(ctx, email, password)
	})
	if err != nil {
		return g.classifySignInFailure(err)
	}

	if err := g.activateRealSession(ctx, session); err != nil {
		return nil, err
	}
	logger.LogInfo("real account authentication successful", zap.String("email", email))
	return &SignInResult{Session: session, Kind: enums.SessionReal}, nil
}

// classifySignInFailure keeps the two credential-class failures hard;
// everything else means the service could not be used, which is not the
// user's fault.
func (g *Gateway) classifySignInFailure(err error) (*SignInResult, error) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return nil, ErrInvalidCredentials
	case errors.Is(err, identity.ErrEmailNotConfirmed):
		return nil, ErrEmailNotVerified
	case errors.Is(err, identity.ErrLoginsDisabled):
		return &SignInResult{
			RequiresDemoMode: true,
			Message:          "Email authentication is currently disabled. Please try our demo accounts.",
		}, nil
	default:
		logger.LogInfo("sign-in degraded to demo suggestion", zap.Error(err))
		return &SignInResult{
			RequiresDemoMode: true,
			Message:          "Authentication service is temporarily unavailable. Would you like to try demo accounts?",
		}, nil
	}
}

// activateRealSession persists the stay-signed-in preference. Activating a
// real session clears any demo state; at most one kind is ever live.
func (g *Gateway) activateRealSession(ctx context.Context, session *models.Session) error {
	for _, key := range []string{store.KeyDemoSession, store.KeyDemoProfile} {
		if err := g.store.Remove(ctx, key); err != nil {
			return err
		}
	}
	if err := g.store.Set(ctx, store.KeyStayLoggedIn, "true"); err != nil {
		return err
	}
	return g.store.Set(ctx, store.KeyAccessToken, session.AccessToken)
}

// SignUp registers a new real account. Reserved demo emails are rejected
// before any probe is issued.
func (g *Gateway) SignUp(ctx context.Context, input SignUpInput) error {
	if demo.IsDemoEmail(input.Email) {
		return ErrReservedDemoEmail
	}

	if err := g.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignUpInput, err)
	}

	if !g.probe.QuickCheck(ctx) {
		return ErrRegistrationOffline
	}

	payload := map[string]interface{}{
		"email":       input.Email,
		"password":    input.Password,
		"fullName":    input.FullName,
		"bloodType":   input.BloodType,
		"location":    input.Location,
		"phoneNumber": input.PhoneNumber,
		"dateOfBirth": input.DateOfBirth,
		"city":        input.City,
		"state":       input.State,
		"country":     input.Country,
	}

	_, err := utils.Race(ctx, g.cfg.SignUpTimeout, func(ctx context.Context) ([]byte, error) {
		return g.signup.SignUpRemote(ctx, payload)
	})
	if err != nil {
		return classifySignUpFailure(err)
	}

	logger.LogInfo("registration successful", zap.String("email", input.Email))
	return nil
}

func classifySignUpFailure(err error) error {
	if errors.Is(err, utils.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return ErrRegistrationNetwork
	}

	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "already registered"),
		strings.Contains(message, "already been registered"),
		strings.Contains(message, "already exists"):
		return ErrDuplicateAccount
	case strings.Contains(message, "signup is disabled"),
		strings.Contains(message, "registration is disabled"),
		strings.Contains(message, "logins are disabled"):
		return ErrRegistrationDisabled
	case strings.Contains(message, "invalid email"):
		return fmt.Errorf("%w: please enter a valid email address", ErrInvalidSignUpInput)
	case strings.Contains(message, "password"):
		return fmt.Errorf("%w: password must be at least 8 characters with uppercase, lowercase, numbers, and special characters", ErrInvalidSignUpInput)
	case strings.Contains(message, "timeout"),
		strings.Contains(message, "network"),
		strings.Contains(message, "connection refused"),
		strings.Contains(message, "no such host"):
		return ErrRegistrationNetwork
	default:
		return fmt.Errorf("registration failed: %w", err)
	}
}

// SignOut is a local-state operation first, remote notification second. The
// local keys are always cleared; a remote failure is logged, never
// surfaced, so the user can never be stuck signed in locally.
func (g *Gateway) SignOut(ctx context.Context) error {
	_, err := utils.Race(ctx, g.cfg.SignOutTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.identity.SignOut(ctx)
	})
	if err != nil {
		logger.LogWarn("remote sign-out failed", zap.Error(err))
	}

	for _, key := range []string{store.KeyDemoSession, store.KeyDemoProfile, store.KeyStayLoggedIn, store.KeyAccessToken} {
		if err := g.store.Remove(ctx, key); err != nil {
			logger.LogError("failed clearing session key", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}
