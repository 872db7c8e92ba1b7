// Package identity is the client for the remote identity service. The
// service is treated as a black box; this package only shapes requests,
// classifies failures, and never decides fallback policy itself.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not verified")
	ErrLoginsDisabled     = errors.New("email logins are disabled")
	ErrNoSession          = errors.New("no active session")
	ErrServiceFailure     = errors.New("identity service failure")
)

// Config holds the configuration for the identity client.
type Config struct {
	AuthURL string
	AnonKey string
	Timeout time.Duration
}

type Client struct {
	rest  *resty.Client
	store store.Store
}

func New(cfg Config, s store.Store) *Client {
	client := resty.New().
		SetBaseURL(cfg.AuthURL).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{rest: client, store: s}
}

// SignInWithPassword exchanges credentials for a session. Failures are
// classified into the sentinel errors above so the gateway can decide which
// are hard user errors and which degrade softly.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/token")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}

	if resp.IsError() {
		return nil, classifySignInError(resp.String(), resp.StatusCode())
	}

	session := parseSession(resp.String())
	if session.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &session, nil
}

// GetSession validates the locally cached access token against the identity
// service and rebuilds the session record around it.
func (c *Client) GetSession(ctx context.Context) (*models.Session, error) {
	token, err := c.store.Get(ctx, store.KeyAccessToken)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	user, err := c.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	return &models.Session{
		AccessToken: token,
		User:        *user,
	}, nil
}

// GetUser resolves the principal behind a bearer token.
func (c *Client) GetUser(ctx context.Context, token string) (*models.SessionUser, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", token)).
		Get("/user")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}

	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return nil, ErrNoSession
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: HTTP %d", ErrServiceFailure, resp.StatusCode())
	}

	return &models.SessionUser{
		ID:    gjson.Get(resp.String(), "id").String(),
		Email: gjson.Get(resp.String(), "email").String(),
	}, nil
}

// SignOut revokes the cached token remotely. An unauthorized response means
// the session was already gone and is not an error.
func (c *Client) SignOut(ctx context.Context) error {
	token, err := c.store.Get(ctx, store.KeyAccessToken)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", token)).
		Post("/logout")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}
	if resp.IsError() && resp.StatusCode() != 401 {
		return fmt.Errorf("%w: HTTP %d", ErrServiceFailure, resp.StatusCode())
	}
	return nil
}

func parseSession(body string) models.Session {
	return models.Session{
		AccessToken:  gjson.Get(body, "access_token").String(),
		RefreshToken: gjson.Get(body, "refresh_token").String(),
		User: models.SessionUser{
			ID:    gjson.Get(body, "user.id").String(),
			Email: gjson.Get(body, "user.email").String(),
		},
	}
}

func classifySignInError(body string, status int) error {
	message := gjson.Get(body, "error_description").String()
	if message == "" {
		message = gjson.Get(body, "msg").String()
	}
	if message == "" {
		message = gjson.Get(body, "error").String()
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "invalid login credentials"):
		return ErrInvalidCredentials
	case strings.Contains(lower, "email not confirmed"):
		return ErrEmailNotConfirmed
	case strings.Contains(lower, "logins are disabled"):
		return ErrLoginsDisabled
	}
	if message != "" {
		return fmt.Errorf("%w: %s", ErrServiceFailure, message)
	}
	return fmt.Errorf("%w: HTTP %d", ErrServiceFailure, status)
}
