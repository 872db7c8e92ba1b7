// Package api is the facade wrapping every authenticated backend call with
// bearer-token attachment, a request timeout, and automatic interception
// into the demo emulator whenever a demo session is active.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/redpulse/client-go/demo"
	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/otel"
	"github.com/redpulse/client-go/store"
	"github.com/redpulse/client-go/utils"
	uctx "github.com/redpulse/client-go/utils/context"
	"github.com/redpulse/client-go/utils/logger"
)

// TokenSource resolves the current real session for bearer attachment.
type TokenSource interface {
	GetSession(ctx context.Context) (*models.Session, error)
}

// Config holds the configuration for the API facade.
type Config struct {
	BaseURL string
	// AnonKey is the public anonymous bearer used when no session token can
	// be resolved inside the token budget.
	AnonKey string
	// CallTimeout aborts the request itself.
	CallTimeout time.Duration
	// TokenTimeout bounds session resolution before each call; the call
	// must never block indefinitely waiting for a token.
	TokenTimeout time.Duration
	ServiceName  string
}

type Client struct {
	cfg      Config
	store    store.Store
	tokens   TokenSource
	emulator *demo.Emulator
	rest     *resty.Client
}

func NewClient(cfg Config, s store.Store, tokens TokenSource, emulator *demo.Emulator) *Client {
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = 5 * time.Second
	}
	if cfg.TokenTimeout == 0 {
		cfg.TokenTimeout = time.Second
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "redpulse-client"
	}

	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json")

	return &Client{cfg: cfg, store: s, tokens: tokens, emulator: emulator, rest: rest}
}

// Call issues method+endpoint against the backend, or against the demo
// emulator when a demo session is active. The demo path never touches the
// network.
func (c *Client) Call(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	if c.demoActive(ctx) {
		return c.emulator.Do(ctx, demo.ParseEndpoint(method, endpoint, payload))
	}

	token := c.resolveToken(ctx)

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	spanCtx, finish := otel.StartHTTPSpan(callCtx, c.cfg.ServiceName, endpoint, method, c.cfg.BaseURL, endpoint)

	req := c.rest.R().
		SetContext(spanCtx).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))
	if payload != nil {
		req.SetBody(payload)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		finish(0, err)
		logger.LogDebug("backend unavailable", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("call %s %s: %w", method, endpoint, err)
	}

	if resp.IsError() {
		callErr := responseError(resp)
		finish(resp.StatusCode(), callErr)
		logger.LogDebug("api call failed",
			zap.String("endpoint", endpoint), zap.Int("status", resp.StatusCode()))
		return nil, callErr
	}

	finish(resp.StatusCode(), nil)
	return resp.Body(), nil
}

// demoActive prefers an explicitly threaded session context over the store
// lookup, so callers can pin a mode for a unit of work.
func (c *Client) demoActive(ctx context.Context) bool {
	if sc, ok := uctx.SessionFromContext(ctx); ok {
		return sc.IsDemo()
	}
	_, active := c.emulator.ActiveSession(ctx)
	return active
}

// resolveToken tries a short session fetch and falls back to the anonymous
// key. A hung identity service must not stall the call.
func (c *Client) resolveToken(ctx context.Context) string {
	session, err := utils.Race(ctx, c.cfg.TokenTimeout, func(ctx context.Context) (*models.Session, error) {
		return c.tokens.GetSession(ctx)
	})
	if err != nil || session == nil || session.AccessToken == "" {
		return c.cfg.AnonKey
	}
	return session.AccessToken
}

func encodeBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	default:
		return utils.StructToBytes(body)
	}
}

func responseError(resp *resty.Response) error {
	if message := gjson.GetBytes(resp.Body(), "error").String(); message != "" {
		return fmt.Errorf("%s", message)
	}
	return fmt.Errorf("HTTP error! status: %d", resp.StatusCode())
}
