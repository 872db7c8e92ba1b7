// Package probe issues reachability checks against the backend and its peer
// services. QuickCheck gates user-facing sign-in; DetailedCheck feeds the
// diagnostics view and is never used for gating normal flows.
package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/redpulse/client-go/models"
	"github.com/redpulse/client-go/utils/logger"
)

// Config holds the configuration for the prober.
type Config struct {
	// BaseURL is the backend function gateway; its /health endpoint is the
	// primary probe target.
	BaseURL string
	// AuthURL is the identity service root.
	AuthURL string
	// DataURL is the data service root.
	DataURL string
	// InternetURL is a public well-known host. Any response at all counts
	// as reachability; the body may be opaque.
	InternetURL string
	// AnonKey is attached as the bearer on backend probes.
	AnonKey string

	// QuickTimeout bounds QuickCheck. Deliberately aggressive: a
	// slow-but-reachable backend must not stall a sign-in action.
	QuickTimeout time.Duration
	// InternetTimeout and ServiceTimeout bound the detailed probes.
	InternetTimeout time.Duration
	ServiceTimeout  time.Duration
}

type Prober struct {
	cfg  Config
	rest *resty.Client
}

func New(cfg Config) *Prober {
	if cfg.QuickTimeout == 0 {
		cfg.QuickTimeout = 500 * time.Millisecond
	}
	if cfg.InternetTimeout == 0 {
		cfg.InternetTimeout = 2 * time.Second
	}
	if cfg.ServiceTimeout == 0 {
		cfg.ServiceTimeout = 3 * time.Second
	}

	return &Prober{cfg: cfg, rest: resty.New()}
}

// QuickCheck reports whether the backend answered its health endpoint with a
// 2xx inside the quick-check budget. Timeouts, transport failures, and
// non-2xx statuses all read as unreachable.
func (p *Prober) QuickCheck(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, p.cfg.QuickTimeout)
	defer cancel()

	resp, err := p.rest.R().
		SetContext(probeCtx).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", p.cfg.AnonKey)).
		Get(p.cfg.BaseURL + "/health")
	if err != nil {
		logger.LogDebug("backend quick check failed", zap.Error(err))
		return false
	}
	if !resp.IsSuccess() {
		logger.LogDebug("backend quick check rejected", zap.Int("status", resp.StatusCode()))
		return false
	}
	return true
}

// DetailedCheck runs the four diagnostic probes concurrently. Each probe is
// independently timeout-bounded and records its own error; a failure in one
// never aborts the others.
func (p *Prober) DetailedCheck(ctx context.Context) models.ConnectivityStatus {
	var status models.ConnectivityStatus
	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		status.Internet, status.Details.InternetError = p.probeInternet(ctx)
	}()
	go func() {
		defer wg.Done()
		status.Backend, status.Details.BackendError = p.probeService(ctx, p.cfg.BaseURL+"/health", true)
	}()
	go func() {
		defer wg.Done()
		status.Database, status.Details.DatabaseError = p.probeService(ctx, p.cfg.DataURL+"/", true)
	}()
	go func() {
		defer wg.Done()
		status.Auth, status.Details.AuthError = p.probeService(ctx, p.cfg.AuthURL+"/health", false)
	}()
	wg.Wait()

	logger.LogInfo("connectivity diagnostics",
		zap.Bool("internet", status.Internet),
		zap.Bool("backend", status.Backend),
		zap.Bool("database", status.Database),
		zap.Bool("auth", status.Auth))
	return status
}

// probeInternet only cares that something answered; captive portals and
// opaque responses still prove the link is up.
func (p *Prober) probeInternet(ctx context.Context) (bool, string) {
	probeCtx, cancel := context.WithTimeout(ctx, p.cfg.InternetTimeout)
	defer cancel()

	_, err := p.rest.R().SetContext(probeCtx).Get(p.cfg.InternetURL)
	if err != nil {
		return false, err.Error()
	}
	return true, ""
}

func (p *Prober) probeService(ctx context.Context, url string, bearer bool) (bool, string) {
	probeCtx, cancel := context.WithTimeout(ctx, p.cfg.ServiceTimeout)
	defer cancel()

	req := p.rest.R().SetContext(probeCtx)
	if bearer {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", p.cfg.AnonKey))
	} else {
		req.SetHeader("apikey", p.cfg.AnonKey)
	}

	resp, err := req.Get(url)
	if err != nil {
		if probeCtx.Err() == context.DeadlineExceeded {
			return false, "Timeout - likely not deployed"
		}
		return false, err.Error()
	}
	if resp.IsError() {
		return false, fmt.Sprintf("HTTP %d", resp.StatusCode())
	}
	return true, ""
}
