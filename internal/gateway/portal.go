// Package gateway abstracts the timekeeping portal the kiosk cross
// references: fetching one associate's time details and the bulk restricted
// path roster. The HTTP implementation talks to the portal's report
// endpoints; a navigation-driven implementation may instead return
// ErrPending and deliver the report out of band.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/alexanderramin/pathguard/internal/domain"
	"github.com/alexanderramin/pathguard/internal/extract"
)

// Portal fetches associate work history from the timekeeping portal.
type Portal interface {
	// FetchSessions returns the extracted time report for one employee.
	// May fail with ErrPending (result arrives out of band), with the
	// transient ErrPortalUnavailable, or with the hard ErrNotFound.
	FetchSessions(ctx context.Context, employeeID string) (*domain.Report, error)

	// FetchRoster returns the associates currently attributed to each of
	// the given restricted paths. Independently cacheable; an optimization
	// hint only, never the sole basis for a block decision.
	FetchRoster(ctx context.Context, paths []string) (map[string][]domain.RosterEntry, error)

	// Available probes whether the portal is reachable right now.
	Available(ctx context.Context) bool
}

// Config holds HTTP portal parameters.
type Config struct {
	Endpoint    string
	WarehouseID string
	TimeoutMs   int
	MaxRetries  int
}

// HTTPPortal implements Portal against the portal's report endpoints.
type HTTPPortal struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPPortal creates a Portal that scrapes portal report pages over HTTP.
func NewHTTPPortal(cfg Config, observer Observer) *HTTPPortal {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 10000
	}
	return &HTTPPortal{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (p *HTTPPortal) FetchSessions(ctx context.Context, employeeID string) (*domain.Report, error) {
	query := url.Values{
		"employeeId":  {employeeID},
		"warehouseId": {p.cfg.WarehouseID},
	}
	raw, err := p.get(ctx, "fetch_sessions", employeeID, "/employee/timeDetailsForEmployee", query)
	if err != nil {
		return nil, err
	}
	report := extract.Extract(raw)
	report.EmployeeID = employeeID
	return report, nil
}

func (p *HTTPPortal) FetchRoster(ctx context.Context, paths []string) (map[string][]domain.RosterEntry, error) {
	roster := make(map[string][]domain.RosterEntry, len(paths))
	for _, path := range paths {
		query := url.Values{
			"processPath": {path},
			"warehouseId": {p.cfg.WarehouseID},
		}
		raw, err := p.get(ctx, "fetch_roster", path, "/reports/functionRollup", query)
		if err != nil {
			return nil, fmt.Errorf("roster for %s: %w", path, err)
		}
		roster[path] = extract.ExtractRoster(raw)
	}
	return roster, nil
}

func (p *HTTPPortal) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.Endpoint+"/ping", nil)
	if err != nil {
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// get performs one report fetch with retries. Connection-level failures and
// gateway statuses are transient; a 404 is the portal answering that the
// employee has no report.
func (p *HTTPPortal) get(ctx context.Context, op, queryLabel, path string, query url.Values) ([]byte, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + p.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		raw, err := p.doRequest(ctx, path, query)
		if err == nil {
			p.observer.OnPortalCall(CallEvent{
				Op:        op,
				Query:     queryLabel,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return raw, nil
		}
		lastErr = err
		if ctx.Err() != nil || errors.Is(err, ErrNotFound) {
			break
		}
	}

	err := classifyError(ctx, lastErr)
	p.observer.OnPortalCall(CallEvent{
		Op:        op,
		Query:     queryLabel,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (p *HTTPPortal) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := p.cfg.Endpoint + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: portal returned status %d", ErrPortalUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("portal returned status %d: %s", resp.StatusCode, string(body))
	}
}

func classifyError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPortalUnavailable) {
		return err
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrPortalUnavailable, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrPortalUnavailable, err)
	}
	return err
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrPortalUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrPending):
		return "PENDING"
	default:
		return "UNKNOWN"
	}
}
