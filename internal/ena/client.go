package ena

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"nanowatch/internal/logger"
)

// ClientConfig carries every transport knob. It is read once at construction;
// the client itself never consults the environment.
type ClientConfig struct {
	// BaseURL of the portal API, DefaultBaseURL when empty.
	BaseURL string
	// UserAgent identifies this client to the portal.
	UserAgent string
	// TimeoutSecs is the per-request socket timeout, 30 when zero.
	TimeoutSecs int
	// InsecureTLS disables certificate validation. Debug only.
	InsecureTLS bool
	// CABundlePath adds extra PEM trust roots on top of the system pool.
	CABundlePath string
	// RequestsPerSecond caps the outgoing request rate, 5 when zero.
	RequestsPerSecond int
}

const (
	maxAttempts    = 5
	initialBackoff = 400 * time.Millisecond

	defaultTimeoutSecs = 30
	defaultRPS         = 5
	defaultUserAgent   = "nanowatch/1.0"
)

// Client issues portal GETs with a bounded retry policy and a client-side
// rate limiter.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	log        *logger.Logger

	// sleep is swapped out in tests to count and skip backoff waits.
	sleep func(time.Duration)
}

func NewClient(cfg ClientConfig, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.NewNop()
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeoutSecs := cfg.TimeoutSecs
	if timeoutSecs <= 0 {
		timeoutSecs = defaultTimeoutSecs
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureTLS || cfg.CABundlePath != "" {
		tlsCfg := &tls.Config{}
		if cfg.InsecureTLS {
			tlsCfg.InsecureSkipVerify = true
			log.Warn("TLS certificate validation disabled")
		}
		if cfg.CABundlePath != "" {
			pool, err := x509.SystemCertPool()
			if err != nil {
				pool = x509.NewCertPool()
			}
			pem, err := os.ReadFile(cfg.CABundlePath)
			if err != nil {
				return nil, fmt.Errorf("read ca bundle: %w", err)
			}
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("ca bundle %s: no certificates found", cfg.CABundlePath)
			}
			tlsCfg.RootCAs = pool
			log.Info("added extra root certificates", "path", cfg.CABundlePath)
		}
		transport.TLSClientConfig = tlsCfg
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   time.Duration(timeoutSecs) * time.Second,
			Transport: transport,
		},
		userAgent: userAgent,
		baseURL:   base,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		log:       log,
		sleep:     time.Sleep,
	}, nil
}

func success(code int) bool {
	return code >= 200 && code < 300
}

// retryableStatus reports statuses worth another attempt. Other 4xx will not
// improve on retry and go straight back to the caller.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryAfter extracts an integer-seconds Retry-After hint, or zero when the
// header is absent or not a positive integer. HTTP-date values fall back to
// the exponential schedule.
func retryAfter(resp *http.Response) time.Duration {
	ra := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if ra == "" {
		return 0
	}
	secs, err := strconv.Atoi(ra)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// Get issues one search GET with up to maxAttempts tries. Successes and
// non-retryable statuses return immediately; retryable statuses and transport
// errors sleep on an exponential schedule (400ms doubling, or the server's
// Retry-After hint) before the next attempt. The final attempt returns the
// response as-is for the caller to inspect, or the transport error.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	delay := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		c.log.Info("GET", "url", url, "attempt", attempt, "of", maxAttempts)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Warn("transport error", "attempt", attempt, "err", err)
			lastErr = err
			if attempt == maxAttempts {
				break
			}
			c.sleep(delay)
			delay *= 2
			continue
		}

		switch {
		case success(resp.StatusCode):
			c.log.Debug("response", "status", resp.StatusCode)
			return resp, nil
		case retryableStatus(resp.StatusCode):
			c.log.Warn("retryable status", "status", resp.StatusCode, "attempt", attempt)
			if attempt == maxAttempts {
				return resp, nil
			}
			drain(resp)
			if hint := retryAfter(resp); hint > 0 {
				c.sleep(hint)
			} else {
				c.sleep(delay)
				delay *= 2
			}
		default:
			c.log.Warn("non-retryable status", "status", resp.StatusCode)
			return resp, nil
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxAttempts, lastErr)
}

// Ping probes the portal's results listing and a minimal one-row search.
// Callers treat a failure as diagnostic only; fetches proceed regardless.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Get(ctx, c.baseURL+"/results?dataPortal=ena")
	if err != nil {
		return fmt.Errorf("results ping: %w", err)
	}
	drain(resp)
	if !success(resp.StatusCode) {
		return fmt.Errorf("results ping: %w", &StatusError{Status: resp.StatusCode})
	}

	url := strings.Replace(searchURL(c.baseURL, ontPlatformClause, "run_accession"), "limit=0", "limit=1", 1)
	resp, err = c.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("minimal search ping: %w", err)
	}
	drain(resp)
	if !success(resp.StatusCode) {
		return fmt.Errorf("minimal search ping: %w", &StatusError{Status: resp.StatusCode})
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
