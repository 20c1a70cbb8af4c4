// Package datasource provides the rate-limited, retrying HTTP client used to
// fetch records from remote providers.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	Burst             int
	CircuitBreakerMax int           // max consecutive failures before circuit break
	CircuitCooldown   time.Duration // open time before a trial request is let through
}

// DefaultHTTPClientConfig returns recommended defaults
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         5.0,
		Burst:             1,
		CircuitBreakerMax: 5,
		CircuitCooldown:   30 * time.Second,
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting and circuit breaker
type RateLimitedHTTPClient struct {
	client            *retryablehttp.Client
	limiter           *rate.Limiter
	circuitBreakerMax int
	cooldown          time.Duration
	logger            *logrus.Entry
	now               func() time.Time

	mu                sync.Mutex
	consecutiveErrors int
	isOpen            bool
	openedAt          time.Time
	trialInFlight     bool
	lastError         error
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *logrus.Logger) *RateLimitedHTTPClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	entry := logger.WithField("component", "http_client")

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = customRetryPolicy()
	retryClient.Logger = retryLogger{entry}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	breakerMax := cfg.CircuitBreakerMax
	if breakerMax < 1 {
		breakerMax = DefaultHTTPClientConfig().CircuitBreakerMax
	}
	cooldown := cfg.CircuitCooldown
	if cooldown <= 0 {
		cooldown = DefaultHTTPClientConfig().CircuitCooldown
	}

	return &RateLimitedHTTPClient{
		client:            retryClient,
		limiter:           rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		circuitBreakerMax: breakerMax,
		cooldown:          cooldown,
		logger:            entry,
		now:               time.Now,
	}
}

// Do executes an HTTP request with rate limiting and circuit breaker. While
// the breaker is open requests fail fast; once the cool-down has passed a
// single trial request is let through and its outcome closes or re-opens it.
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	trial, err := c.admit()
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.release(trial)
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		c.release(trial)
		return nil, fmt.Errorf("failed to wrap request: %w", err)
	}

	resp, err := c.client.Do(retryReq.WithContext(ctx))

	c.mu.Lock()
	defer c.mu.Unlock()
	if trial {
		c.trialInFlight = false
	}
	if err != nil {
		// The caller gave up; that says nothing about the remote end.
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return nil, err
		}
		c.consecutiveErrors++
		c.lastError = err
		if trial || c.consecutiveErrors >= c.circuitBreakerMax {
			if !c.isOpen {
				c.logger.WithError(err).Warnf("Circuit breaker opened after %d consecutive errors", c.consecutiveErrors)
			}
			c.isOpen = true
			c.openedAt = c.now()
		}
		return nil, err
	}

	if resp.StatusCode < 500 {
		if c.isOpen {
			c.logger.Info("Circuit breaker closed")
		}
		c.consecutiveErrors = 0
		c.isOpen = false
		c.lastError = nil
	} else if trial {
		c.openedAt = c.now()
	}

	return resp, nil
}

// admit reports whether the request may proceed and whether it is the
// half-open trial.
func (c *RateLimitedHTTPClient) admit() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return false, nil
	}
	if c.trialInFlight || c.now().Sub(c.openedAt) < c.cooldown {
		return false, fmt.Errorf("circuit breaker open: %w", c.lastError)
	}
	c.trialInFlight = true
	return true, nil
}

func (c *RateLimitedHTTPClient) release(trial bool) {
	if !trial {
		return
	}
	c.mu.Lock()
	c.trialInFlight = false
	c.mu.Unlock()
}

// Get executes a GET request with optional headers
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.Do(ctx, req)
}

// Reset closes the circuit breaker
func (c *RateLimitedHTTPClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutiveErrors = 0
	c.isOpen = false
	c.trialInFlight = false
	c.lastError = nil
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// customRetryPolicy defines which HTTP responses should trigger a retry
func customRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, err
		}

		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}

// retryLogger adapts a logrus entry to retryablehttp.LeveledLogger.
type retryLogger struct {
	entry *logrus.Entry
}

func (l retryLogger) fields(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
