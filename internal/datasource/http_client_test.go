package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           2 * time.Second,
		MaxRetries:        2,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      5 * time.Millisecond,
		RateLimit:         1000,
		Burst:             10,
		CircuitBreakerMax: 2,
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewRateLimitedHTTPClient(testClientConfig(), nil)
	defer client.Close()

	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"Authorization": "Bearer tok"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewRateLimitedHTTPClient(testClientConfig(), nil)
	resp, err := client.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCircuitBreakerOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testClientConfig()
	cfg.MaxRetries = 0
	client := NewRateLimitedHTTPClient(cfg, nil)

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), srv.URL, nil)
		require.Error(t, err)
	}

	_, err := client.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")

	client.Reset()
	_, err = client.Get(context.Background(), srv.URL, nil)
	assert.NotContains(t, err.Error(), "circuit breaker open")
}

func TestCircuitBreakerRecoversAfterCooldown(t *testing.T) {
	var healthy atomic.Bool
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testClientConfig()
	cfg.MaxRetries = 0
	cfg.CircuitCooldown = time.Minute
	client := NewRateLimitedHTTPClient(cfg, nil)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), srv.URL, nil)
		require.Error(t, err)
	}
	healthy.Store(true)

	_, err := client.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	now = now.Add(time.Minute)
	for i := 0; i < 3; i++ {
		resp, err := client.Get(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestCircuitBreakerFailedTrialReopens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testClientConfig()
	cfg.MaxRetries = 0
	cfg.CircuitCooldown = time.Minute
	client := NewRateLimitedHTTPClient(cfg, nil)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), srv.URL, nil)
		require.Error(t, err)
	}

	now = now.Add(time.Minute)
	_, err := client.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "circuit breaker open")

	_, err = client.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}

func TestCanceledRequestsDoNotTripBreaker(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	defer close(release)

	cfg := testClientConfig()
	cfg.MaxRetries = 0
	client := NewRateLimitedHTTPClient(cfg, nil)

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		_, err := client.Get(ctx, srv.URL, nil)
		cancel()
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "circuit breaker open")
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.False(t, client.isOpen)
	assert.Zero(t, client.consecutiveErrors)
}

func TestCustomRetryPolicy(t *testing.T) {
	policy := customRetryPolicy()
	ctx := context.Background()

	tests := []struct {
		status int
		retry  bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusGatewayTimeout, true},
		{http.StatusNotImplemented, false},
	}

	for _, tt := range tests {
		retry, err := policy(ctx, &http.Response{StatusCode: tt.status}, nil)
		assert.NoError(t, err)
		assert.Equal(t, tt.retry, retry, "status %d", tt.status)
	}
}
