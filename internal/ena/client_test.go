package ena

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanowatch/internal/logger"
)

// testClient builds a client against a test server with backoff sleeps
// recorded instead of slept and the rate limiter effectively disabled.
func testClient(t *testing.T, baseURL string) (*Client, *[]time.Duration) {
	t.Helper()
	c, err := NewClient(ClientConfig{
		BaseURL:           baseURL,
		TimeoutSecs:       5,
		RequestsPerSecond: 10000,
	}, logger.NewNop())
	require.NoError(t, err)

	sleeps := &[]time.Duration{}
	c.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return c, sleeps
}

func TestGetRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 5 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, sleeps := testClient(t, srv.URL)
	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	drain(resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, attempts)
	assert.Equal(t, []time.Duration{
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		3200 * time.Millisecond,
	}, *sleeps)
}

func TestGetExhaustedRetriesReturnsLastResponse(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, sleeps := testClient(t, srv.URL)
	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	drain(resp)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 5, attempts)
	assert.Len(t, *sleeps, 4)
}

func TestGetNonRetryableReturnsImmediately(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, sleeps := testClient(t, srv.URL)
	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	drain(resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *sleeps)
}

func TestGetHonorsRetryAfter(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, sleeps := testClient(t, srv.URL)
	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	drain(resp)

	assert.Equal(t, []time.Duration{7 * time.Second}, *sleeps)
}

func TestGetMalformedRetryAfterFallsBackToBackoff(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, sleeps := testClient(t, srv.URL)
	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	drain(resp)

	assert.Equal(t, []time.Duration{400 * time.Millisecond}, *sleeps)
}

func TestGetTransportErrorAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing is listening anymore

	c, sleeps := testClient(t, url)
	resp, err := c.Get(context.Background(), url)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "after 5 attempts")
	assert.Len(t, *sleeps, 4)
}

func TestRetryableStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		assert.True(t, retryableStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 301, 400, 401, 404, 501} {
		assert.False(t, retryableStatus(code), "status %d", code)
	}
}
