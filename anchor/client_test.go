package anchor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/anchorflow/internal/metrics"
	"github.com/BaSui01/anchorflow/types"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Config{}, nil)

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, 30*time.Second, c.client.Timeout)
	assert.NotNil(t, c.logger)
}

func TestNew_ExplicitConfig(t *testing.T) {
	c := New(Config{BaseURL: "http://backend:9000", Timeout: 5 * time.Second}, zap.NewNop())

	assert.Equal(t, "http://backend:9000", c.BaseURL())
	assert.Equal(t, 5*time.Second, c.client.Timeout)
}

func TestClient_TrailingSlashBaseURL(t *testing.T) {
	var capturedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.Write([]byte(`{"status": "success"}`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL + "/"}, zap.NewNop())
	_, err := c.GetCreds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/creds", capturedPath)
}

func TestClient_RequestHeaders(t *testing.T) {
	var capturedHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.Write([]byte(`{"status": "success"}`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL}, zap.NewNop())

	t.Run("GET", func(t *testing.T) {
		_, err := c.GetCreds(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "application/json", capturedHeaders.Get("Accept"))
		assert.NotEmpty(t, capturedHeaders.Get("X-Request-ID"))
		assert.Empty(t, capturedHeaders.Get("Content-Type"))
	})

	t.Run("POST", func(t *testing.T) {
		_, err := c.SaveKeys(context.Background(), "pub", "priv")
		require.NoError(t, err)

		assert.Equal(t, "application/json", capturedHeaders.Get("Content-Type"))
		assert.NotEmpty(t, capturedHeaders.Get("X-Request-ID"))
	})

	t.Run("request IDs are unique per call", func(t *testing.T) {
		_, err := c.GetCreds(context.Background())
		require.NoError(t, err)
		first := capturedHeaders.Get("X-Request-ID")

		_, err = c.GetCreds(context.Background())
		require.NoError(t, err)
		second := capturedHeaders.Get("X-Request-ID")

		assert.NotEqual(t, first, second)
	})
}

func TestClient_NetworkError(t *testing.T) {
	// Point at a server that no longer exists to force connection refusal.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c := New(Config{BaseURL: addr, Timeout: 2 * time.Second}, zap.NewNop())
	result, err := c.GetCreds(context.Background())

	require.Nil(t, result)
	cerr, ok := err.(*types.Error)
	require.True(t, ok)
	assert.Equal(t, types.ErrNetwork, cerr.Code)
	assert.True(t, cerr.Retryable)
	assert.Zero(t, cerr.StatusCode, "network failures carry no HTTP status")
	assert.Error(t, cerr.Cause)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{BaseURL: server.URL}, zap.NewNop())
	_, err := c.GetCreds(ctx)

	require.Error(t, err)
	assert.Equal(t, types.ErrNetwork, types.GetErrorCode(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error_message": "terraform state locked"}`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL}, zap.NewNop())
	_, err := c.ProvisionInfra(context.Background(), "/app", "t2.micro")

	cerr, ok := err.(*types.Error)
	require.True(t, ok)
	assert.Equal(t, types.ErrHTTP, cerr.Code)
	assert.Equal(t, "terraform state locked", cerr.Message)
	assert.Equal(t, http.StatusInternalServerError, cerr.StatusCode)
	assert.True(t, cerr.Retryable)
}

func TestClient_CollectorRecordsOutcomes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/creds" {
			w.Write([]byte(`{"status": "success"}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_message": "bad folder"}`))
	}))
	defer server.Close()

	collector := metrics.NewCollector("anchor_client_test", zap.NewNop())
	c := New(Config{BaseURL: server.URL}, zap.NewNop()).WithCollector(collector)

	_, err := c.GetCreds(context.Background())
	require.NoError(t, err)

	_, err = c.GetEnvironments(context.Background(), "/nope")
	require.Error(t, err)

	// promauto registers on the default registry, so gather from there.
	requests, err := testutil.GatherAndCount(prometheus.DefaultGatherer,
		"anchor_client_test_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, requests, "one series per method/path/status combination")

	failures, err := testutil.GatherAndCount(prometheus.DefaultGatherer,
		"anchor_client_test_api_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, failures)
}
