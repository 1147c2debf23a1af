package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/dshills/cloudscape-mcp/internal/config"
	"github.com/dshills/cloudscape-mcp/internal/mcp"
	"github.com/dshills/cloudscape-mcp/internal/metrics"
	"github.com/dshills/cloudscape-mcp/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newBackend(t *testing.T) *mcp.Server {
	t.Helper()
	s, err := mcp.NewServer(context.Background(), config.Default(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type failingBackend struct {
	*mcp.Server
}

func (failingBackend) Status(context.Context) (*storage.CatalogStatus, error) {
	return nil, errors.New("database is closed")
}

func TestHealth(t *testing.T) {
	srv := NewServer(newBackend(t), "http://localhost:3001")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 20, body.Components)
	assert.Equal(t, storage.DriverName, body.Driver)
}

func TestHealthUnavailable(t *testing.T) {
	srv := NewServer(failingBackend{newBackend(t)}, "http://localhost:3001")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unavailable"`)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.HTTPRequestsTotal)
	srv := NewServer(newBackend(t), "http://localhost:3001", WithGatherer(reg))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cloudscape_http_requests_total{method="GET",path="/healthz",status="200"}`)
}

func TestMessageWithoutSession(t *testing.T) {
	srv := NewServer(newBackend(t), "http://localhost:3001")

	req := httptest.NewRequest(http.MethodPost, MessagePath,
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	srv := NewServer(newBackend(t), "http://localhost:3001")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeStreamsEndpointAndShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + ln.Addr().String()

	srv := NewServer(newBackend(t), baseURL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	defer client.CloseIdleConnections()

	resp, err := client.Get(baseURL + SSEPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	endpoint := readEndpointEvent(t, resp.Body)
	assert.True(t, strings.HasPrefix(endpoint, baseURL+MessagePath+"?sessionId="), endpoint)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunInvalidAddress(t *testing.T) {
	srv := NewServer(newBackend(t), "http://localhost:3001")

	err := srv.Run(context.Background(), "256.0.0.1:-1")
	assert.Error(t, err)
}

// readEndpointEvent returns the data of the first "endpoint" event.
func readEndpointEvent(t *testing.T, r io.Reader) string {
	t.Helper()
	scanner := bufio.NewScanner(r)
	var event string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: ") && event == "endpoint":
			return strings.TrimPrefix(line, "data: ")
		}
	}
	t.Fatalf("no endpoint event: %v", scanner.Err())
	return ""
}
