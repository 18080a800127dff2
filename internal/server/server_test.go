package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronax-dev/chronax/internal/domain"
	"github.com/chronax-dev/chronax/internal/modules/analysis"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	glucose, err := analysis.NewService(domain.DefaultGlucoseConfig(), zerolog.Nop())
	require.NoError(t, err)
	cardiac, err := analysis.NewService(domain.DefaultCardiacConfig(), zerolog.Nop())
	require.NoError(t, err)

	return New(Config{
		Log:     zerolog.Nop(),
		Port:    8080,
		DevMode: true,
		Glucose: glucose,
		Cardiac: cardiac,
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.GreaterOrEqual(t, response.UptimeSeconds, 0.0)
	assert.GreaterOrEqual(t, response.MemoryPercent, 0.0)
}

func TestAnalysisRoutesMounted(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/analysis", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	// empty series is a client error, not a missing route
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
