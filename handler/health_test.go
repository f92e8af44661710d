package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func checkHealth(t *testing.T, store *fakeContactStore) HealthResponse {
	t.Helper()

	hh := NewHealthHandler(store, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hh.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestCheckReportsConnected(t *testing.T) {
	res := checkHealth(t, &fakeContactStore{})

	require.Equal(t, "healthy", res.Status)
	require.Equal(t, "connected", res.Database)
	require.Empty(t, res.Error)
	require.NotEmpty(t, res.Timestamp)
}

func TestCheckDegradesOnPingFailure(t *testing.T) {
	res := checkHealth(t, &fakeContactStore{pingErr: errors.New("server selection timeout")})

	require.Equal(t, "unhealthy", res.Status)
	require.Equal(t, "disconnected", res.Database)
	require.Contains(t, res.Error, "server selection timeout")
}

func TestStatusMarker(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"online"}`, rec.Body.String())
}

func TestRootGreeting(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	rec := httptest.NewRecorder()
	Root(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res["message"])
}
