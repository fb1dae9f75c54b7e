package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Estimator/internal/auth"
	"Estimator/internal/config"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	catalog := filepath.Join(t.TempDir(), "microgreens.csv")
	require.NoError(t, os.WriteFile(catalog, []byte("pn,name,seeds,yield,days,price\nPN-01,Broccoli,25,8,10,180\n"), 0o600))

	hash, err := auth.HashPassword("secret-pass")
	require.NoError(t, err)

	cfg := &config.Config{
		Server:      config.ServerConfig{RatePerSecond: 100, RateBurst: 100},
		Auth:        config.AuthConfig{TokenKey: "test-key", OperatorLogin: "operator", OperatorPasswordHash: hash},
		Catalog:     config.CatalogConfig{Path: catalog},
		Microgreens: config.MicrogreensConfig{EnergyCostEURkWh: 0.31, LightHoursPerDay: 12},
	}
	r := mux.NewRouter()
	HandleList(r, cfg, nil)
	srv := httptest.NewServer(CORS(r))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := srv.Client().Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestToolRoutes(t *testing.T) {
	srv := testServer(t)
	for _, path := range []string{
		"/api/tools/atmosphere/calc",
		"/api/tools/hydrogen/calc",
		"/api/tools/hydrogen/compress",
		"/api/tools/quadcopter/calc",
		"/api/tools/solar/calc",
		"/api/tools/container/calc",
		"/api/tools/harvest/calc",
		"/api/tools/batch/quadcopter",
	} {
		assert.Equal(t, http.StatusOK, post(t, srv, path, `{}`).StatusCode, path)
	}

	resp := post(t, srv, "/api/tools/atmosphere/calc", `{"altitudes_m":[-5]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportRoutes(t *testing.T) {
	srv := testServer(t)
	resp := post(t, srv, "/api/tools/report/pdf", `{"tool":"harvest","project":"Farm"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = post(t, srv, "/api/tools/report/text", `{"tool":"microgreens"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := srv.Client().Get(srv.URL + "/api/tools")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalogRoute(t *testing.T) {
	srv := testServer(t)
	resp, err := srv.Client().Get(srv.URL + "/api/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOperatorSession(t *testing.T) {
	srv := testServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/user/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = post(t, srv, "/api/login", `{"login":"operator","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = post(t, srv, "/api/login", `{"login":"operator","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/user/me", nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/tools/solar/calc", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
