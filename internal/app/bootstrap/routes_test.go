package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/orphanagecare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOrigin = "https://orphanage-frontened1.onrender.com"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := testutil.SetupTestDB(t)
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	cfg := AppConfig{CORSAllowedOrigin: testOrigin}

	h, err := BuildHandler(cfg, deps, zap.NewNop())
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	_, err = sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, sb.String()
}

func TestBuildHandler_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp, body := call(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OrphanageCare backend is running!", body)

	resp, body = call(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)

	resp, _ = call(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, srv, http.MethodPost, "/register-donor",
		`{"name":"Asha","email":"asha@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, body = call(t, srv, http.MethodPost, "/login-donor",
		`{"email":"asha@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = call(t, srv, http.MethodPost, "/register-orphanage",
		`{"headName":"Ravi","email":"ravi@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, body)

	profile := `{"orphanageName":"Hope House","principalName":"Mary","city":"Pune","state":"MH",
		"address":"1 Road","numChildren":"20","needs":"Books","latitude":"18.5","longitude":"73.8","portNumber":"5001"}`
	resp, body = call(t, srv, http.MethodPost, "/add-orphanage", profile)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = call(t, srv, http.MethodGet, "/check-port-number/5001", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"isUnique":false}`, body)

	resp, body = call(t, srv, http.MethodGet, "/get-orphanage-by-port/5001", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"orphanageName":"Hope House"`)
	assert.Contains(t, body, `"numChildren":20`)

	resp, body = call(t, srv, http.MethodGet, "/get-orphanages", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"portNumber":"5001"`)

	resp, body = call(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "orphanagecare_registrations_total")
	assert.Contains(t, body, `route="/check-port-number/{portNumber}"`)
}

func TestBuildHandler_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, body := call(t, srv, http.MethodGet, "/no-such-route", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Not found"}`, body)
}

func TestBuildHandler_CORS(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/register-donor", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	req, err = http.NewRequest(http.MethodOptions, srv.URL+"/register-donor", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
