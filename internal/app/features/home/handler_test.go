package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/orphanagecare/internal/app/features/home"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func TestServeRoot(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	r := chi.NewRouter()
	r.Group(home.Routes(h))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != home.Banner {
		t.Errorf("body: got %q, want %q", got, home.Banner)
	}
}
