package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/projectsail/rainfall-backend/internal/http/handlers"
)

func TestServerServesConfiguredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewServer(RouterConfig{
		HealthHandler: httpH.NewHealthHandler(),
	})
	if s.Engine == nil {
		t.Fatal("expected server to hold a configured engine")
	}

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /status, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected /status body: %s", w.Body.String())
	}

	// Unconfigured handlers leave their routes unregistered.
	req = httptest.NewRequest(http.MethodPost, "/user_input", nil)
	w = httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unwired route, got %d", w.Code)
	}
}
