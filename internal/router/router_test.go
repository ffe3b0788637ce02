package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"tributo/internal/config"
	"tributo/internal/handler"
	"tributo/internal/router"
	"tributo/mocks"
)

func setupEngine(archive bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:  config.ServerConfig{Environment: "production"},
		Archive: config.ArchiveConfig{Enabled: archive},
	}
	declH := handler.NewDeclarationHandler(new(mocks.MockDeclarationService))
	payH := handler.NewPayrollHandler(new(mocks.MockPayrollService))
	healthH := handler.NewHealthHandler(nil)
	return router.Setup(cfg, zerolog.Nop(), declH, payH, healthH)
}

func hasRoute(r *gin.Engine, method, path string) bool {
	for _, ri := range r.Routes() {
		if ri.Method == method && ri.Path == path {
			return true
		}
	}
	return false
}

func TestSetup_ArchiveRoutesOnlyWhenEnabled(t *testing.T) {
	off := setupEngine(false)
	on := setupEngine(true)

	assert.True(t, hasRoute(off, http.MethodPost, "/api/v1/f29/parse"))
	assert.True(t, hasRoute(off, http.MethodGet, "/api/v1/f29/catalogue"))
	assert.True(t, hasRoute(off, http.MethodPost, "/api/v1/payroll/reconcile"))
	assert.False(t, hasRoute(off, http.MethodGet, "/api/v1/f29/declarations"))

	assert.True(t, hasRoute(on, http.MethodGet, "/api/v1/f29/declarations"))
	assert.True(t, hasRoute(on, http.MethodGet, "/api/v1/f29/declarations/export.csv"))
	assert.True(t, hasRoute(on, http.MethodGet, "/api/v1/f29/declarations/:id/export.xlsx"))
	assert.True(t, hasRoute(on, http.MethodDelete, "/api/v1/f29/declarations/:id"))
}

func TestSetup_NoSwaggerInProduction(t *testing.T) {
	r := setupEngine(false)
	assert.False(t, hasRoute(r, http.MethodGet, "/swagger/*any"))
}

func TestSetup_Healthz(t *testing.T) {
	r := setupEngine(false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
