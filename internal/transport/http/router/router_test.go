package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grabticket/bot/internal/config"
	"github.com/grabticket/bot/internal/transport/http/handlers"
)

func newRouter(rlEnabled bool) http.Handler {
	cfg := &config.Config{
		RLEnabled: rlEnabled,
		RLLimit:   100,
		RLWindow:  time.Minute,
	}
	return New(handlers.NewHealthHandler(), cfg)
}

func TestLiveness(t *testing.T) {
	r := newRouter(false)

	t.Run("healthz_returns_200_plaintext", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, handlers.LivenessBody, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("any_path_returns_200", func(t *testing.T) {
		for _, path := range []string{"/", "/anything", "/deep/nested/path"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.Equal(t, handlers.LivenessBody, rec.Body.String())
		}
	})

	t.Run("any_method_returns_200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("request_id_header_is_set", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("rate_limited_router_still_serves", func(t *testing.T) {
		limited := newRouter(true)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
