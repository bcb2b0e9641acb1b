package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func apiKeyRouter(keys []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKey(keys))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return router
}

func TestAPIKeyMissing(t *testing.T) {
	router := apiKeyRouter([]string{"secret"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIKeyInvalid(t *testing.T) {
	router := apiKeyRouter([]string{"secret"})
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderAPIKey, "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestAPIKeyValid(t *testing.T) {
	router := apiKeyRouter([]string{"other", "secret"})
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderAPIKey, "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyDisabledWhenUnconfigured(t *testing.T) {
	router := apiKeyRouter(nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
