package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/osmanylima/osmany-lima/internal/metrics"
	"github.com/osmanylima/osmany-lima/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryMiddleware(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/panic-error", func(c *gin.Context) { panic(assert.AnError) })

	for _, path := range []string{"/panic", "/panic-error"} {
		w := serve(r, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, model.InternalErrorMessage, body.Error)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := serve(r, http.MethodGet, "/", nil)
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = serve(r, http.MethodGet, "/", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggingMiddleware(zap.NewNop(), "/health"))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := serve(r, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestJSONContentType(t *testing.T) {
	r := gin.New()
	r.Use(JSONContentType())
	r.GET("/json", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"a": 1}) })
	r.GET("/abort", func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusBadRequest, model.ErrorResponse{Error: "x"})
	})

	for _, path := range []string{"/json", "/abort"} {
		w := serve(r, http.MethodGet, path, nil)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"), path)
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", map[string]string{"Origin": "https://app.example"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	restricted := gin.New()
	restricted.Use(CORSMiddleware([]string{"https://app.example"}))
	restricted.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w = serve(restricted, http.MethodGet, "/", map[string]string{"Origin": "https://app.example"})
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(restricted, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	instance := limiter.New(memory.NewStore(), rate)

	r := gin.New()
	r.Use(RateLimit(instance, zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, model.TooManyRequestsMessage, body.Error)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/items/1", nil)
	serve(r, http.MethodGet, "/items/2", nil)
	serve(r, http.MethodGet, "/missing", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal().WithLabelValues("/items/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal().WithLabelValues("unmatched", "GET", "404")))
}
