package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(generations.WithLabelValues(KindBatch, OutcomeParseError))

	ObserveGeneration(KindBatch, OutcomeParseError, 2*time.Second)

	after := testutil.ToFloat64(generations.WithLabelValues(KindBatch, OutcomeParseError))
	assert.Equal(t, before+1, after)
}

func TestObserveEntitlement(t *testing.T) {
	before := testutil.ToFloat64(entitlements.WithLabelValues("token", EntitlementRejected))

	ObserveEntitlement("token", false)

	after := testutil.ToFloat64(entitlements.WithLabelValues("token", EntitlementRejected))
	assert.Equal(t, before+1, after)
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, `futurenews_http_requests_total{method="GET",route="/ping",status="200"}`))
}
