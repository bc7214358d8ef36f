package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecordSubmission(t *testing.T) {
	m := NewMetrics(NewRegistry())

	m.RecordSubmission(ResultAccepted)
	m.RecordSubmission(ResultAccepted)
	m.RecordSubmission(ResultRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(ResultAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(ResultRejected)))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSubmission(ResultAccepted)
		m.RecordSurveyCreated()
	})
}

func TestGinMiddlewareUsesRouteTemplate(t *testing.T) {
	reg := NewRegistry()
	m := NewMetrics(reg)

	router := gin.New()
	router.Use(m.GinMiddleware())
	router.GET("/surveys/:survey_id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(Handler(reg)))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/surveys/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/surveys/:survey_id", "204")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "surveyor_http_requests_total"))
}
