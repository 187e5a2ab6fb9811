package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/interfaces/http/response"
	"farm-bridge.backend/pkg/metrics"
)

func TestMetricsMiddleware_CountsRejectionsByCode(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/missing", func(c *gin.Context) {
		response.Error(c, domainerrors.NotRegistered("farmer not registered"))
	})
	r.GET("/ok", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FailedOperations.WithLabelValues(domainerrors.CodeNotRegistered)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FailedOperations.WithLabelValues(domainerrors.CodeInternal)))
}
