package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/metrics"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	c := metrics.New(metrics.WithNamespace("test"))

	c.ObserveRequest(http.MethodGet, http.StatusOK, 10*time.Millisecond)
	c.ObserveRequest(http.MethodGet, http.StatusOK, 20*time.Millisecond)
	c.ObserveRequest(http.MethodPost, http.StatusBadRequest, time.Millisecond)
	c.AddUploads(3)
	c.AddUploads(0)
	c.ObserveSession("fetch", nil)
	c.ObserveSession("save", errors.New("down"))
	c.AddSwept(2)

	n, err := testutil.GatherAndCount(c.Registry(), "test_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per method/status pair")

	n, err = testutil.GatherAndCount(c.Registry(), "test_session_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `test_requests_total{method="GET",status="200"} 2`)
	assert.Contains(t, body, "test_uploaded_files_total 3")
	assert.Contains(t, body, "test_swept_uploads_total 2")
}

func TestCollector_Runtime(t *testing.T) {
	t.Parallel()

	c := metrics.New(metrics.WithRuntimeMetrics())
	n, err := testutil.GatherAndCount(c.Registry(), "go_goroutines")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
