package health

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadiness(t *testing.T) {
	s := New(0, nil)
	h := s.Handler()

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := get(t, h, path)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		require.JSONEq(t, `{"status":"not_ready"}`, rec.Body.String())
	}

	s.SetReady(true)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := get(t, h, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	require.Equal(t, http.StatusNotFound, get(t, New(0, nil).Handler(), "/metrics").Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "coachd_analyses_total 3\n")
	})
	rec := get(t, New(0, metrics).Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "coachd_analyses_total")
}
