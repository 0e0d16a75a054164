package observe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// counterValue sums the data points of name whose attributes include want.
func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string, want ...attribute.KeyValue) int64 {
	t.Helper()
	m := findMetric(rm, name)
	require.NotNil(t, m, name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", name)

	var total int64
	for _, dp := range sum.DataPoints {
		match := true
		for _, kv := range want {
			if v, ok := dp.Attributes.Value(kv.Key); !ok || v != kv.Value {
				match = false
				break
			}
		}
		if match {
			total += dp.Value
		}
	}
	return total
}

func TestRecorders(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordCompletion(ctx, "feedback", 0.2, nil)
	m.RecordCompletion(ctx, "feedback", 0.4, errors.New("boom"))
	m.RecordCacheLookup(ctx, true)
	m.RecordCacheLookup(ctx, false)
	m.RecordCacheLookup(ctx, false)
	m.RecordAnalysis(ctx, "local", "en", 0.01)
	m.RecordFailure(ctx, "translate", "validation")
	m.KeywordFallbacks.Add(ctx, 1)
	m.RecordInterviewFallback(ctx, "summary")

	rm := collect(t, reader)

	t.Run("completion requests", func(t *testing.T) {
		require.EqualValues(t, 1, counterValue(t, rm, "coachd.completion.requests", attribute.String("status", "ok")))
		require.EqualValues(t, 1, counterValue(t, rm, "coachd.completion.requests", attribute.String("status", "error")))

		h := findMetric(rm, "coachd.completion.duration")
		require.NotNil(t, h)
		hist, ok := h.Data.(metricdata.Histogram[float64])
		require.True(t, ok)
		require.Len(t, hist.DataPoints, 1)
		require.EqualValues(t, 2, hist.DataPoints[0].Count)
	})

	t.Run("cache lookups", func(t *testing.T) {
		require.EqualValues(t, 1, counterValue(t, rm, "coachd.translation_cache.lookups", attribute.String("result", "hit")))
		require.EqualValues(t, 2, counterValue(t, rm, "coachd.translation_cache.lookups", attribute.String("result", "miss")))
	})

	t.Run("analyses and failures", func(t *testing.T) {
		require.EqualValues(t, 1, counterValue(t, rm, "coachd.analyses", attribute.String("mode", "local")))
		require.EqualValues(t, 1, counterValue(t, rm, "coachd.failures", attribute.String("kind", "validation")))
		require.EqualValues(t, 1, counterValue(t, rm, "coachd.keywords.fallbacks"))
		require.EqualValues(t, 1, counterValue(t, rm, "coachd.interview.fallbacks", attribute.String("stage", "summary")))
	})
}

func TestMiddleware(t *testing.T) {
	m, reader := newTestMetrics(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := httptest.NewServer(Middleware(m)(mux))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/items/42")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	rm := collect(t, reader)
	h := findMetric(rm, "coachd.http.request.duration")
	require.NotNil(t, h)
	hist := h.Data.(metricdata.Histogram[float64])
	require.Len(t, hist.DataPoints, 1)

	path, ok := hist.DataPoints[0].Attributes.Value("path")
	require.True(t, ok)
	require.Equal(t, "GET /items/{id}", path.AsString())
	status, _ := hist.DataPoints[0].Attributes.Value("status")
	require.EqualValues(t, http.StatusTeapot, status.AsInt64())
}

func TestInitProvider(t *testing.T) {
	p, err := InitProvider(ProviderConfig{ServiceVersion: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	m := DefaultMetrics()
	m.RecordFailure(context.Background(), "analyze", "internal")

	rec := httptest.NewRecorder()
	p.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "coachd_failures"), string(body))
}

func TestDiscard(t *testing.T) {
	m := Discard()
	require.NotNil(t, m)
	m.RecordCacheLookup(context.Background(), true)
}
