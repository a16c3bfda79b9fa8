package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/temperature-heatmap/internal/temperature"
)

const sampleDocument = `{
  "baseTemperature": 8.66,
  "monthlyVariance": [
    {"year": 1753, "month": 1, "variance": -1.366},
    {"year": 1753, "month": 2, "variance": -2.223},
    {"year": 1754, "month": 1, "variance": -0.5}
  ]
}`

var fastBackoff = BackoffConfig{
	MaxRetries:      2,
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
}

func TestHTTPSource_LoadSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	src := NewHTTPSourceWithBackoff(srv.Client(), srv.URL, fastBackoff)
	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, srv.URL, src.Name())
	assert.Equal(t, 8.66, ds.BaseTemperature)
	require.Len(t, ds.MonthlyVariance, 3)
	assert.Equal(t, temperature.MonthlyVariance{Year: 1753, Month: 2, Variance: -2.223}, ds.MonthlyVariance[1])
}

func TestHTTPSource_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	src := NewHTTPSourceWithBackoff(srv.Client(), srv.URL, fastBackoff)
	_, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSource_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSourceWithBackoff(srv.Client(), srv.URL, fastBackoff)
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerError)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSource_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewHTTPSourceWithBackoff(srv.Client(), srv.URL, fastBackoff)
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPSource_MalformedDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"monthlyVariance": []}`))
	}))
	defer srv.Close()

	src := NewHTTPSourceWithBackoff(srv.Client(), srv.URL, fastBackoff)
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, temperature.ErrInvalidDataset)
}

func TestHTTPSource_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewHTTPSourceWithBackoff(srv.Client(), srv.URL, fastBackoff)
	_, err := src.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSource_NoClient(t *testing.T) {
	src := NewHTTPSource(nil, "http://127.0.0.1:1")
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, errNoHTTPClient)
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global-temperature.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o600))

	src := NewFileSource(path)
	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.MonthlyVariance, 3)
	assert.Equal(t, "file://"+path, src.Name())
}

func TestFileSource_Missing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
