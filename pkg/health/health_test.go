package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var resp statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestLiveEndpoint_NoChecks(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeStatus(t, rec).Status)
}

func TestLiveEndpoint_FailingCheck(t *testing.T) {
	h := New()
	h.AddLivenessCheck("broken", time.Second, func(context.Context) error {
		return errors.New("it hurts")
	})
	h.AddLivenessCheck("fine", time.Second, func(context.Context) error {
		return nil
	})

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeStatus(t, rec)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "it hurts", resp.Checks["broken"])
	assert.NotContains(t, resp.Checks, "fine")
}

func TestReadyEndpoint_NotReadyByDefault(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeStatus(t, rec)
	assert.Equal(t, "service is not ready", resp.Checks["_readiness"])
}

func TestReadyEndpoint_ReadyWithPassingChecks(t *testing.T) {
	h := New()
	h.AddReadinessCheck("db", time.Second, func(context.Context) error { return nil })
	h.SetReady(true)

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeStatus(t, rec).Status)
}

func TestReadyEndpoint_DependencyFailure(t *testing.T) {
	h := New()
	h.AddReadinessCheck("db", time.Second, func(context.Context) error {
		return errors.New("connection refused")
	})
	h.SetReady(true)

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "connection refused", decodeStatus(t, rec).Checks["db"])
}

func TestReadyEndpoint_ShutdownDrain(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCheckTimeout(t *testing.T) {
	h := New()
	h.AddReadinessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})
	h.SetReady(true)

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decodeStatus(t, rec).Checks["slow"], "context deadline exceeded")
}

func TestIsReady(t *testing.T) {
	h := New()
	assert.False(t, h.IsReady(context.Background()))

	h.SetReady(true)
	assert.True(t, h.IsReady(context.Background()))

	h.AddReadinessCheck("db", time.Second, func(context.Context) error {
		return errors.New("down")
	})
	assert.False(t, h.IsReady(context.Background()))
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
