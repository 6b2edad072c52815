package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/flight-emissions/internal/emissions"
	"github.com/i474232898/flight-emissions/internal/store"
)

type stubProber struct {
	name string
	err  error
}

func (p stubProber) Name() string                  { return p.name }
func (p stubProber) Probe(_ context.Context) error { return p.err }

func newHealthApp(t *testing.T, probing func() bool) *fiber.App {
	t.Helper()
	svc := emissions.NewService(nil, nil, store.NewMemoryStore(10, 0),
		stubProber{name: "past-flights"},
		stubProber{name: "future-flights", err: errors.New("dial tcp: refused")},
	)
	require.NoError(t, svc.ProbeAll(context.Background()))
	require.NoError(t, svc.ProbeAll(context.Background()))

	app := fiber.New()
	RegisterHealth(app, svc, probing)
	return app
}

func TestHealthReportsUpstreams(t *testing.T) {
	app := newHealthApp(t, func() bool { return true })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status    string                  `json:"status"`
		Probing   bool                    `json:"probing"`
		Upstreams []emissions.ProbeStatus `json:"upstreams"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.Probing)
	require.Len(t, body.Upstreams, 2)
	assert.Equal(t, "future-flights", body.Upstreams[0].Provider)
	assert.False(t, body.Upstreams[0].Reachable)
	assert.Contains(t, body.Upstreams[0].Error, "refused")
	assert.Equal(t, "past-flights", body.Upstreams[1].Provider)
	assert.True(t, body.Upstreams[1].Reachable)
}

func TestHealthProbeHistory(t *testing.T) {
	app := newHealthApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health?history=past-flights", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Provider string                  `json:"provider"`
		History  []emissions.ProbeStatus `json:"history"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "past-flights", body.Provider)
	assert.Len(t, body.History, 2)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health?history=unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthProbingDisabled(t *testing.T) {
	app := newHealthApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)

	var body struct {
		Probing bool `json:"probing"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Probing)
}
