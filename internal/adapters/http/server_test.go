package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalsustr/automata/pkg/dsl"
	"github.com/michalsustr/automata/pkg/fsm"
)

func testHandler(t *testing.T, gatherer prometheus.Gatherer) http.Handler {
	t.Helper()
	spec, err := dsl.Parse("Lock", `
inputs(Key),
states(Open, Closed),
outputs(Click),
transitions((Open, Key) -> (Closed, Click), (Closed, Key) -> (Open, Click)),
`)
	require.NoError(t, err)
	return NewHandler(spec, gatherer)
}

func TestHandler_Healthz(t *testing.T) {
	srv := httptest.NewServer(testHandler(t, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_SpecJSON(t *testing.T) {
	srv := httptest.NewServer(testHandler(t, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/spec")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc fsm.Doc
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Lock", doc.Name)
	assert.Equal(t, []string{"Open", "Closed"}, doc.States)
	require.Len(t, doc.Transitions, 2)
	assert.Equal(t, "Click", doc.Transitions[0].Output)
}

func TestHandler_Diagram(t *testing.T) {
	srv := httptest.NewServer(testHandler(t, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/diagram")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := make([]byte, 4096)
	n, _ := resp.Body.Read(buf)
	assert.Contains(t, string(buf[:n]), "stateDiagram-v2")
}

func TestHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := httptest.NewServer(testHandler(t, reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_NoMetricsWithoutGatherer(t *testing.T) {
	srv := httptest.NewServer(testHandler(t, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
