// Package http exposes a read-only introspection API for a compiled
// machine specification.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/michalsustr/automata/internal/presentation/graph"
	"github.com/michalsustr/automata/pkg/fsm"
)

// NewHandler builds the introspection router for a specification:
//
//	GET /healthz  - liveness probe
//	GET /spec     - the abstract specification as JSON
//	GET /diagram  - Mermaid stateDiagram-v2 text
//	GET /metrics  - Prometheus exposition (when a gatherer is given)
//
// The handler never mutates anything; running machines are not reachable
// through it.
func NewHandler(spec *fsm.Spec, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/spec", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(spec.Document()); err != nil {
			http.Error(w, "failed to encode spec", http.StatusInternalServerError)
		}
	})

	r.Get("/diagram", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(graph.Mermaid(spec)))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
