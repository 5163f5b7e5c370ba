package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalsustr/automata"
)

func TestCollector_CountsTransitionsAndFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	prog, err := automata.Compile("Lock", `
inputs(Key, Drill),
states(Open, Closed),
transitions((Open, Key) -> (Closed), (Closed, Key) -> (Open)),
`)
	require.NoError(t, err)

	data := struct{}{}
	m, err := automata.New(prog, &data, nil, automata.WithHooks(collector.Hooks()))
	require.NoError(t, err)

	require.NoError(t, m.Consume(automata.Value{Name: "Key"}))
	require.NoError(t, m.Consume(automata.Value{Name: "Key"}))
	require.NoError(t, m.Consume(automata.Value{Name: "Key"}))
	require.Error(t, m.Consume(automata.Value{Name: "Drill"}))

	openToClosed := collector.transitions.WithLabelValues("Lock", "Open", "Closed")
	assert.Equal(t, 2.0, testutil.ToFloat64(openToClosed))

	closedToOpen := collector.transitions.WithLabelValues("Lock", "Closed", "Open")
	assert.Equal(t, 1.0, testutil.ToFloat64(closedToOpen))

	failed := collector.failures.WithLabelValues("Lock", "Closed")
	assert.Equal(t, 1.0, testutil.ToFloat64(failed))
}
