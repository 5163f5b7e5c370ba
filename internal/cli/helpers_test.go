package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_DebugTogglesLevel(t *testing.T) {
	ctx := context.Background()

	quiet := NewLogger(false)
	assert.False(t, quiet.Enabled(ctx, slog.LevelDebug))
	assert.True(t, quiet.Enabled(ctx, slog.LevelInfo))

	verbose := NewLogger(true)
	assert.True(t, verbose.Enabled(ctx, slog.LevelDebug))
}

func TestLoadSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blinker.fsm")
	require.NoError(t, os.WriteFile(path, []byte(`states(On, Off) transitions((On) -> (Off))`), 0o644))

	spec, err := LoadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "blinker", spec.Name)
	assert.Len(t, spec.Transitions, 1)
}
