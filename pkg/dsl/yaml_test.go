package dsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lockYAML = `
name: Lock
inputs: [Key, Drill]
states: [Open, Closed, Broken]
outputs: [Click]
transitions:
  - {from: Open, input: Key, to: Closed, output: Click}
  - {from: Closed, input: Key, to: Open, output: Click}
  - {from: Open, input: Drill, to: Broken}
  - {from: Closed, input: Drill, to: Broken, guard: "!jammed", handler: smash}
`

func TestLoadYAML(t *testing.T) {
	spec, err := LoadYAML("fallback", []byte(lockYAML))
	require.NoError(t, err)

	assert.Equal(t, "Lock", spec.Name, "document name wins over fallback")
	assert.Equal(t, []string{"Key", "Drill"}, spec.Inputs)
	assert.Equal(t, "Open", spec.Initial())
	require.Len(t, spec.Transitions, 4)

	guarded := spec.Transitions[3]
	require.NotNil(t, guarded.Guard)
	assert.Equal(t, "!jammed", guarded.Guard.String())
	assert.Equal(t, "smash", guarded.Handler)
}

func TestLoadYAML_FallbackName(t *testing.T) {
	spec, err := LoadYAML("FromFile", []byte("states: [A]\ntransitions: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "FromFile", spec.Name)
}

func TestLoadYAML_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadYAML("m", []byte("states: [A]\nbogus: 1\n"))
	assert.Error(t, err)
}

func TestLoadYAML_RejectsBadGuard(t *testing.T) {
	_, err := LoadYAML("m", []byte(`
states: [A, B]
transitions:
  - {from: A, to: B, guard: "a ||"}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guard")
}

func TestLoadFile_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "lock.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(lockYAML), 0o644))
	spec, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Lock", spec.Name)

	dslPath := filepath.Join(dir, "blinker.fsm")
	require.NoError(t, os.WriteFile(dslPath, []byte(`states(On, Off) transitions((On) -> (Off), (Off) -> (On))`), 0o644))
	spec, err = LoadFile(dslPath)
	require.NoError(t, err)
	assert.Equal(t, "blinker", spec.Name, "name defaults to the file base name")
	assert.Len(t, spec.Transitions, 2)
}
