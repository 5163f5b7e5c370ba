// Package cli holds helpers shared by the automata commands.
package cli

import (
	"log/slog"

	"github.com/charmbracelet/glamour"

	"github.com/michalsustr/automata/internal/logging"
	"github.com/michalsustr/automata/pkg/dsl"
	"github.com/michalsustr/automata/pkg/fsm"
)

// LoadSpec reads a specification file, picking the format (DSL or YAML) by
// extension.
func LoadSpec(path string) (*fsm.Spec, error) {
	return dsl.LoadFile(path)
}

// NewLogger builds the command logger. Debug enables transition traces.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// RenderMarkdown renders markdown for the terminal, auto-detecting the
// light/dark background.
func RenderMarkdown(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
