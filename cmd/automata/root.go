package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalsustr/automata/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "automata compiles and inspects declarative state machines",
	Long: `Automata works with declarative Mealy-machine specifications:
validate them, render them as diagrams and serve a read-only
introspection API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// commandLogger builds the logger for one command invocation, honoring the
// persistent --debug flag.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.NewLogger(debug)
}
