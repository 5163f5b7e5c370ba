package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalsustr/automata"
	"github.com/michalsustr/automata/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <spec-file>",
	Short: "Check a machine specification for consistency",
	Long:  `Parses and compiles the specification, reporting every syntax and semantic problem found.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0], commandLogger(cmd)); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Specification is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string, logger *slog.Logger) error {
	spec, err := cli.LoadSpec(path)
	if err != nil {
		return err
	}
	prog, err := automata.CompileSpec(spec)
	if err != nil {
		return err
	}
	logger.Debug("specification compiled",
		"name", prog.Name(),
		"states", len(spec.States),
		"transitions", len(spec.Transitions),
		"guards", len(prog.GuardNames()),
		"handlers", len(prog.HandlerNames()))
	return nil
}
