package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/michalsustr/automata/internal/cli"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <spec-file>",
	Short: "Dump the parsed specification",
	Long:  `Parses the specification and prints its abstract form as YAML or JSON.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")

		spec, err := cli.LoadSpec(args[0])
		if err != nil {
			fmt.Printf("Error loading spec: %v\n", err)
			os.Exit(1)
		}

		doc := spec.Document()
		switch format {
		case "yaml":
			out, err := yaml.Marshal(doc)
			if err != nil {
				fmt.Printf("Error encoding spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(string(out))
		case "json":
			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				fmt.Printf("Error encoding spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
		default:
			fmt.Printf("Unknown format %q (want yaml or json)\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
}
