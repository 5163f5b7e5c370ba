package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalsustr/automata/internal/cli"
	"github.com/michalsustr/automata/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <spec-file>",
	Short: "Export the machine diagram",
	Long:  `Renders the specification as a Mermaid state diagram or a Graphviz digraph.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		preview, _ := cmd.Flags().GetBool("preview")

		spec, err := cli.LoadSpec(args[0])
		if err != nil {
			fmt.Printf("Error loading spec: %v\n", err)
			os.Exit(1)
		}

		var output string
		switch format {
		case "mermaid":
			output = graph.Mermaid(spec)
		case "dot":
			output = graph.Dot(spec)
		default:
			fmt.Printf("Unknown format %q (want mermaid or dot)\n", format)
			os.Exit(1)
		}

		if preview {
			rendered, err := cli.RenderMarkdown("```" + format + "\n" + output + "```\n")
			if err != nil {
				fmt.Printf("Error rendering preview: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(rendered)
			return
		}
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", "mermaid", "Output format: mermaid or dot")
	graphCmd.Flags().Bool("preview", false, "Render the diagram source in the terminal")
}
