package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/seqline/internal/presentation/graph"
	"github.com/aretw0/seqline/internal/presentation/svg"
	"github.com/aretw0/seqline/internal/presentation/tui"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <scenario.yaml>",
	Short: "Lay out a scenario and write the drawing",
	Long: `Renders the scenario and writes it as SVG (default), JSON or Mermaid.
Use "-" to read the scenario from stdin. Without --output the drawing goes to stdout.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		if format == "" {
			format = formatFromExt(output)
		}

		eng, _, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		layout, err := renderPath(cmd, eng, args[0])
		if err != nil {
			fmt.Printf("Error rendering scenario: %v\n", err)
			os.Exit(1)
		}

		data, err := encode(layout, format)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := writeOutput(output, data); err != nil {
			fmt.Printf("Error writing output: %v\n", err)
			os.Exit(1)
		}
		if output != "" && output != "-" {
			tui.NewPrinter(os.Stderr, colorEnabled(cmd)).Success("wrote %s (%d participants, %d messages)",
				output, len(layout.Participants), len(layout.Messages))
		}
	},
}

func encode(layout *domain.Layout, format string) ([]byte, error) {
	switch format {
	case "svg":
		return []byte(svg.String(layout)), nil
	case "json":
		data, err := json.MarshalIndent(layout, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "mermaid", "mmd":
		return []byte(graph.GenerateMermaid(layout, nil)), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want svg, json or mermaid)", format)
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".mmd", ".mermaid":
		return "mermaid"
	default:
		return "svg"
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "", "Output format: svg, json or mermaid (default from --output extension, else svg)")
	renderCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
