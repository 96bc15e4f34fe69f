package main

import (
	"fmt"
	"os"

	"github.com/aretw0/seqline/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var mermaidCmd = &cobra.Command{
	Use:   "mermaid <scenario.yaml>",
	Short: "Export the scenario as a Mermaid sequence diagram",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		autonumber, _ := cmd.Flags().GetBool("autonumber")

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
		fmt.Print(graph.GenerateMermaid(layout, &graph.MermaidOptions{AutoNumber: autonumber}))
	},
}

func init() {
	rootCmd.AddCommand(mermaidCmd)
	mermaidCmd.Flags().Bool("autonumber", false, "Number the messages")
}
