package main

import (
	"fmt"
	"os"

	"github.com/aretw0/seqline/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scenario.yaml>",
	Short: "Summarise the activations of every participant",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		color := colorEnabled(cmd)
		printer := tui.NewPrinter(os.Stdout, color)

		eng, _, err := newEngine(cmd)
		if err != nil {
			printer.Failure("%v", err)
			os.Exit(1)
		}
		layout, err := renderPath(cmd, eng, args[0])
		if err != nil {
			printer.Failure("%v", err)
			os.Exit(1)
		}

		width := 100
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		render, err := tui.NewRenderer(color, width)
		if err != nil {
			fmt.Printf("Error creating renderer: %v\n", err)
			os.Exit(1)
		}
		out, err := render(tui.Summary(layout))
		if err != nil {
			fmt.Printf("Error rendering summary: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
