package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/seqline/pkg/adapters/mcp"
	"github.com/aretw0/seqline/pkg/adapters/memory"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts seqline as an MCP Server offering the render_sequence tool to AI agents.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// stdout carries JSON-RPC, so logs go to stderr only.
		eng, logger, err := newEngine(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		srv := mcp.NewServer(eng, memory.NewStore(), logger)

		switch transport {
		case "stdio":
			logger.Info("Starting seqline MCP Server (Stdio)")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ServeSSE(ctx, port); err != nil {
				logger.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		default:
			fmt.Fprintf(os.Stderr, "Unknown transport: %s\n", transport)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport to use (stdio, sse)")
	mcpCmd.Flags().Int("port", 8080, "Port for SSE transport")
}
