package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/seqline"
	"github.com/aretw0/seqline/internal/presentation/graph"
	"github.com/aretw0/seqline/internal/presentation/svg"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RenderResponse is the structured result of the render_sequence tool.
type RenderResponse struct {
	Name     string         `json:"name" jsonschema_description:"Name of the diagram"`
	Height   int            `json:"height" jsonschema_description:"Height of the drawing in pixels"`
	Format   string         `json:"format" jsonschema_description:"Format of output: json, svg or mermaid"`
	Output   string         `json:"output,omitempty" jsonschema_description:"The SVG or Mermaid text, empty for json"`
	Layout   *domain.Layout `json:"layout,omitempty" jsonschema_description:"The positioned layout, set for json"`
	SavedAs  string         `json:"saved_as,omitempty" jsonschema_description:"Store key when the layout was saved"`
	Problems []string       `json:"problems,omitempty" jsonschema_description:"Validation problems of the scenario"`
}

// ListResponse is the structured result of the list_layouts tool.
type ListResponse struct {
	IDs []string `json:"ids" jsonschema_description:"Keys of the stored layouts"`
}

// Engine parses and renders scenarios. *seqline.Engine satisfies it.
type Engine interface {
	Parse(data []byte) (*domain.Scenario, error)
	Render(ctx context.Context, sc *domain.Scenario) (*domain.Layout, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	store     ports.LayoutStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. The store may be nil, in which case layouts
// cannot be saved and list_layouts is not offered.
func NewServer(engine Engine, store ports.LayoutStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		engine:    engine,
		store:     store,
		logger:    logger,
		mcpServer: server.NewMCPServer("seqline-mcp", strings.TrimSpace(seqline.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	renderTool := mcp.NewTool("render_sequence",
		mcp.WithDescription("Lay out a UML sequence diagram from a YAML scenario (participants and messages)."),
		mcp.WithString("scenario", mcp.Required(), mcp.Description("The scenario document in YAML")),
		mcp.WithString("format", mcp.Description("Output format: json (default), svg or mermaid")),
		mcp.WithBoolean("save", mcp.Description("Store the layout under the scenario name")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRender))

	if s.store != nil {
		listTool := mcp.NewTool("list_layouts",
			mcp.WithDescription("List the keys of the saved layouts."),
			mcp.WithOutputSchema[ListResponse](),
		)
		s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))
	}
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResponse, error) {
	doc, _ := args["scenario"].(string)
	if strings.TrimSpace(doc) == "" {
		return RenderResponse{}, errors.New("scenario is required")
	}
	format, _ := args["format"].(string)
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "svg" && format != "mermaid" {
		return RenderResponse{}, fmt.Errorf("unsupported format %q", format)
	}

	sc, err := s.engine.Parse([]byte(doc))
	if err != nil {
		var verr *seqline.ValidationError
		if errors.As(err, &verr) {
			return RenderResponse{Format: format, Problems: verr.Problems}, err
		}
		return RenderResponse{}, err
	}
	layout, err := s.engine.Render(ctx, sc)
	if err != nil {
		s.logger.Warn("MCP render failed", "diagram", sc.Name, "error", err)
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}

	resp := RenderResponse{Name: layout.Name, Height: layout.Height, Format: format}
	switch format {
	case "svg":
		resp.Output = svg.String(layout)
	case "mermaid":
		resp.Output = graph.GenerateMermaid(layout, nil)
	default:
		resp.Layout = layout
	}

	if save, _ := args["save"].(bool); save {
		if s.store == nil {
			return RenderResponse{}, errors.New("no layout store configured")
		}
		if layout.Name == "" {
			return RenderResponse{}, errors.New("only named scenarios can be saved")
		}
		if err := s.store.Save(ctx, layout.Name, layout); err != nil {
			return RenderResponse{}, fmt.Errorf("save failed: %w", err)
		}
		resp.SavedAs = layout.Name
	}
	return resp, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ListResponse{IDs: ids}, nil
}
