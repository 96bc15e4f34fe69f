package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/seqline"
	"github.com/aretw0/seqline/internal/logging"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "seqline",
	Short: "seqline lays out UML sequence diagrams",
	Long: `seqline reads YAML scenarios (participants and the messages they exchange) and
computes the activation bars, nested activations and lifelines of the sequence diagram.
Layouts can be written as SVG, JSON or Mermaid, served over HTTP or offered to AI agents over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags())
}

func bindGlobalFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "warn", "Log level (debug, info, warn, error)")
	fs.String("log-format", "text", "Log format (text, json)")
	fs.Bool("no-color", false, "Disable coloured output")
	fs.Int("main-width", 0, "Width of main activation bars (unset keeps the scenario value)")
	fs.Int("sub-width", 0, "Width of nested activation bars (unset keeps the scenario value)")
	fs.Int("spacing", 0, "Vertical distance between messages (unset keeps the scenario value)")
}

// loggerFrom builds the stderr logger selected by --log-level.
func loggerFrom(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	format, _ := cmd.Flags().GetString("log-format")
	switch format {
	case "", "text":
		return logging.New(level), nil
	case "json":
		return logging.NewJSON(os.Stderr, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// configFrom collects the geometry flags given on the command line.
func configFrom(cmd *cobra.Command) domain.ConfigOverride {
	flag := func(name string) *int {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetInt(name)
		return &v
	}
	return domain.ConfigOverride{
		MainLifelineWidth: flag("main-width"),
		SubLifelineWidth:  flag("sub-width"),
		MessageSpacing:    flag("spacing"),
	}
}

// colorEnabled reports whether stdout is a terminal and colours were not disabled.
func colorEnabled(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor && term.IsTerminal(int(os.Stdout.Fd()))
}

// newEngine builds an engine that logs lifecycle events when --log-level is debug.
func newEngine(cmd *cobra.Command, extra ...seqline.Option) (*seqline.Engine, *slog.Logger, error) {
	logger, err := loggerFrom(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts := []seqline.Option{seqline.WithLogger(logger)}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, seqline.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	return seqline.New(append(opts, extra...)...), logger, nil
}

// renderPath parses the scenario at path, applies the geometry flags over its config and
// renders it.
func renderPath(cmd *cobra.Command, eng *seqline.Engine, path string) (*domain.Layout, error) {
	data, err := readScenario(path)
	if err != nil {
		return nil, err
	}
	sc, err := eng.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = scenarioName(path)
	}
	sc.Config = configFrom(cmd).Merge(sc.Config)
	if err := sc.Config.Validate(); err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	layout, err := eng.Render(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}
