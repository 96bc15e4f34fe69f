package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/seqline"
	"github.com/aretw0/seqline/internal/presentation/tui"
	httpAdapter "github.com/aretw0/seqline/pkg/adapters/http"
	"github.com/aretw0/seqline/pkg/adapters/memory"
	redisStore "github.com/aretw0/seqline/pkg/adapters/redis"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/observability"
	"github.com/aretw0/seqline/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the render HTTP server",
	Long: `Starts the HTTP API: POST /render, the /layouts store, /events (SSE lifeline events)
and /metrics for Prometheus. Layouts are kept in memory unless --redis is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		logger, err := loggerFrom(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			fmt.Printf("Error registering metrics: %v\n", err)
			os.Exit(1)
		}

		streams := httpAdapter.NewStreamManager(logger)
		eng := seqline.New(
			seqline.WithLogger(logger),
			seqline.WithConfig(configFrom(cmd).Apply(domain.DefaultConfig())),
			seqline.WithLifecycleHooks(metrics.Hooks()),
			seqline.WithLifecycleHooks(streams.Hooks()),
		)

		store, closeStore := storeFrom(redisAddr, ttl, logger)
		defer closeStore()

		r := chi.NewRouter()
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		r.Mount("/", httpAdapter.NewHandler(eng,
			httpAdapter.WithStore(store),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithRenderObserver(metrics.ObserveRender),
		))

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			printer := tui.NewPrinter(os.Stdout, colorEnabled(cmd))
			printer.Banner(seqline.Version)
			printer.Success("listening on %s", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				fmt.Printf("Server error: %v\n", err)
				os.Exit(1)
			}

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("seqline server stopped gracefully")
		}
	},
}

// storeFrom selects the layout store. An empty address keeps layouts in memory.
func storeFrom(addr string, ttl time.Duration, logger *slog.Logger) (ports.LayoutStore, func()) {
	if addr == "" {
		return memory.NewStore(), func() {}
	}
	store := redisStore.New(addr, redisStore.WithTTL(ttl))
	logger.Info("Using redis layout store", "addr", addr, "ttl", ttl)
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing redis store failed", "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the layout store (default in-memory)")
	serveCmd.Flags().Duration("ttl", 0, "Expiry of stored layouts in redis (0 keeps them forever)")
}
