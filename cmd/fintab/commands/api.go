package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwhan/fintab/internal/api"
	"github.com/jwhan/fintab/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

This command:
- Starts the HTTP API server
- Serves analysis, export, and streaming endpoints
- Persists snapshots when DATABASE_URL is configured

Endpoints:
  GET  /health                              - Health check
  POST /api/analyze                         - Run a fresh analysis
  GET  /api/analyze/stream                  - Websocket progress stream
  GET  /api/analyze/{ticker}                - Latest stored snapshot
  GET  /api/analyze/{ticker}/export/{kind}  - CSV table download

Example:
  go run ./cmd/fintab api
  go run ./cmd/fintab api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== fintab API Server ===")

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.close()

	// Override port if flag is set
	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	d.log.WithFields(map[string]interface{}{
		"port": d.cfg.Port,
		"env":  d.cfg.Env,
	}).Info("Initializing API server")

	// Create handlers
	analyzeHandler := handlers.NewAnalyzeHandler(d.service, d.repo, d.log)
	exportHandler := handlers.NewExportHandler(d.service, d.log)
	streamHandler := handlers.NewStreamHandler(d.service, d.log)

	// Create router and server
	router := api.NewRouter(analyzeHandler, exportHandler, streamHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	d.log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/analyze")
	fmt.Println("  GET  /api/analyze/stream")
	fmt.Println("  GET  /api/analyze/{ticker}")
	fmt.Println("  GET  /api/analyze/{ticker}/export/{kind}")
	if d.repo == nil {
		fmt.Println("\n⚠️  DATABASE_URL not set: snapshot lookups will return 501")
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	d.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
