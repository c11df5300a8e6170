package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/climata/internal/api"
	"github.com/wonny/climata/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the artifact API server",
	Long: `Start a read-only HTTP server over the pipeline artifacts.

The server never triggers stage runs; it only exposes what the
pipeline has already produced.

Endpoints:
  GET /health             - Health check
  GET /api/metrics        - Clustering metrics JSON
  GET /api/visualization  - Rendered PNG
  GET /api/params         - Active parameters and their hash

Example:
  go run ./cmd/climata serve
  go run ./cmd/climata serve --port 8087`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default from PORT env)")
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	if servePort != "" {
		env.cfg.Port = servePort
	}

	artifactsHandler := handlers.NewArtifactsHandler(env.params, env.logger)
	router := api.NewRouter(artifactsHandler, env.logger)
	server := api.New(env.cfg, env.logger, router)

	// Run the server in the background so we can wait for signals
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("Artifact server listening on :%s (Ctrl+C to stop)\n", env.cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-sigCh:
		env.logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	PrintSuccess("Server stopped")
	return nil
}
