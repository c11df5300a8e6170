package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/climata/internal/archive"
	"github.com/wonny/climata/internal/pipeline"
	"github.com/wonny/climata/pkg/config"
	"github.com/wonny/climata/pkg/database"
	"github.com/wonny/climata/pkg/logger"
	"github.com/wonny/climata/pkg/params"
)

var (
	// Global flags
	paramsFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "climata",
	Short: "Climata - reproducible climate clustering pipeline",
	Long: `Climata Unified CLI

Three-stage pipeline over daily climate observations:
collect (NOAA CDO -> CSV), process (k-means -> metrics JSON),
visualize (scatter plot -> PNG). Stage wiring and artifact
versioning are declared in dvc.yaml; every stage reads its
parameters from params.yaml.

Usage:
  go run ./cmd/climata [command]

Examples:
  go run ./cmd/climata run
  go run ./cmd/climata collect
  go run ./cmd/climata status
  go run ./cmd/climata serve --port 8087`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&paramsFile, "params", params.DefaultPath, "parameter file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// environment bundles the pieces every stage command needs.
type environment struct {
	cfg    *config.Config
	params *params.Params
	logger *logger.Logger
}

// loadEnvironment loads .env config, the parameter file, and the logger.
// ⭐ SSOT: 커맨드 초기화는 이 함수에서만
func loadEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	p, err := params.Load(paramsFile)
	if err != nil {
		return nil, fmt.Errorf("load params: %w", err)
	}

	return &environment{cfg: cfg, params: p, logger: log}, nil
}

// buildRunner creates a pipeline runner, attaching the Postgres archive
// when DB_ENABLED is set. The returned cleanup closes the pool and must
// be called even when the run fails.
func buildRunner(env *environment) (*pipeline.Runner, func(), error) {
	runner := pipeline.NewRunner(env.cfg, env.params, env.logger)

	if !env.cfg.Database.Enabled {
		return runner, func() {}, nil
	}

	db, err := database.New(env.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	repo := archive.NewRepository(db.Pool)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ensure archive schema: %w", err)
	}
	runner.WithArchive(repo)

	return runner, db.Close, nil
}
