package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/climata/internal/archive"
	"github.com/wonny/climata/internal/artifact"
	"github.com/wonny/climata/pkg/database"
	"github.com/wonny/climata/pkg/params"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline artifact status",
	Long: `Show which artifacts exist and summarize their contents.

Displayed information:
- Parameter file hash (changes when any parameter changes)
- Per-artifact presence, size, and modification time
- Input row count and metrics summary when available
- Archive row count when DB_ENABLED=true

Example:
  go run ./cmd/climata status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	hash, err := params.Hash(env.params)
	if err != nil {
		return fmt.Errorf("hash params: %w", err)
	}

	PrintDoubleSeparator()
	fmt.Println("  Climata Pipeline Status")
	PrintSeparator()
	PrintKeyValue("Params", paramsFile, 13)
	PrintKeyValue("Params hash", hash[:16], 13)
	PrintSeparator()

	printArtifact("Input CSV", env.params.Output.InputData)
	printArtifact("Metrics", env.params.Output.MetricsFile)
	printArtifact("Plot", env.params.Output.Visualization)

	if readings, err := artifact.ReadReadingsCSV(env.params.Output.InputData); err == nil {
		PrintKeyValue("Input rows", fmt.Sprintf("%d", len(readings)), 13)
	}
	if m, err := artifact.ReadMetrics(env.params.Output.MetricsFile); err == nil {
		PrintKeyValue("Clusters", fmt.Sprintf("%d", m.NClusters), 13)
		PrintKeyValue("Samples", fmt.Sprintf("%d", m.NSamples), 13)
		PrintKeyValue("Silhouette", fmt.Sprintf("%.4f", m.SilhouetteScore), 13)
	}

	if env.cfg.Database.Enabled {
		if err := printArchiveStatus(env); err != nil {
			PrintWarning(fmt.Sprintf("archive unavailable: %v", err))
		}
	}

	PrintDoubleSeparator()
	return nil
}

func printArtifact(name, path string) {
	info, err := os.Stat(path)
	if err != nil {
		PrintKeyValue(name, fmt.Sprintf("%s (missing)", path), 13)
		return
	}
	PrintKeyValue(name, fmt.Sprintf("%s (%d bytes, %s)",
		path, info.Size(), info.ModTime().Format("2006-01-02 15:04:05")), 13)
}

func printArchiveStatus(env *environment) error {
	db, err := database.New(env.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo := archive.NewRepository(db.Pool)
	count, err := repo.CountReadings(ctx)
	if err != nil {
		return err
	}
	PrintSeparator()
	PrintKeyValue("Archive rows", fmt.Sprintf("%d", count), 13)

	latest, err := repo.LatestFetch(ctx)
	if err == nil && latest != "" {
		PrintKeyValue("Last archive", latest, 13)
	}
	return nil
}
