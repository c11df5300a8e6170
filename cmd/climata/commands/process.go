package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Cluster observations with k-means (stage 2/3)",
	Long: `Cluster the collected observations and write the metrics JSON.

This command:
- Reads output.input_data (CSV produced by collect)
- Pivots rows into one feature vector per (station, date)
- Runs k-means with the settings in the clustering group
- Computes silhouette, Davies-Bouldin, and Calinski-Harabasz scores
- Writes output.metrics_file as indented JSON

Identical input and parameters always produce identical metrics.

Example:
  go run ./cmd/climata process`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	PrintStageHeader("Process", paramsFile)

	runner, cleanup, err := buildRunner(env)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	if err := runner.Process(context.Background()); err != nil {
		return fmt.Errorf("process: %w", err)
	}

	PrintStageCompletion("Process", time.Since(start))
	PrintKeyValue("Output", env.params.Output.MetricsFile, 10)
	return nil
}
