package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all three pipeline stages in order",
	Long: `Run collect, process, and visualize as one sequence.

Stages run in order and stop at the first failure; artifacts from
earlier stages are kept. Unlike 'climata repro' this does not
consult DVC staleness - every stage always runs.

Example:
  go run ./cmd/climata run
  go run ./cmd/climata run --params params.yaml`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	PrintStageHeader("Full Pipeline", paramsFile)

	runner, cleanup, err := buildRunner(env)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	if err := runner.Run(context.Background()); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	PrintStageCompletion("Pipeline", time.Since(start))
	PrintKeyValue("Input", env.params.Output.InputData, 13)
	PrintKeyValue("Metrics", env.params.Output.MetricsFile, 13)
	PrintKeyValue("Visualization", env.params.Output.Visualization, 13)
	return nil
}
