package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// visualizeCmd represents the visualize command
var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render the cluster scatter plot (stage 3/3)",
	Long: `Render the clustering result as a PNG scatter plot.

This command:
- Reads output.metrics_file (JSON produced by process)
- Plots the first two features, one color per cluster
- Marks cluster centers with red crosses
- Writes output.visualization sized figure_width x figure_height
  inches at the configured DPI

Example:
  go run ./cmd/climata visualize`,
	RunE: runVisualize,
}

func init() {
	rootCmd.AddCommand(visualizeCmd)
}

func runVisualize(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	PrintStageHeader("Visualize", paramsFile)

	runner, cleanup, err := buildRunner(env)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	if err := runner.Visualize(context.Background()); err != nil {
		return fmt.Errorf("visualize: %w", err)
	}

	PrintStageCompletion("Visualize", time.Since(start))
	PrintKeyValue("Output", env.params.Output.Visualization, 10)
	return nil
}
