package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch daily climate observations (stage 1/3)",
	Long: `Fetch daily temperature observations and write the input CSV.

This command:
- Reads stations, date range, and datatypes from params.yaml
- Fetches observations from the NOAA CDO v2 API (data.mode: api)
  or generates a deterministic dataset locally (data.mode: synthetic)
- Writes output.input_data as CSV (station,date,datatype,value)
- Archives rows to Postgres when DB_ENABLED=true

Any fetch failure aborts the stage and leaves no partial artifact.

Example:
  go run ./cmd/climata collect
  go run ./cmd/climata collect --params params.yaml`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	PrintStageHeader("Collect", paramsFile)

	runner, cleanup, err := buildRunner(env)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	if err := runner.Collect(context.Background()); err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	PrintStageCompletion("Collect", time.Since(start))
	PrintKeyValue("Output", env.params.Output.InputData, 10)
	return nil
}
