package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/climata/internal/dvc"
	"github.com/wonny/climata/pkg/config"
	"github.com/wonny/climata/pkg/logger"
)

// reproCmd represents the repro command
var reproCmd = &cobra.Command{
	Use:   "repro",
	Short: "Rerun stale pipeline stages via DVC",
	Long: `Run 'dvc repro': rerun only the stages whose declared inputs
(parameters, upstream artifacts) changed since the last run.

Stage wiring lives in dvc.yaml; each stage invokes this binary.
Requires the dvc CLI on PATH.

Example:
  go run ./cmd/climata repro`,
	RunE: runRepro,
}

// pushCmd represents the push command
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload artifacts to the DVC remote",
	Long: `Run 'dvc push': upload tracked artifacts to the configured
remote object store (MinIO/S3).

Requires the dvc CLI on PATH and a configured remote.

Example:
  go run ./cmd/climata push`,
	RunE: runPush,
}

var (
	dvcCheckOnly bool
)

func init() {
	rootCmd.AddCommand(reproCmd)
	rootCmd.AddCommand(pushCmd)

	// Flags
	reproCmd.Flags().BoolVar(&dvcCheckOnly, "check", false, "only report stale stages (dvc status)")
}

func newDVC() (*dvc.CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return dvc.New(logger.New(cfg)), nil
}

func runRepro(cmd *cobra.Command, args []string) error {
	cli, err := newDVC()
	if err != nil {
		return err
	}

	if dvcCheckOnly {
		return cli.Status(context.Background())
	}

	if err := cli.Repro(context.Background()); err != nil {
		return err
	}
	PrintSuccess("Reproduction complete")
	return nil
}

func runPush(cmd *cobra.Command, args []string) error {
	cli, err := newDVC()
	if err != nil {
		return err
	}

	if err := cli.Push(context.Background()); err != nil {
		return err
	}
	PrintSuccess("Artifacts pushed")
	return nil
}
