package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/climata/internal/scheduler"
	"github.com/wonny/climata/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline on a cron schedule",
	Long: `Start a daemon that reruns the full pipeline on a cron schedule.

Each tick runs collect, process, and visualize in order. A failed
run is recorded in the job history and the daemon keeps going;
the next tick starts fresh.

The schedule uses 6-field cron syntax (with seconds).

Example:
  go run ./cmd/climata schedule
  go run ./cmd/climata schedule --cron "0 0 6 * * *"`,
	RunE: runSchedule,
}

var (
	scheduleCron string
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	// Flags
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "0 0 6 * * *", "cron schedule (6 fields, with seconds)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	runner, cleanup, err := buildRunner(env)
	if err != nil {
		return err
	}
	defer cleanup()

	sched := scheduler.New(env.logger)
	job := jobs.NewPipelineJob(runner, env.logger, scheduleCron)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add pipeline job: %w", err)
	}

	sched.Start()
	fmt.Printf("Scheduler started: pipeline on %q (Ctrl+C to stop)\n", scheduleCron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh

	env.logger.WithField("signal", sig.String()).Info("Stopping scheduler")
	sched.Stop()

	PrintSuccess("Scheduler stopped")
	return nil
}
