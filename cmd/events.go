package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/josephlewis42/mishell/core/logger"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the shell event log.",
}

// updater is implemented by every report.
type updater interface {
	Update(le *logger.LogEntry)
}

// runReport feeds the event log through report and prints it as YAML.
func runReport(cmd *cobra.Command, report updater) error {
	cmd.SilenceUsage = true

	fd, err := readEventLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
		return err
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, &logger.Report{})
	},
}

var sessionsCommand = &cobra.Command{
	Use:   "sessions",
	Short: "Show what happened in each session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, &logger.InteractionReport{})
	},
}

var bugsCommand = &cobra.Command{
	Use:   "bugs",
	Short: "Show lines that failed to run.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, logger.NewBugReport())
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(sessionsCommand)
	eventsCmd.AddCommand(bugsCommand)
}
