package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/josephlewis42/mishell/core"
	"github.com/josephlewis42/mishell/core/config"
	"github.com/josephlewis42/mishell/core/logger"
	"github.com/josephlewis42/mishell/core/proc"
)

var (
	cfgPath string

	// exitStatus is set by the REPL and used once cobra returns.
	exitStatus int
)

func loadConfig() (*config.Configuration, error) {
	return config.Load(cfgPath)
}

// newLogger creates the diagnostic logger at the configured level.
func newLogger(cmd *cobra.Command, configuration *config.Configuration) (*log.Logger, error) {
	level, err := log.ParseLevel(configuration.LogLevel)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: core.ShellName,
		Level:  level,
	}), nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mishell",
	Short: "A minimal interactive shell",
	Long: `A minimal interactive shell.

Each line runs one program, optionally with its input read from a file
(< file) and its output written to a file (> file), or two programs joined
by a single pipe (a | b). The builtins cd and exit run inside the shell.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		diag, err := newLogger(cmd, configuration)
		if err != nil {
			return err
		}

		events := logger.NewNopLogger()
		if configuration.EventLogEnabled() {
			fd, err := configuration.OpenEventLog()
			if err != nil {
				return fmt.Errorf("opening event log: %w", err)
			}
			defer fd.Close()
			events = logger.NewJsonLinesLogRecorder(fd)
		}

		stdio := proc.StdIO()
		reader, err := core.NewLineReader(configuration.Prompt, stdio)
		if err != nil {
			return err
		}

		shell := core.NewShell(reader, stdio, core.Options{
			Prompt: configuration.Prompt,
			Color:  configuration.Color,
			Logger: diag,
			Events: events.NewSession(),
		})
		defer shell.Close()

		diag.Debug("starting", "config", cfgPath, "events", configuration.EventLog)
		exitStatus = shell.Run()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitStatus)
}

// readEventLog opens the configured event log for the events subcommands.
func readEventLog() (io.ReadCloser, error) {
	configuration, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if !configuration.EventLogEnabled() {
		return nil, errors.New("event_log isn't set in the configuration")
	}

	fd, err := configuration.ReadEventLog()
	if err != nil {
		return nil, err
	}
	return fd, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultDir(), "config directory")
}
