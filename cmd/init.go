package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/josephlewis42/mishell/core"
	"github.com/josephlewis42/mishell/core/config"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the config directory.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: core.ShellName})

		_, err := config.Initialize(cfgPath, logger)
		if err == nil {
			logger.Info("configuration ready", "dir", cfgPath)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
