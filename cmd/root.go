package cmd

import (
	"fmt"
	"os"

	"untis-notifier/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "untis-notifier",
	Short: "WebUntis change notifier",
	Long: `untis-notifier polls a WebUntis account for timetable, absence, homework
and exam changes and reports every new, modified or removed entry to Discord.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configPath is the directory holding the .env file.
var configPath string

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory containing the .env file")
}
