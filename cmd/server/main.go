package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/config"
	"github.com/rongwang/nyayadrishti/internal/utils"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "nyayadrishti",
	Short: "Judicial case dashboard server",
	Long: `nyayadrishti serves role-based case views for judges and advocates
built from the NJDG cases and hearings CSV exports.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Serve when no subcommand is given
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv(config.ConfigPathEnv), "TOML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every command
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := utils.NewLogger(cfg.Log.Level, cfg.Log.Format, "nyayadrishti")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}
