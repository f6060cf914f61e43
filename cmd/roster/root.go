package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/roster/internal/config"
	"github.com/aretw0/roster/internal/platform"
)

var (
	configPath  string
	dataPath    string
	adapterName string
	verbose     bool
	output      string

	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "A local console for employees, employers, skill tests and their activity feed",
	Long: `Roster keeps a small HR console in a local storage medium (files, SQLite
or memory). Every change to employees and employers lands in an activity feed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("adapter") {
			loaded.Storage.Adapter = adapterName
		}
		if cmd.Flags().Changed("data") {
			loaded.Storage.Path = dataPath
		}
		if verbose {
			loaded.Log.Level = "debug"
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		if err := validateOutput(output); err != nil {
			return err
		}

		cfg = loaded
		logger = platform.NewLogger(os.Stderr, cfg.Log.Format, cfg.Log.Level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./roster.yaml or $ROSTER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Data location (directory for fs, file or directory for sqlite)")
	rootCmd.PersistentFlags().StringVar(&adapterName, "adapter", "fs", "Storage adapter: fs, sqlite, memory, none")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format: table, json, yaml")
}
