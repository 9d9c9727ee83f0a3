package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/config"
	"github.com/san-kum/physkit/internal/logging"
	"github.com/san-kum/physkit/internal/storage"
	"github.com/san-kum/physkit/internal/tui"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	envFile    string
	save       bool

	cfg      *config.Config
	logger   *zap.Logger
	registry *calc.Registry
)

// main registers commands and flags, opens the interactive TUI when no
// subcommand is given, and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "physkit",
		Short:         "introductory physics calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive(registry, store())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "history directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "optional .env file with PHYSKIT_* overrides")
	rootCmd.PersistentFlags().BoolVar(&save, "save", false, "store results in history")

	rootCmd.AddCommand(
		calcCommand(),
		listCommand(),
		buoyancyCommand(),
		opticsCommand(),
		projectileCommand(),
		relativityCommand(),
		thermoCommand(),
		poleCommand(),
		presetsCommand(),
		historyCommand(),
		showCommand(),
		exportCSVCommand(),
		exportJSONCommand(),
		worksheetCommand(),
		sweepCommand(),
		reportCommand(),
		serveCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup resolves configuration in order: defaults, config file, .env and
// PHYSKIT_* variables, then explicit flags.
func setup(cmd *cobra.Command) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var err error
	logger, err = logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	registry = calc.NewRegistry().WithDefaults(calc.Defaults{
		Gravity:      cfg.Gravity,
		FluidDensity: cfg.FluidDensity,
		Gamma:        cfg.Gamma,
	})
	logger.Debug("configured",
		zap.String("data_dir", cfg.DataDir),
		zap.Float64("gravity", cfg.Gravity),
		zap.Float64("fluid_density", cfg.FluidDensity))
	return nil
}

func store() *storage.Store {
	return storage.New(cfg.DataDir)
}
