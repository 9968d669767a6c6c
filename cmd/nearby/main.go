package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nearby/internal/config"
	"nearby/internal/gateway"
	"nearby/internal/search"
	"nearby/internal/tui"
)

var (
	configPath   string
	endpoint     string
	logFile      string
	verbose      bool
	mapSwapDelay time.Duration
	revealDelay  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Search for places near a location",
	Long: `nearby asks the place backend for popular restaurants, cafes, parks,
museums and shops around a location and shows them grouped by category.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, err := buildLogger(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client := gateway.New(cfg.Endpoint, gateway.WithLogger(logger.Named("gateway")))
		orch := search.New(client, search.Options{
			MapSwapDelay: cfg.MapSwapDelay,
			RevealDelay:  cfg.RevealDelay,
			Logger:       logger.Named("search"),
		})

		logger.Info("client starting", zap.String("endpoint", cfg.Endpoint))
		return tui.Run(ctx, orch, client, logger.Named("tui"))
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML client config file")
	rootCmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "backend action endpoint URL")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().DurationVar(&mapSwapDelay, "map-swap-delay", 0, "delay before the map moves to the searched location")
	rootCmd.Flags().DurationVar(&revealDelay, "reveal-delay", 0, "delay between fetched results and the results view")
}

// loadConfig layers explicitly set flags over the YAML file over defaults.
func loadConfig(cmd *cobra.Command) (config.Client, error) {
	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return config.Client{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("map-swap-delay") {
		cfg.MapSwapDelay = mapSwapDelay
	}
	if flags.Changed("reveal-delay") {
		cfg.RevealDelay = revealDelay
	}
	if cfg.Endpoint == "" {
		return config.Client{}, fmt.Errorf("no endpoint configured")
	}
	return cfg, nil
}

// buildLogger writes JSON logs to path; the terminal belongs to the UI, so
// without a path logging is discarded.
func buildLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{path}
	zapConfig.ErrorOutputPaths = []string{path}
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapConfig.Build()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
