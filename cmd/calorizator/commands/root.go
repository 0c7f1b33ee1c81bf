package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/macrolens/calorizator/config"
	"github.com/macrolens/calorizator/internal/infrastructure/calorizator"
	"github.com/macrolens/calorizator/internal/infrastructure/jsonfile"
	"github.com/macrolens/calorizator/internal/logging"
	"github.com/macrolens/calorizator/internal/usecase"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "calorizator",
	Short:         "calorizator scrapes the calorizator.ru product table into JSON.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger, err = logging.New(cfg.Server.Environment, cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: search ./config.yaml, ./config/, /etc/calorizator/)")
}

// ExecuteContext runs the root command and exits non-zero on failure
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newParser wires the listing client and output writer into a parser.
// It contacts the site to read the page amount.
func newParser(ctx context.Context) (*usecase.Parser, error) {
	client := calorizator.NewClient(calorizator.ClientConfig{
		BaseURL:   cfg.Scraper.BaseURL,
		Timeout:   cfg.Scraper.Timeout,
		UserAgent: cfg.Scraper.UserAgent,
	}, logger)
	if cfg.Scraper.Debug {
		client.SetDebug(true)
	}

	return usecase.NewParser(ctx, client, jsonfile.NewOSWriter(cfg.Output.Dir), logger)
}
