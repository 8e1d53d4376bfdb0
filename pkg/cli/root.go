package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sitemap-urls/pkg/config"
	"sitemap-urls/pkg/httpclient"
	"sitemap-urls/pkg/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
}

// NewRootCmd builds the sitemapurls command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sitemapurls",
		Short: "Extract product URLs from an XML sitemap",
		Long: `sitemapurls downloads an XML sitemap, collects the <loc> value of every
<url> entry and writes them to a text file, one per line.

The crawl command then fetches those product pages and stores the extracted
product data as JSON files plus a summary CSV.

Settings are read from sitemapurls.yaml, then .env and the environment,
then command-line flags.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the YAML config file (default ./"+config.FileName+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Also append log records to this file")

	cmd.AddCommand(newExtractCmd(opts), newCrawlCmd(opts), newVersionCmd())
	return cmd
}

// Execute runs the root command, cancelling on SIGINT/SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// loadConfig reads the configuration and applies the persistent flags set on cmd
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logging.File = o.logFile
	}
	return cfg, nil
}

// newRunLogger builds the logger for one command run, tagged with a fresh run ID
func newRunLogger(cfg *config.Config, command string) (*slog.Logger, io.Closer, error) {
	log, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return log.With(slog.String("run_id", uuid.NewString()), slog.String("command", command)), closer, nil
}

func newHTTPClient(cfg *config.Config) (*httpclient.HTTPClient, error) {
	ct, err := httpclient.ParseClientType(cfg.HTTP.Client)
	if err != nil {
		return nil, err
	}
	return httpclient.NewClientWithTimeout(ct, cfg.HTTP.Timeout), nil
}
