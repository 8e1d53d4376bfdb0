package cli

import (
	"fmt"
	"log/slog"
	"time"

	"sitemap-urls/pkg/httpclient"
	"sitemap-urls/pkg/sitemap"
	"sitemap-urls/pkg/urls"

	"github.com/spf13/cobra"
)

type extractOptions struct {
	sitemapURL string
	output     string
	timeout    time.Duration
	client     string
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Fetch the sitemap and write its URLs to a file",
		Long: `Fetch the sitemap and write the <loc> of every <url> entry to the output
file, one per line, replacing any previous content.

Entries are looked up in the sitemaps.org namespace first; sitemaps without a
namespace are read as a fallback. When the sitemap cannot be fetched or parsed
the output file is left untouched and the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sitemapURL, "sitemap", "", "Sitemap URL")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default "+urls.DefaultFile+")")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", httpclient.DefaultTimeout, "HTTP timeout")
	cmd.Flags().StringVar(&opts.client, "client", "", "HTTP client profile: default, browser, cloudflare")

	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions) error {
	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("sitemap") {
		cfg.Sitemap.URL = opts.sitemapURL
	}
	if cmd.Flags().Changed("output") {
		cfg.Sitemap.Output = opts.output
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTP.Timeout = opts.timeout
	}
	if cmd.Flags().Changed("client") {
		cfg.HTTP.Client = opts.client
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closer, err := newRunLogger(cfg, "extract")
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := newHTTPClient(cfg)
	if err != nil {
		return err
	}

	result, err := sitemap.NewExtractor(client, log).Extract(cmd.Context(), cfg.Sitemap.URL)
	if err != nil {
		return err
	}

	if len(result.URLs) == 0 {
		log.Warn("Sitemap contains no URL entries", slog.String("url", cfg.Sitemap.URL))
	}

	if err := urls.WriteFile(cfg.Sitemap.Output, result.URLs); err != nil {
		log.Error("Error writing URL file", slog.String("path", cfg.Sitemap.Output), slog.Any("error", err))
		return err
	}

	log.Info("Wrote URL file", slog.String("path", cfg.Sitemap.Output), slog.Int("count", len(result.URLs)))
	return nil
}
