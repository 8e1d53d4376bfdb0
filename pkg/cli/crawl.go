package cli

import (
	"fmt"
	"log/slog"

	"sitemap-urls/pkg/crawler"
	"sitemap-urls/pkg/filter"
	"sitemap-urls/pkg/store"
	"sitemap-urls/pkg/urls"

	"github.com/spf13/cobra"
)

type crawlOptions struct {
	input        string
	pagesDir     string
	csv          string
	workers      int
	offset       int
	limit        int
	pathContains string
	markdown     bool
	skipExisting bool
}

func newCrawlCmd(root *rootOptions) *cobra.Command {
	opts := &crawlOptions{}

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Fetch the listed product pages and store their data",
		Long: `Read the URL file written by extract, fetch every product page and save the
extracted product as <pages-dir>/<name>.json. A CSV with one row per product
is written at the end.

Pages without main content, 404 pages and discontinued products are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawl(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "URL file (default: the extract output file)")
	cmd.Flags().StringVar(&opts.pagesDir, "pages-dir", "", "Directory for per-product JSON files")
	cmd.Flags().StringVar(&opts.csv, "csv", "", "Summary CSV path")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Number of concurrent workers")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Skip this many URLs after filtering")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Crawl at most this many URLs (0 = all)")
	cmd.Flags().StringVar(&opts.pathContains, "path-contains", "", "Only crawl URLs containing this path segment")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Also save each page's main content as Markdown")
	cmd.Flags().BoolVar(&opts.skipExisting, "skip-existing", false, "Skip URLs that already have a JSON file")

	return cmd
}

func runCrawl(cmd *cobra.Command, root *rootOptions, opts *crawlOptions) error {
	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return err
	}
	input := cfg.Sitemap.Output
	if cmd.Flags().Changed("input") {
		input = opts.input
	}
	if cmd.Flags().Changed("pages-dir") {
		cfg.Crawl.PagesDir = opts.pagesDir
	}
	if cmd.Flags().Changed("csv") {
		cfg.Crawl.CSV = opts.csv
	}
	if cmd.Flags().Changed("workers") {
		cfg.Crawl.Workers = opts.workers
	}
	if cmd.Flags().Changed("markdown") {
		cfg.Crawl.Markdown = opts.markdown
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if opts.offset < 0 || opts.limit < 0 {
		return fmt.Errorf("offset and limit must not be negative")
	}

	log, closer, err := newRunLogger(cfg, "crawl")
	if err != nil {
		return err
	}
	defer closer.Close()

	list, err := urls.ReadFile(input)
	if err != nil {
		return err
	}

	fs := store.NewFileStore(cfg.Crawl.PagesDir)

	filters := []filter.Filter{filter.NewBaseURLFilter()}
	if opts.pathContains != "" {
		filters = append(filters, filter.NewContainsPathFilter(opts.pathContains))
	}
	if opts.skipExisting {
		filters = append(filters, filter.NewAlreadyFetchedFilter(fs))
	}

	selected, err := filter.FilterURLs(cmd.Context(), list, filters...)
	if err != nil {
		return err
	}
	selected = filter.Window(selected, opts.offset, opts.limit)

	log.Info("Selected URLs",
		slog.String("input", input),
		slog.Int("read", len(list)),
		slog.Int("selected", len(selected)))

	client, err := newHTTPClient(cfg)
	if err != nil {
		return err
	}

	manager := crawler.NewManager(cfg.Crawl.Workers, client, fs, cfg.Crawl.Markdown, log)
	summary, err := manager.ProcessURLs(cmd.Context(), selected)
	if err != nil {
		return err
	}

	if err := store.WriteCSV(cfg.Crawl.CSV, summary.Products); err != nil {
		return err
	}
	log.Info("Wrote CSV", slog.String("path", cfg.Crawl.CSV), slog.Int("rows", len(summary.Products)))
	return nil
}
