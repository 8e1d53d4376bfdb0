package crawler

import (
	"bytes"
	"context"
	"fmt"

	"sitemap-urls/pkg/content"
	"sitemap-urls/pkg/domain"
	"sitemap-urls/pkg/httpclient"
	"sitemap-urls/pkg/product"
	"sitemap-urls/pkg/store"
)

// Worker processes product pages from URLs
type Worker struct {
	client   *httpclient.HTTPClient
	store    *store.FileStore
	markdown bool
}

// NewWorker creates a new worker
func NewWorker(client *httpclient.HTTPClient, fs *store.FileStore, markdown bool) *Worker {
	return &Worker{
		client:   client,
		store:    fs,
		markdown: markdown,
	}
}

// ProcessURL processes a single URL: fetches, extracts, and saves the product.
// Skipped pages return an error for which product.IsSkip is true.
func (w *Worker) ProcessURL(ctx context.Context, url string) (*domain.Product, error) {
	body, err := w.client.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	p, err := product.ParsePage(bytes.NewReader(body), url)
	if err != nil {
		return nil, err
	}

	if err := w.store.SaveProduct(p); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	if w.markdown {
		md, err := content.Markdown(string(body), url)
		if err != nil {
			return nil, fmt.Errorf("failed to extract markdown: %w", err)
		}
		if err := w.store.SaveMarkdown(url, md); err != nil {
			return nil, fmt.Errorf("failed to save markdown: %w", err)
		}
	}

	return p, nil
}
