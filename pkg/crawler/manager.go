package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"sitemap-urls/pkg/domain"
	"sitemap-urls/pkg/httpclient"
	"sitemap-urls/pkg/product"
	"sitemap-urls/pkg/store"
)

// DefaultWorkers is the number of pages fetched concurrently
const DefaultWorkers = 10

// Summary reports the outcome of a crawl
type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int
	// Products holds the extracted products in input order
	Products []*domain.Product
}

// Manager manages workers and distributes URLs to them
type Manager struct {
	workerCount int
	client      *httpclient.HTTPClient
	store       *store.FileStore
	markdown    bool
	log         *slog.Logger
}

// NewManager creates a new manager. A workerCount <= 0 uses DefaultWorkers.
func NewManager(workerCount int, client *httpclient.HTTPClient, fs *store.FileStore, markdown bool, log *slog.Logger) *Manager {
	if workerCount <= 0 {
		workerCount = DefaultWorkers
	}
	return &Manager{
		workerCount: workerCount,
		client:      client,
		store:       fs,
		markdown:    markdown,
		log:         log.With("component", "crawler"),
	}
}

type job struct {
	index int
	url   string
}

// ProcessURLs distributes URLs to workers and processes them concurrently
func (m *Manager) ProcessURLs(ctx context.Context, urls []string) (*Summary, error) {
	jobChan := make(chan job, len(urls))
	for i, url := range urls {
		jobChan <- job{index: i, url: url}
	}
	close(jobChan)

	results := make([]*domain.Product, len(urls))
	summary := &Summary{}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < m.workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			w := NewWorker(m.client, m.store, m.markdown)

			for j := range jobChan {
				if ctx.Err() != nil {
					mu.Lock()
					summary.Failed++
					mu.Unlock()
					continue
				}

				p, err := w.ProcessURL(ctx, j.url)

				mu.Lock()
				switch {
				case err == nil:
					results[j.index] = p
					summary.Succeeded++
					m.log.Info("Saved product", "url", j.url, "worker", workerID)
				case product.IsSkip(err):
					summary.Skipped++
					m.log.Warn("Skipping page", "url", j.url, "reason", err)
				default:
					summary.Failed++
					m.log.Error("Error processing page", "url", j.url, "worker", workerID, "error", err)
				}
				done := summary.Succeeded + summary.Skipped + summary.Failed
				if done%100 == 0 {
					m.log.Info("Progress", "done", done, "total", len(urls))
				}
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()

	for _, p := range results {
		if p != nil {
			summary.Products = append(summary.Products, p)
		}
	}

	m.log.Info("Crawl completed",
		"succeeded", summary.Succeeded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"total", len(urls))

	if summary.Failed > 0 && summary.Succeeded == 0 && summary.Skipped == 0 {
		return summary, fmt.Errorf("all %d URLs failed to process", summary.Failed)
	}

	return summary, nil
}
