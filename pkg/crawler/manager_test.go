package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sitemap-urls/pkg/httpclient"
	"sitemap-urls/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productPage(name string, price int) string {
	return fmt.Sprintf(`<html><body><main>
<div class="breadcrumbs"><a href="/">Domů</a> <a href="/pece/">Péče</a> <span class="breadcrumb_last">%s</span></div>
<div class="productContent"><p>Krém %s pro každý den.</p></div>
<b class="loadPrice">%d</b>
</main></body></html>`, name, name, price)
}

func newShop(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/produkt/a/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, productPage("Alfa", 120))
	})
	mux.HandleFunc("/produkt/b/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, productPage("Beta", 250))
	})
	mux.HandleFunc("/produkt/gone/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body><main><p>Tento produkt již se neprodává.</p></main></body></html>`)
	})
	mux.HandleFunc("/produkt/broken/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestManager(t *testing.T, workers int, markdown bool) (*Manager, *store.FileStore) {
	t.Helper()
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "pages"))
	client := httpclient.NewClientWithTimeout(httpclient.DefaultClient, 5*time.Second)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(workers, client, fs, markdown, log), fs
}

func TestProcessURLs(t *testing.T) {
	server := newShop(t)
	m, fs := newTestManager(t, 3, false)

	urls := []string{
		server.URL + "/produkt/b/",
		server.URL + "/produkt/gone/",
		server.URL + "/produkt/broken/",
		server.URL + "/produkt/a/",
	}

	summary, err := m.ProcessURLs(context.Background(), urls)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, summary.Products, 2)
	assert.Equal(t, urls[0], summary.Products[0].URL, "products keep input order")
	assert.Equal(t, urls[3], summary.Products[1].URL)
	assert.Equal(t, []string{"Péče", "Beta"}, summary.Products[0].Category)
	require.NotNil(t, summary.Products[1].Price)
	assert.Equal(t, 120.0, *summary.Products[1].Price)

	assert.True(t, fs.Has(urls[0]))
	assert.True(t, fs.Has(urls[3]))
	assert.False(t, fs.Has(urls[1]))
	assert.False(t, fs.Has(urls[2]))
}

func TestProcessURLs_Markdown(t *testing.T) {
	server := newShop(t)
	m, fs := newTestManager(t, 1, true)

	url := server.URL + "/produkt/a/"
	_, err := m.ProcessURLs(context.Background(), []string{url})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(fs.Dir(), store.FileName(url, ".md")))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alfa")
}

func TestProcessURLs_AllFailed(t *testing.T) {
	server := newShop(t)
	m, _ := newTestManager(t, 2, false)

	summary, err := m.ProcessURLs(context.Background(), []string{
		server.URL + "/produkt/broken/",
		server.URL + "/nothing-here",
	})
	require.Error(t, err)
	assert.Equal(t, 2, summary.Failed)
	assert.Empty(t, summary.Products)
}

func TestProcessURLs_Empty(t *testing.T) {
	m, _ := newTestManager(t, 0, false)
	assert.Equal(t, DefaultWorkers, m.workerCount)

	summary, err := m.ProcessURLs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, summary.Succeeded+summary.Skipped+summary.Failed)
}

func TestProcessURLs_Cancelled(t *testing.T) {
	server := newShop(t)
	m, _ := newTestManager(t, 1, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := m.ProcessURLs(ctx, []string{server.URL + "/produkt/a/"})
	require.Error(t, err)
	assert.Equal(t, 1, summary.Failed)
}
