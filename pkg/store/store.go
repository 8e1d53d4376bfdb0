package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"sitemap-urls/pkg/domain"
)

var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_\-.]`)

// FileName derives a file name from a page URL: scheme dropped, everything
// except letters, digits, '_', '-' and '.' replaced with '_'.
func FileName(pageURL, suffix string) string {
	if i := strings.LastIndex(pageURL, "//"); i >= 0 {
		pageURL = pageURL[i+2:]
	}
	return unsafeChars.ReplaceAllString(pageURL, "_") + suffix
}

// FileStore writes crawl output into a directory, one file per page
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory the store writes to
func (s *FileStore) Dir() string {
	return s.dir
}

// SaveProduct writes the product as indented JSON to <name>.json
func (s *FileStore) SaveProduct(p *domain.Product) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode product %s: %w", p.URL, err)
	}
	return s.write(FileName(p.URL, ".json"), buf.Bytes())
}

// SaveMarkdown writes a page's Markdown rendition to <name>.md
func (s *FileStore) SaveMarkdown(pageURL, markdown string) error {
	return s.write(FileName(pageURL, ".md"), []byte(markdown))
}

// Has reports whether a product record for pageURL already exists
func (s *FileStore) Has(pageURL string) bool {
	_, err := os.Stat(filepath.Join(s.dir, FileName(pageURL, ".json")))
	return err == nil
}

func (s *FileStore) write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

var csvHeader = []string{"", "url", "category", "volume", "purpose", "description", "suitable_for", "how_to_use", "ingredients", "price"}

// WriteCSV writes one row per product with a leading row index.
// List columns are JSON arrays; absent values are empty cells.
func WriteCSV(path string, products []*domain.Product) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, p := range products {
		row := []string{
			strconv.Itoa(i),
			p.URL,
			jsonList(p.Category),
			formatFloat(p.Volume),
			jsonList(p.Purpose),
			p.Description,
			p.SuitableFor,
			p.HowToUse,
			p.Ingredients,
			formatFloat(p.Price),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", p.URL, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV %s: %w", path, err)
	}
	return f.Close()
}

func jsonList(values []string) string {
	if values == nil {
		return ""
	}
	data, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(data)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
