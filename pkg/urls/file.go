package urls

import (
	"fmt"
	"os"
	"strings"
)

// DefaultFile is where extracted sitemap URLs are written unless configured otherwise
const DefaultFile = "product_urls.txt"

// Join renders URLs one per line, without a trailing newline
func Join(urls []string) string {
	return strings.Join(urls, "\n")
}

// Split is the inverse of Join. Empty content yields an empty list.
func Split(content string) []string {
	if content == "" {
		return []string{}
	}
	return strings.Split(content, "\n")
}

// WriteFile creates or truncates path and writes the URLs one per line
func WriteFile(path string, urls []string) error {
	if err := os.WriteFile(path, []byte(Join(urls)), 0o644); err != nil {
		return fmt.Errorf("failed to write URL file %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a file written by WriteFile back into a list of URLs
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return Split(string(data)), nil
}
