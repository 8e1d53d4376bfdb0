package filter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Filter defines the interface for URL filtering
type Filter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// FilterURLs applies all filters to a list of URLs
func FilterURLs(ctx context.Context, urls []string, filters ...Filter) ([]string, error) {
	filtered := make([]string, 0, len(urls))

	for _, urlStr := range urls {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, urlStr)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", urlStr, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, urlStr)
		}
	}

	return filtered, nil
}

// Window returns urls[offset:offset+limit], clamped to the list.
// A limit <= 0 means no limit.
func Window(urls []string, offset, limit int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(urls) {
		return []string{}
	}
	end := len(urls)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return urls[offset:end]
}

// BaseURLFilter filters out base/root URLs and blank lines
type BaseURLFilter struct{}

// NewBaseURLFilter creates a new base URL filter
func NewBaseURLFilter() *BaseURLFilter {
	return &BaseURLFilter{}
}

// ShouldKeep returns false if URL is a base/root URL
func (f *BaseURLFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	if strings.TrimSpace(urlStr) == "" {
		return false, nil
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		// Unparsable URLs are kept and fail at fetch time
		return true, nil
	}

	path := strings.Trim(parsed.Path, "/")
	return path != "", nil
}

// ContainsPathFilter keeps only URLs that contain a specific path segment
type ContainsPathFilter struct {
	pathSegment string // e.g. "/produkt/"
}

// NewContainsPathFilter creates a new path filter that keeps URLs containing the specified path segment
func NewContainsPathFilter(pathSegment string) *ContainsPathFilter {
	return &ContainsPathFilter{
		pathSegment: pathSegment,
	}
}

// ShouldKeep returns true if URL contains the specified path segment
func (f *ContainsPathFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return strings.Contains(urlStr, f.pathSegment), nil
}

// Seen reports whether a URL has already been processed
type Seen interface {
	Has(url string) bool
}

// AlreadyFetchedFilter filters out URLs that were already processed
type AlreadyFetchedFilter struct {
	seen Seen
}

// NewAlreadyFetchedFilter creates a new already-fetched filter
func NewAlreadyFetchedFilter(seen Seen) *AlreadyFetchedFilter {
	return &AlreadyFetchedFilter{
		seen: seen,
	}
}

// ShouldKeep returns false if URL was already processed
func (f *AlreadyFetchedFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return !f.seen.Has(urlStr), nil
}
