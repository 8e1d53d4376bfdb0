package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenSet map[string]bool

func (s seenSet) Has(url string) bool { return s[url] }

type failingFilter struct{}

func (failingFilter) ShouldKeep(ctx context.Context, url string) (bool, error) {
	return false, errors.New("boom")
}

func TestFilterURLs(t *testing.T) {
	urls := []string{
		"https://example.com/",
		"",
		"https://example.com/produkt/a/",
		"https://example.com/blog/post/",
		"https://example.com/produkt/b/",
		"https://example.com/produkt/c/",
	}

	got, err := FilterURLs(context.Background(), urls,
		NewBaseURLFilter(),
		NewContainsPathFilter("/produkt/"),
		NewAlreadyFetchedFilter(seenSet{"https://example.com/produkt/b/": true}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/produkt/a/",
		"https://example.com/produkt/c/",
	}, got)
}

func TestFilterURLs_NoFilters(t *testing.T) {
	got, err := FilterURLs(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFilterURLs_Error(t *testing.T) {
	_, err := FilterURLs(context.Background(), []string{"https://example.com/x"}, failingFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://example.com/x")
}

func TestBaseURLFilter(t *testing.T) {
	f := NewBaseURLFilter()
	ctx := context.Background()

	for url, want := range map[string]bool{
		"https://example.com":          false,
		"https://example.com/":         false,
		"   ":                          false,
		"https://example.com/produkt/": true,
		"%%%not-a-url":                 true,
	} {
		keep, err := f.ShouldKeep(ctx, url)
		require.NoError(t, err)
		assert.Equal(t, want, keep, url)
	}
}

func TestWindow(t *testing.T) {
	urls := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, urls, Window(urls, 0, 0))
	assert.Equal(t, []string{"b", "c"}, Window(urls, 1, 2))
	assert.Equal(t, []string{"d", "e"}, Window(urls, 3, 100))
	assert.Equal(t, []string{}, Window(urls, 10, 1))
	assert.Equal(t, []string{"a"}, Window(urls, -1, 1))
}
