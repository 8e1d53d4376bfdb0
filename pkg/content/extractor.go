package content

import (
	"fmt"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/go-shiori/go-readability"
)

// MainContentHTML returns the readable main content of a page as HTML.
// When readability finds nothing usable the whole page is returned.
func MainContentHTML(htmlContent, pageURL string) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	article, err := readability.FromReader(strings.NewReader(htmlContent), parsedURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return htmlContent
	}
	return article.Content
}

// Markdown converts the main content of a page to Markdown
func Markdown(htmlContent, pageURL string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(MainContentHTML(htmlContent, pageURL))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
