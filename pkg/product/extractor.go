package product

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"sitemap-urls/pkg/domain"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNoMain is returned for pages without a <main> element
	ErrNoMain = errors.New("page has no main element")
	// ErrNotFound is returned when the shop renders its 404 page
	ErrNotFound = errors.New("404 error in main")
	// ErrDiscontinued is returned for products that are no longer sold
	ErrDiscontinued = errors.New("product no longer sold")
)

// IsSkip reports whether err means the page was deliberately not extracted
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoMain) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDiscontinued)
}

const discontinuedMarker = "již se neprodává"

var (
	volumePattern       = regexp.MustCompile(`(?i)Obsah:\s*(\d+(?:\.\d+)?)\s*ml`)
	purposePattern      = regexp.MustCompile(`^[A-ZÁČĎÉĚÍŇÓŘŠŤÚŮÝŽ\s–\-]+$`)
	leadingDashPattern  = regexp.MustCompile(`^[\s\-–]+`)
	suitableForPattern  = regexp.MustCompile(`(?i)^.*?vhodná pro:\s*`)
	skinTypePattern     = regexp.MustCompile(`(?i)^.*?typ pleti[:\s]*`)
	suitableForMPattern = regexp.MustCompile(`(?i)^.*?vhodný pro[:\s]*`)
	howToUsePattern     = regexp.MustCompile(`(?i)^.*?jak použít:\s*`)
	usagePattern        = regexp.MustCompile(`(?i)^.*?použití[:\s]*`)
)

// Paragraphs containing one of these belong to suitable_for / how_to_use, not the description
var fieldKeywords = []string{"Vhodná pro:", "Typ pleti", "VHODNÝ PRO", "Jak použít:"}

// ParsePage parses a product page and extracts the product from its <main> element.
// Pages that should not be recorded return an error for which IsSkip is true.
func ParsePage(r io.Reader, pageURL string) (*domain.Product, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	main := doc.Find("main").First()
	if main.Length() == 0 {
		return nil, ErrNoMain
	}

	text := main.Text()
	if strings.Contains(text, "404") {
		return nil, ErrNotFound
	}
	if strings.Contains(text, discontinuedMarker) {
		return nil, ErrDiscontinued
	}

	return Extract(main, pageURL), nil
}

// Extract reads the product fields out of a page's main element
func Extract(main *goquery.Selection, pageURL string) *domain.Product {
	p := &domain.Product{URL: pageURL}

	extractCategory(main, p)

	content := main.Find("div.productContent").First()
	if content.Length() > 0 {
		extractVolume(content, p)
		content.Find("p").Each(func(i int, s *goquery.Selection) {
			extractParagraph(s, p)
		})
	}

	extractIngredients(main, p)
	extractPrice(main, p)
	return p
}

// extractCategory builds the category path from breadcrumbs, skipping the shop's home link
func extractCategory(main *goquery.Selection, p *domain.Product) {
	breadcrumbs := main.Find("div.breadcrumbs").First()
	if breadcrumbs.Length() == 0 {
		return
	}

	var category []string
	breadcrumbs.Find("a").Each(func(i int, a *goquery.Selection) {
		if i > 0 {
			category = append(category, strings.TrimSpace(a.Text()))
		}
	})

	if last := breadcrumbs.Find("span.breadcrumb_last").First(); last.Length() > 0 {
		category = append(category, strings.TrimSpace(last.Text()))
	}

	if len(category) > 0 {
		p.Category = category
	}
}

func extractVolume(content *goquery.Selection, p *domain.Product) {
	m := volumePattern.FindStringSubmatch(content.Text())
	if m == nil {
		return
	}
	if v, err := strconv.ParseFloat(m[1], 64); err == nil {
		p.Volume = &v
	}
}

// extractParagraph assigns one productContent paragraph to the first field it belongs to
func extractParagraph(s *goquery.Selection, p *domain.Product) {
	text := strings.TrimSpace(s.Text())

	if strong := s.Find("strong").First(); strong.Length() > 0 && p.Purpose == nil {
		strongText := strings.TrimSpace(strong.Text())
		if purposePattern.MatchString(strongText) {
			p.Purpose = splitPurpose(strongText)
			if p.Description == "" {
				remaining := strings.TrimSpace(strings.ReplaceAll(text, strongText, ""))
				remaining = leadingDashPattern.ReplaceAllString(remaining, "")
				if remaining != "" {
					p.Description = remaining
				}
			}
			return
		}
	}

	if !containsAny(text, fieldKeywords) {
		p.Description += text
		return
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "vhodná pro:"):
		p.SuitableFor = strings.TrimSpace(suitableForPattern.ReplaceAllString(text, ""))
	case strings.Contains(lower, "typ pleti"):
		p.SuitableFor = strings.TrimSpace(skinTypePattern.ReplaceAllString(text, ""))
	case strings.Contains(lower, "vhodný pro"):
		p.SuitableFor = strings.TrimSpace(suitableForMPattern.ReplaceAllString(text, ""))
	case strings.Contains(lower, "jak použít:"):
		p.HowToUse = strings.TrimSpace(howToUsePattern.ReplaceAllString(text, ""))
	case strings.Contains(lower, "použití"):
		p.HowToUse = strings.TrimSpace(usagePattern.ReplaceAllString(text, ""))
	}
}

func splitPurpose(s string) []string {
	var purpose []string
	for _, part := range strings.Split(s, "–") {
		if part = strings.TrimSpace(part); part != "" {
			purpose = append(purpose, part)
		}
	}
	return purpose
}

func extractIngredients(main *goquery.Selection, p *domain.Product) {
	text := main.Find("div.ingrediences").First().Find("div.text-content").First()
	if text.Length() == 0 {
		return
	}
	ingredients := strings.TrimSpace(text.Text())
	if rest, ok := strings.CutPrefix(ingredients, "Ingredients:"); ok {
		ingredients = strings.TrimSpace(rest)
	}
	p.Ingredients = ingredients
}

func extractPrice(main *goquery.Selection, p *domain.Product) {
	price := main.Find("b.loadPrice").First()
	if price.Length() == 0 {
		return
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(price.Text()), 64); err == nil {
		p.Price = &v
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
