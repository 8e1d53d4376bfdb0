package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"sitemap-urls/pkg/httpclient"

	"golang.org/x/net/html/charset"
)

// Namespace is the sitemaps.org protocol namespace
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Result holds the locations extracted from one sitemap document
type Result struct {
	Source     string   // Address the sitemap was fetched from (empty for Parse)
	URLs       []string // loc values in document order, duplicates preserved
	Namespaced bool     // true when the namespaced query matched, false when the fallback was used
}

// Extractor fetches sitemaps and extracts their URL entries
type Extractor struct {
	client *httpclient.HTTPClient
	log    *slog.Logger
}

// NewExtractor creates a new sitemap extractor
func NewExtractor(client *httpclient.HTTPClient, log *slog.Logger) *Extractor {
	return &Extractor{
		client: client,
		log:    log.With(slog.String("component", "sitemap")),
	}
}

// Extract fetches the sitemap at sitemapURL and returns its url/loc entries.
// Fetch failures wrap ErrFetch, parse failures wrap ErrMalformed.
func (e *Extractor) Extract(ctx context.Context, sitemapURL string) (*Result, error) {
	log := e.log.With(slog.String("url", sitemapURL))
	log.Info("Fetching sitemap", slog.Duration("timeout", e.client.Timeout()))

	body, err := e.client.Fetch(ctx, sitemapURL)
	if err != nil {
		log.Error("Error fetching sitemap", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	result, err := Parse(bytes.NewReader(body))
	if err != nil {
		log.Error("Error parsing sitemap", slog.Any("error", err))
		return nil, err
	}
	result.Source = sitemapURL

	log.Info("Found URLs in sitemap",
		slog.Int("count", len(result.URLs)),
		slog.Bool("namespaced", result.Namespaced),
	)
	return result, nil
}

// Parse reads a sitemap document and collects the text of the first loc child
// of every url element below the root. Elements in the sitemap namespace are
// preferred; un-namespaced elements are used only when the namespaced query
// matches nothing.
func Parse(r io.Reader) (*Result, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	namespaced := newQuery(Namespace)
	plain := newQuery("")

	var (
		stack    []string
		rootSeen bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				if rootSeen {
					return nil, fmt.Errorf("%w: junk after document element <%s>", ErrMalformed, t.Name.Local)
				}
				rootSeen = true
			}
			namespaced.start(t.Name, len(stack))
			plain.start(t.Name, len(stack))
			stack = append(stack, t.Name.Local)

		case xml.EndElement:
			stack = stack[:len(stack)-1]
			namespaced.end(len(stack))
			plain.end(len(stack))

		case xml.CharData:
			namespaced.text(t)
			plain.text(t)
		}
	}

	if !rootSeen {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, errors.New("no root element"))
	}

	if urls := namespaced.locations(); len(urls) > 0 {
		return &Result{URLs: urls, Namespaced: true}, nil
	}
	return &Result{URLs: plain.locations()}, nil
}

// query tracks url/loc matches for one namespace during a single token pass.
// A slot is reserved when a url element opens so results keep the document
// order of url elements even when loc values complete out of that order.
type query struct {
	space string
	slots []string
	open  []urlFrame // url elements currently open, innermost last
	loc   *locFrame  // loc element currently being read, if any
}

type urlFrame struct {
	depth    int // stack depth of the url element itself
	slot     int
	locTaken bool
}

type locFrame struct {
	depth    int
	slot     int
	text     strings.Builder
	children bool // text after the first child element is not part of loc's text
}

func newQuery(space string) *query {
	return &query{space: space}
}

func (q *query) matches(name xml.Name, local string) bool {
	return name.Space == q.space && name.Local == local
}

// start handles a start element at the given depth (0 is the root).
func (q *query) start(name xml.Name, depth int) {
	if q.loc != nil {
		q.loc.children = true
	}

	if q.matches(name, "loc") && len(q.open) > 0 {
		parent := &q.open[len(q.open)-1]
		if parent.depth == depth-1 && !parent.locTaken && q.loc == nil {
			parent.locTaken = true
			q.loc = &locFrame{depth: depth, slot: parent.slot}
		}
	}

	// The root itself is never a url entry: matches start below it.
	if q.matches(name, "url") && depth > 0 {
		q.slots = append(q.slots, "")
		q.open = append(q.open, urlFrame{depth: depth, slot: len(q.slots) - 1})
	}
}

// end handles an end element; depth is the depth of the element being closed.
func (q *query) end(depth int) {
	if q.loc != nil && q.loc.depth == depth {
		q.slots[q.loc.slot] = strings.TrimSpace(q.loc.text.String())
		q.loc = nil
	}
	if n := len(q.open); n > 0 && q.open[n-1].depth == depth {
		q.open = q.open[:n-1]
	}
}

func (q *query) text(data xml.CharData) {
	if q.loc != nil && !q.loc.children {
		q.loc.text.Write(data)
	}
}

// locations returns the non-empty loc values in url order
func (q *query) locations() []string {
	urls := make([]string, 0, len(q.slots))
	for _, loc := range q.slots {
		if loc != "" {
			urls = append(urls, loc)
		}
	}
	return urls
}
