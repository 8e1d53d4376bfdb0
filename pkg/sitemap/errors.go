package sitemap

import "errors"

// ErrExtract is the single failure kind of the extractor: every error
// returned by Extract and Parse matches it with errors.Is.
var ErrExtract = errors.New("sitemap extraction failed")

var (
	// ErrFetch covers network errors, timeouts and non-2xx statuses.
	ErrFetch = &kindError{msg: "failed to fetch sitemap"}

	// ErrMalformed covers XML that cannot be parsed as a document.
	ErrMalformed = &kindError{msg: "malformed sitemap XML"}
)

type kindError struct {
	msg string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == ErrExtract }
