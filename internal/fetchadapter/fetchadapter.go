// Package fetchadapter is the external URL-fetch/extract contract (§6
// "Fetcher contract"): out of scope per §1 ("Web search providers and URL
// fetching/extraction"), specified here only as the interface the research
// controller needs plus a deterministic fake.
package fetchadapter

import (
	"context"
	"time"
)

// Extracted is one fetched-and-parsed page.
type Extracted struct {
	Text        string
	Title       string
	ContentType string
}

// Options controls a single fetch.
type Options struct {
	Timeout          time.Duration
	PDFParseTimeout  time.Duration
}

// Fetcher is the external page-retrieval collaborator (§6).
type Fetcher interface {
	ExtractTextFromURL(ctx context.Context, url string, opts Options) (Extracted, error)
}
