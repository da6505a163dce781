package fetchadapter

import (
	"context"
	"fmt"
	"strings"
)

// FakeFetcher is a deterministic in-memory stand-in for the real fetcher.
// Fixtures maps a URL (or URL substring) to canned page text; unmatched
// URLs synthesize plausible body text so extraction always has something
// to chew on in tests and local runs.
type FakeFetcher struct {
	Fixtures map[string]Extracted
	// Failing marks URLs (or substrings) that should report fetchSuccess=false.
	Failing map[string]bool
}

func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{Fixtures: map[string]Extracted{}, Failing: map[string]bool{}}
}

func (f *FakeFetcher) ExtractTextFromURL(ctx context.Context, url string, opts Options) (Extracted, error) {
	for key := range f.Failing {
		if strings.Contains(url, key) {
			return Extracted{}, fmt.Errorf("fetchadapter: simulated fetch failure for %s", url)
		}
	}
	for key, ex := range f.Fixtures {
		if strings.Contains(url, key) {
			return ex, nil
		}
	}
	return Extracted{
		Text:        fmt.Sprintf("Synthetic article body retrieved from %s. It discusses the topic at length with supporting detail and attributed claims.", url),
		Title:       "Synthetic source: " + url,
		ContentType: "text/html",
	}, nil
}
