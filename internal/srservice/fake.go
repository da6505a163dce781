package srservice

import (
	"context"
	"hash/fnv"
	"strings"
)

// FakeBackend is a deterministic stand-in for the real scoring backend
// (§1 "external collaborators, specified only by interface"): known
// high-authority domains score high, known low-authority ones score low,
// everything else derives a stable pseudo-score from the URL so repeated
// runs over the same evidence are reproducible (needed for deterministic
// mode, §9).
type FakeBackend struct {
	Overrides map[string]float64
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Overrides: map[string]float64{
			"reuters.com":    0.92,
			"apnews.com":     0.92,
			"nature.com":     0.95,
			"wikipedia.org":  0.75,
			"blogspot.com":   0.25,
			"medium.com":     0.4,
		},
	}
}

func (f *FakeBackend) Score(ctx context.Context, url string) (*float64, float64, error) {
	host := hostOf(url)
	for domain, score := range f.Overrides {
		if strings.Contains(host, domain) {
			v := score
			return &v, 0.8, nil
		}
	}
	v := stableScore(host)
	return &v, 0.3, nil
}

func hostOf(url string) string {
	u := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	if i := strings.IndexAny(u, "/?#"); i >= 0 {
		u = u[:i]
	}
	return strings.ToLower(u)
}

func stableScore(host string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	return 0.4 + float64(h.Sum32()%41)/100 // 0.40..0.80
}
