package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURLForDedupStripsWWWAndFragment(t *testing.T) {
	got := NormalizeURLForDedup("https://WWW.Example.com/Path#section")
	assert.Equal(t, "https://example.com/Path", got)
}

func TestNormalizeURLForDedupDropsTrackingParams(t *testing.T) {
	got := NormalizeURLForDedup("https://example.com/a?utm_source=x&ref=y&id=7")
	assert.Equal(t, "https://example.com/a?id=7", got)
}

func TestNormalizeURLForDedupSameURLDifferentTrackingMatches(t *testing.T) {
	a := NormalizeURLForDedup("https://example.com/a?utm_campaign=spring")
	b := NormalizeURLForDedup("https://www.example.com/a?utm_campaign=fall")
	assert.Equal(t, a, b)
}
