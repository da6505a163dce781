package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeLowercasesAndSplitsOnPunctuation(t *testing.T) {
	assert.Equal(t, []string{"the", "city", "council", "banned", "plastic", "bags"}, Tokenize("The city-council banned plastic, bags!"))
}

func TestTokenizeKeepsDigits(t *testing.T) {
	assert.Equal(t, []string{"covid", "19", "cases", "rose", "in", "2021"}, Tokenize("COVID-19 cases rose in 2021"))
}

func TestMeaningfulTokensDropsStopwordsAndShortWords(t *testing.T) {
	got := MeaningfulTokens("the city council was responsible for it")
	assert.Equal(t, []string{"city", "council", "responsible"}, got)
}

func TestJaccardIdenticalStringsIsOne(t *testing.T) {
	assert.Equal(t, 1.0, Jaccard("the sky is blue", "the sky is blue"))
}

func TestJaccardDisjointStringsIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard("apples and oranges", "trucks or roads"))
}

func TestJaccardBothEmptyIsOne(t *testing.T) {
	assert.Equal(t, 1.0, Jaccard("", ""))
}

func TestJaccardPartialOverlap(t *testing.T) {
	got := Jaccard("the quick brown fox", "the quick red fox")
	assert.InDelta(t, 3.0/5.0, got, 1e-9)
}

func TestOverlapCountCountsSharedMeaningfulTokens(t *testing.T) {
	got := OverlapCount("the city council approved the budget", "council budget approval delayed")
	assert.Equal(t, 2, got)
}

func TestFindPositionCaseInsensitive(t *testing.T) {
	assert.Equal(t, 4, FindPosition("The Budget was approved", "budget"))
}

func TestFindPositionNotFound(t *testing.T) {
	assert.Equal(t, -1, FindPosition("The budget was approved", "deficit"))
}

func TestFindPositionEmptyNeedle(t *testing.T) {
	assert.Equal(t, -1, FindPosition("anything", ""))
}
