package schema

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/util/jsonutil"
)

// ClaimVerdictOut is the shared per-claim payload across all three verdict
// modes (§4.7).
type ClaimVerdictOut struct {
	ClaimID            string `json:"claimId"`
	Verdict            flexNumber `json:"verdict"`
	Confidence         flexNumber `json:"confidence"`
	Reasoning          string `json:"reasoning"`
	RatingConfirmation string `json:"ratingConfirmation,omitempty"`
	SupportingEvidenceIDs []string `json:"supportingEvidenceIds,omitempty"`
}

// flexNumber holds a numeric field that may arrive as a JSON number or as a
// string such as "72" or "85%"; IntVerdict/IntConfidence coerce it.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	*n = flexNumber(s)
	return nil
}

// IntVerdict coerces the possibly-string numeric verdict field (§4.7
// Robustness: "Coerce string numerics").
func (c ClaimVerdictOut) IntVerdict() int { return coerceIntPercent(string(c.Verdict)) }
func (c ClaimVerdictOut) IntConfidence() int { return coerceIntPercent(string(c.Confidence)) }

func coerceIntPercent(s string) int {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 50
		}
		n = int(f)
	}
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n
}

// SingleContextVerdict is the SingleContext mode output (§4.7).
type SingleContextVerdict struct {
	VerdictSummary string            `json:"verdictSummary"`
	ClaimVerdicts  []ClaimVerdictOut `json:"claimVerdicts"`
}

// MultiContextVerdict is the MultiContext mode output.
type MultiContextVerdict struct {
	VerdictSummary         string                  `json:"verdictSummary"`
	AnalysisContextAnswers []ContextAnswerOut      `json:"analysisContextAnswers"`
	AnalysisContextSummary string                  `json:"analysisContextSummary,omitempty"`
	ClaimVerdicts          []ClaimVerdictOut        `json:"claimVerdicts"`
}

type ContextAnswerOut struct {
	ContextID string `json:"contextId"`
	Answer    json.Number `json:"answer"`
	Summary   string `json:"summary,omitempty"`
}

// ArticleVerdict is the Article mode output.
type ArticleVerdict struct {
	ClaimVerdicts   []ClaimVerdictOut  `json:"claimVerdicts"`
	ArticleAnalysis ArticleAnalysisOut `json:"articleAnalysis"`
}

type ArticleAnalysisOut struct {
	ThesisSupported                bool     `json:"thesisSupported"`
	LogicalFallacies                []string `json:"logicalFallacies,omitempty"`
	ArticleVerdict                   json.Number `json:"articleVerdict"`
	VerdictDiffersFromClaimAverage   bool     `json:"verdictDiffersFromClaimAverage"`
	VerdictDifferenceReason          string   `json:"verdictDifferenceReason,omitempty"`
}

type SingleContextVerdictSchema struct{}

func (SingleContextVerdictSchema) ParseStrict(data []byte) (any, error) {
	var v SingleContextVerdict
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if len(v.ClaimVerdicts) == 0 {
		return nil, errEmptyRequired
	}
	return v, nil
}
func (SingleContextVerdictSchema) ParseLenient(data []byte) (any, error) {
	var v SingleContextVerdict
	if err := jsonutil.UnmarshalFlex(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

type MultiContextVerdictSchema struct{}

func (MultiContextVerdictSchema) ParseStrict(data []byte) (any, error) {
	var v MultiContextVerdict
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if len(v.ClaimVerdicts) == 0 {
		return nil, errEmptyRequired
	}
	return v, nil
}
func (MultiContextVerdictSchema) ParseLenient(data []byte) (any, error) {
	var v MultiContextVerdict
	if err := jsonutil.UnmarshalFlex(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

type ArticleVerdictSchema struct{}

func (ArticleVerdictSchema) ParseStrict(data []byte) (any, error) {
	var v ArticleVerdict
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if len(v.ClaimVerdicts) == 0 {
		return nil, errEmptyRequired
	}
	return v, nil
}
func (ArticleVerdictSchema) ParseLenient(data []byte) (any, error) {
	var v ArticleVerdict
	if err := jsonutil.UnmarshalFlex(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
