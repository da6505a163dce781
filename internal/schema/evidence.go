package schema

import (
	"encoding/json"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/util/jsonutil"
)

// EvidenceExtraction is the per-source extraction output contract (§4.5).
type EvidenceExtraction struct {
	Items []EvidenceOut `json:"items" prompt_type:"[]Evidence" prompt_desc:"Evidence items found in this source relevant to the claims under evaluation."`
}

type EvidenceOut struct {
	Statement       string            `json:"statement" prompt_type:"string" prompt_desc:"The factual statement extracted from the source."`
	Category        string            `json:"category,omitempty" prompt_type:"string" prompt_desc:"Topic category."`
	Specificity     string            `json:"specificity,omitempty" prompt_type:"string" prompt_desc:"'high' or 'medium'; never 'low'."`
	SourceExcerpt   string            `json:"sourceExcerpt" prompt_type:"string" prompt_desc:"Verbatim excerpt, at least 20 characters."`
	ContextName     string            `json:"contextName,omitempty"`
	ClaimDirection  string            `json:"claimDirection,omitempty" prompt_type:"string" prompt_desc:"'supports', 'contradicts', or 'neutral' relative to the user's claim."`
	SourceAuthority string            `json:"sourceAuthority,omitempty"`
	EvidenceBasis   string            `json:"evidenceBasis,omitempty"`
	ProbativeValue  string            `json:"probativeValue,omitempty"`
	EvidenceScope   *EvidenceScopeOut `json:"evidenceScope,omitempty"`
	IsContestedClaim bool             `json:"isContestedClaim,omitempty"`
}

type EvidenceScopeOut struct {
	Name        string `json:"name,omitempty"`
	Methodology string `json:"methodology,omitempty"`
	Boundaries  string `json:"boundaries,omitempty"`
	Geographic  string `json:"geographic,omitempty"`
	Temporal    string `json:"temporal,omitempty"`
	SourceType  string `json:"sourceType,omitempty"`
}

type EvidenceExtractionSchema struct{}

func (EvidenceExtractionSchema) ParseStrict(data []byte) (any, error) {
	var e EvidenceExtraction
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func (EvidenceExtractionSchema) ParseLenient(data []byte) (any, error) {
	var e EvidenceExtraction
	if err := jsonutil.UnmarshalFlex(data, &e); err != nil {
		return nil, err
	}
	return e, nil
}

// ToDomain converts one extracted item into a (mostly unassigned) EvidenceItem.
// IDs, sourceId/URL/title, and contextId resolution are filled in by the
// evidence engine, which has the FetchedSource and context-name index.
func (e EvidenceOut) ToDomain() domain.EvidenceItem {
	item := domain.EvidenceItem{
		Statement:        e.Statement,
		SourceExcerpt:    e.SourceExcerpt,
		Category:         e.Category,
		Specificity:      domain.Specificity(orDefault(e.Specificity, string(domain.SpecificityMedium))),
		ClaimDirection:   domain.ClaimDirection(orDefault(e.ClaimDirection, string(domain.DirectionNeutral))),
		SourceAuthority:  domain.SourceAuthority(orDefault(e.SourceAuthority, string(domain.AuthoritySecondary))),
		EvidenceBasis:    domain.EvidenceBasis(orDefault(e.EvidenceBasis, string(domain.BasisAnecdotal))),
		ProbativeValue:   domain.ProbativeValue(orDefault(e.ProbativeValue, string(domain.ProbativeMedium))),
		IsContestedClaim: e.IsContestedClaim,
	}
	if e.EvidenceScope != nil {
		item.EvidenceScope = &domain.EvidenceScope{
			Name:        e.EvidenceScope.Name,
			Methodology: e.EvidenceScope.Methodology,
			Boundaries:  e.EvidenceScope.Boundaries,
			Geographic:  e.EvidenceScope.Geographic,
			Temporal:    e.EvidenceScope.Temporal,
			SourceType:  e.EvidenceScope.SourceType,
		}
	}
	return item
}
