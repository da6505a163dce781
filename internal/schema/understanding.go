// Package schema defines the wire contracts for every structured LLM call
// (§4.2 capability 1, §9 "dynamic LLM JSON shapes"): one struct per call,
// decoded strictly by ParseStrict and, on the salvage path, by ParseLenient
// through jsonutil.UnmarshalFlex; safe enum defaults are applied later by
// the ToDomain conversions. Grounded on insightify/internal/artifact's tagged
// structs, whose prompt_desc tags feed llmtool.FieldsFromStruct the same
// way here.
package schema

import (
	"encoding/json"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/util/jsonutil"
)

// Understanding is the strict Understand-phase output contract.
type Understanding struct {
	DetectedInputType       string              `json:"detectedInputType" prompt_type:"string" prompt_desc:"'claim' or 'article'."`
	ImpliedClaim            string              `json:"impliedClaim" prompt_type:"string" prompt_desc:"Restate the input as a neutral declarative statement."`
	MainThesis               string             `json:"mainThesis" prompt_type:"string" prompt_desc:"The central assertion being evaluated."`
	ArticleThesis            string             `json:"articleThesis,omitempty" prompt_type:"string" prompt_desc:"For articles: the thesis the article argues for."`
	BackgroundDetails        string             `json:"backgroundDetails,omitempty" prompt_type:"string" prompt_desc:"Relevant background, if any."`
	AnalysisContexts         []ContextOut        `json:"analysisContexts" prompt_type:"[]AnalysisContext" prompt_desc:"Distinct analytical frames requiring separate verdicts."`
	RequiresSeparateAnalysis bool               `json:"requiresSeparateAnalysis" prompt_type:"bool" prompt_desc:"True iff len(analysisContexts) > 1."`
	SubClaims                []SubClaimOut      `json:"subClaims" prompt_type:"[]SubClaim" prompt_desc:"3-8 atomic, independently verifiable claims."`
	KeyFactors               []KeyFactorOut     `json:"keyFactors,omitempty" prompt_type:"[]KeyFactor" prompt_desc:"Emergent evaluation dimensions, if any."`
	ResearchQueries          []string           `json:"researchQueries,omitempty" prompt_type:"[]string" prompt_desc:"Suggested search queries."`
	RiskTier                 string             `json:"riskTier" prompt_type:"string" prompt_desc:"'A', 'B', or 'C'."`
	TemporalContext          *TemporalContextOut `json:"temporalContext,omitempty" prompt_type:"TemporalContext" prompt_desc:"Recency assessment, if relevant."`
}

type ContextOut struct {
	Name              string            `json:"name"`
	ShortName         string            `json:"shortName,omitempty"`
	Subject           string            `json:"subject,omitempty"`
	AssessedStatement string            `json:"assessedStatement,omitempty"`
	Status            string            `json:"status,omitempty"`
	Outcome           string            `json:"outcome,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

type SubClaimOut struct {
	Text                      string   `json:"text"`
	Type                      string   `json:"type,omitempty"`
	ClaimRole                 string   `json:"claimRole,omitempty"`
	DependsOn                 []string `json:"dependsOn,omitempty"`
	CheckWorthiness           string   `json:"checkWorthiness,omitempty"`
	HarmPotential             string   `json:"harmPotential,omitempty"`
	Centrality                string   `json:"centrality,omitempty"`
	ThesisRelevance           string   `json:"thesisRelevance,omitempty"`
	ThesisRelevanceConfidence int      `json:"thesisRelevanceConfidence,omitempty"`
	IsCounterClaim            bool     `json:"isCounterClaim,omitempty"`
	ContextName               string   `json:"contextName,omitempty"`
}

type KeyFactorOut struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	FactualBasis string `json:"factualBasis,omitempty"`
	ContextName  string `json:"contextName,omitempty"`
}

type TemporalContextOut struct {
	IsRecencySensitive bool    `json:"isRecencySensitive"`
	Confidence         float64 `json:"confidence"`
	Notes              string  `json:"notes,omitempty"`
}

// UnderstandingSchema implements llmgateway.Validator for Understanding.
type UnderstandingSchema struct{}

func (UnderstandingSchema) ParseStrict(data []byte) (any, error) {
	var u Understanding
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	if len(u.SubClaims) == 0 || u.ImpliedClaim == "" {
		return nil, errEmptyRequired
	}
	return u, nil
}

func (UnderstandingSchema) ParseLenient(data []byte) (any, error) {
	var u Understanding
	if err := jsonutil.UnmarshalFlex(data, &u); err != nil {
		return nil, err
	}
	return u, nil
}

// ToDomain converts a parsed Understanding into the domain model. Context
// and key-factor names are resolved to stable IDs by the context engine
// (C4), not here: the schema layer stays a pure wire-format translator.
func (u Understanding) ToDomain() domain.ClaimUnderstanding {
	out := domain.ClaimUnderstanding{
		DetectedInputType: domain.DetectedInputType(orDefault(u.DetectedInputType, string(domain.DetectedClaim))),
		ImpliedClaim:      u.ImpliedClaim,
		MainThesis:        u.MainThesis,
		ArticleThesis:     u.ArticleThesis,
		BackgroundDetails: u.BackgroundDetails,
		RequiresSeparateAnalysis: u.RequiresSeparateAnalysis,
		RiskTier:          domain.RiskTier(orDefault(u.RiskTier, string(domain.RiskB))),
		ResearchQueries:   u.ResearchQueries,
	}
	for _, c := range u.AnalysisContexts {
		out.AnalysisContexts = append(out.AnalysisContexts, domain.AnalysisContext{
			Name:              c.Name,
			ShortName:         c.ShortName,
			Subject:           c.Subject,
			AssessedStatement: c.AssessedStatement,
			Status:            domain.ContextStatus(orDefault(c.Status, string(domain.ContextUnknown))),
			Outcome:           c.Outcome,
			Metadata:          c.Metadata,
		})
	}
	for _, sc := range u.SubClaims {
		out.SubClaims = append(out.SubClaims, sc.ToDomain())
	}
	for _, kf := range u.KeyFactors {
		out.KeyFactors = append(out.KeyFactors, domain.KeyFactor{
			Name:         kf.Name,
			Description:  kf.Description,
			FactualBasis: orDefault(kf.FactualBasis, "unknown"),
		})
	}
	if u.TemporalContext != nil {
		out.TemporalContext = &domain.TemporalContext{
			IsRecencySensitive: u.TemporalContext.IsRecencySensitive,
			Confidence:         u.TemporalContext.Confidence,
			Notes:              u.TemporalContext.Notes,
		}
	}
	return out
}

// ToDomain converts a wire-format sub-claim into the domain model, applying
// the same enum-default rules as the Understand-phase conversion so
// supplemental-backfill claims land with consistent semantics.
func (sc SubClaimOut) ToDomain() domain.SubClaim {
	return subClaimFromOut(sc)
}

func subClaimFromOut(sc SubClaimOut) domain.SubClaim {
	centrality := domain.Level(orDefault(sc.Centrality, string(domain.LevelMedium)))
	return domain.SubClaim{
		Text:                      sc.Text,
		Type:                      domain.ClaimType(orDefault(sc.Type, string(domain.ClaimFactual))),
		ClaimRole:                 domain.ClaimRole(orDefault(sc.ClaimRole, string(domain.RoleUnknown))),
		DependsOn:                 sc.DependsOn,
		CheckWorthiness:           domain.Level(orDefault(sc.CheckWorthiness, string(domain.LevelMedium))),
		HarmPotential:             domain.Level(orDefault(sc.HarmPotential, string(domain.LevelMedium))),
		Centrality:                centrality,
		IsCentral:                 centrality == domain.LevelHigh,
		ThesisRelevance:           domain.ThesisRelevance(orDefault(sc.ThesisRelevance, string(domain.RelevanceDirect))),
		ThesisRelevanceConfidence: sc.ThesisRelevanceConfidence,
		IsCounterClaim:            sc.IsCounterClaim,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
