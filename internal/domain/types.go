// Package domain holds the shared claim-verification data model consumed
// across every pipeline stage, the way insightify/internal/artifact holds
// the shared milestone structs consumed by the mainline phases.
package domain

// InputType is the kind of input the orchestrator was given.
type InputType string

const (
	InputText InputType = "text"
	InputURL  InputType = "url"
)

// DetectedInputType distinguishes a bare claim from a longer article.
type DetectedInputType string

const (
	DetectedClaim   DetectedInputType = "claim"
	DetectedArticle DetectedInputType = "article"
)

type ContextStatus string

const (
	ContextConcluded ContextStatus = "concluded"
	ContextOngoing   ContextStatus = "ongoing"
	ContextPending   ContextStatus = "pending"
	ContextUnknown   ContextStatus = "unknown"
)

type ClaimType string

const (
	ClaimLegal       ClaimType = "legal"
	ClaimProcedural  ClaimType = "procedural"
	ClaimFactual     ClaimType = "factual"
	ClaimEvaluative  ClaimType = "evaluative"
)

type ClaimRole string

const (
	RoleAttribution ClaimRole = "attribution"
	RoleSource      ClaimRole = "source"
	RoleTiming      ClaimRole = "timing"
	RoleCore        ClaimRole = "core"
	RoleUnknown     ClaimRole = "unknown"
)

type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

type ThesisRelevance string

const (
	RelevanceDirect     ThesisRelevance = "direct"
	RelevanceTangential ThesisRelevance = "tangential"
	RelevanceIrrelevant ThesisRelevance = "irrelevant"
)

type RiskTier string

const (
	RiskA RiskTier = "A"
	RiskB RiskTier = "B"
	RiskC RiskTier = "C"
)

type ClaimDirection string

const (
	DirectionSupports    ClaimDirection = "supports"
	DirectionContradicts ClaimDirection = "contradicts"
	DirectionNeutral     ClaimDirection = "neutral"
)

type Specificity string

const (
	SpecificityHigh   Specificity = "high"
	SpecificityMedium Specificity = "medium"
	SpecificityLow    Specificity = "low"
)

type SourceAuthority string

const (
	AuthorityPrimary   SourceAuthority = "primary"
	AuthoritySecondary SourceAuthority = "secondary"
	AuthorityOpinion   SourceAuthority = "opinion"
	AuthorityContested SourceAuthority = "contested"
)

type EvidenceBasis string

const (
	BasisScientific    EvidenceBasis = "scientific"
	BasisDocumented    EvidenceBasis = "documented"
	BasisAnecdotal     EvidenceBasis = "anecdotal"
	BasisTheoretical   EvidenceBasis = "theoretical"
	BasisPseudoscience EvidenceBasis = "pseudoscientific"
)

type ProbativeValue string

const (
	ProbativeHigh   ProbativeValue = "high"
	ProbativeMedium ProbativeValue = "medium"
	ProbativeLow    ProbativeValue = "low"
)

type HighlightColor string

const (
	HighlightGreen  HighlightColor = "green"
	HighlightYellow HighlightColor = "yellow"
	HighlightRed    HighlightColor = "red"
)

type RatingConfirmation string

const (
	RatingSupported RatingConfirmation = "claim_supported"
	RatingRefuted   RatingConfirmation = "claim_refuted"
	RatingMixed     RatingConfirmation = "mixed"
)

type ConfidenceTier string

const (
	TierHigh         ConfidenceTier = "HIGH"
	TierMedium       ConfidenceTier = "MEDIUM"
	TierLow          ConfidenceTier = "LOW"
	TierInsufficient ConfidenceTier = "INSUFFICIENT"
)

// EvidenceScope documents the analytical frame of a single piece of evidence.
// It is NOT a context: two evidence items with different scopes are not
// directly comparable even inside the same AnalysisContext.
type EvidenceScope struct {
	Name        string `json:"name,omitempty"`
	Methodology string `json:"methodology,omitempty"`
	Boundaries  string `json:"boundaries,omitempty"`
	Geographic  string `json:"geographic,omitempty"`
	Temporal    string `json:"temporal,omitempty"`
	SourceType  string `json:"sourceType,omitempty"`
}

// AnalysisContext is a bounded analytical frame requiring its own verdict.
type AnalysisContext struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	ShortName         string            `json:"shortName"`
	Subject           string            `json:"subject"`
	AssessedStatement string            `json:"assessedStatement"`
	Status            ContextStatus     `json:"status"`
	Outcome           string            `json:"outcome"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// SubClaim is one atomic, independently verifiable assertion.
type SubClaim struct {
	ID                        string          `json:"id"`
	Text                      string          `json:"text"`
	Type                      ClaimType       `json:"type"`
	ClaimRole                 ClaimRole       `json:"claimRole"`
	DependsOn                 []string        `json:"dependsOn,omitempty"`
	CheckWorthiness           Level           `json:"checkWorthiness"`
	HarmPotential             Level           `json:"harmPotential"`
	Centrality                Level           `json:"centrality"`
	IsCentral                 bool            `json:"isCentral"`
	ThesisRelevance           ThesisRelevance `json:"thesisRelevance"`
	ThesisRelevanceConfidence int             `json:"thesisRelevanceConfidence"`
	IsCounterClaim            bool            `json:"isCounterClaim"`
	ContextID                 string          `json:"contextId,omitempty"`
	KeyFactorID               string          `json:"keyFactorId,omitempty"`
}

// EvidenceItem is one extracted fact tied back to a fetched source.
type EvidenceItem struct {
	ID               string          `json:"id"`
	Statement        string          `json:"statement"`
	SourceExcerpt    string          `json:"sourceExcerpt"`
	Category         string          `json:"category"`
	Specificity      Specificity     `json:"specificity"`
	SourceID         string          `json:"sourceId"`
	SourceURL        string          `json:"sourceUrl"`
	SourceTitle      string          `json:"sourceTitle"`
	ContextID        string          `json:"contextId,omitempty"`
	ClaimDirection   ClaimDirection  `json:"claimDirection"`
	SourceAuthority  SourceAuthority `json:"sourceAuthority"`
	EvidenceBasis    EvidenceBasis   `json:"evidenceBasis"`
	ProbativeValue   ProbativeValue  `json:"probativeValue"`
	EvidenceScope    *EvidenceScope  `json:"evidenceScope,omitempty"`
	IsContestedClaim bool            `json:"isContestedClaim"`
	ClaimSource      string          `json:"claimSource,omitempty"`
	FromOppositeClaimSearch bool     `json:"fromOppositeClaimSearch"`
}

// FetchedSource is one URL that was retrieved and (attempted to be) read.
type FetchedSource struct {
	ID                    string   `json:"id"`
	URL                   string   `json:"url"`
	Title                 string   `json:"title"`
	TrackRecordScore      *float64 `json:"trackRecordScore"`
	TrackRecordConfidence float64  `json:"trackRecordConfidence,omitempty"`
	FullText              string   `json:"fullText"`
	FetchedAt             string   `json:"fetchedAt"`
	Category              string   `json:"category,omitempty"`
	FetchSuccess          bool     `json:"fetchSuccess"`
	SearchQuery           string   `json:"searchQuery,omitempty"`
}

// TemporalContext is the LLM's recency assessment for the understood claim.
type TemporalContext struct {
	IsRecencySensitive bool    `json:"isRecencySensitive"`
	Confidence         float64 `json:"confidence"`
	Notes              string  `json:"notes,omitempty"`
}

// ClaimUnderstanding is the output of the Understand phase (§3).
type ClaimUnderstanding struct {
	DetectedInputType       DetectedInputType `json:"detectedInputType"`
	ImpliedClaim            string            `json:"impliedClaim"`
	OriginalInputDisplay    string            `json:"originalInputDisplay"`
	MainThesis              string            `json:"mainThesis"`
	ArticleThesis           string            `json:"articleThesis,omitempty"`
	BackgroundDetails       string            `json:"backgroundDetails,omitempty"`
	AnalysisContexts        []AnalysisContext `json:"analysisContexts"`
	RequiresSeparateAnalysis bool             `json:"requiresSeparateAnalysis"`
	SubClaims               []SubClaim        `json:"subClaims"`
	KeyFactors              []KeyFactor       `json:"keyFactors,omitempty"`
	ResearchQueries         []string          `json:"researchQueries,omitempty"`
	RiskTier                RiskTier          `json:"riskTier"`
	TemporalContext         *TemporalContext  `json:"temporalContext,omitempty"`
}

// KeyFactor is an emergent evaluation dimension surfaced by the LLM.
type KeyFactor struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	FactualBasis  string `json:"factualBasis"` // fact | opinion | unknown
	ContextID     string `json:"contextId,omitempty"`
}

// ClaimVerdict is the calibrated per-claim result (§3).
type ClaimVerdict struct {
	ClaimID                string          `json:"claimId"`
	ClaimText              string          `json:"claimText"`
	Verdict                int             `json:"verdict"`
	Confidence              int            `json:"confidence"`
	TruthPercentage         int            `json:"truthPercentage"`
	RiskTier                RiskTier       `json:"riskTier,omitempty"`
	Reasoning               string         `json:"reasoning"`
	SupportingEvidenceIDs    []string       `json:"supportingEvidenceIds"`
	ContextID                string         `json:"contextId,omitempty"`
	KeyFactorID              string         `json:"keyFactorId,omitempty"`
	IsCentral                bool           `json:"isCentral"`
	Centrality               Level          `json:"centrality"`
	ThesisRelevance           ThesisRelevance `json:"thesisRelevance"`
	IsCounterClaim            bool           `json:"isCounterClaim,omitempty"`
	DependencyFailed          bool           `json:"dependencyFailed,omitempty"`
	FailedDependencies        []string       `json:"failedDependencies,omitempty"`
	HighlightColor            HighlightColor `json:"highlightColor"`
	EvidenceWeight            float64        `json:"evidenceWeight,omitempty"`
	RatingConfirmation        RatingConfirmation `json:"ratingConfirmation,omitempty"`
	ConfidenceTier             ConfidenceTier `json:"confidenceTier,omitempty"`
	Publishable                bool           `json:"publishable"`
}

// ResearchIteration is one pass of the research loop (search + fetch + extract).
type ResearchIteration struct {
	Index          int      `json:"index"`
	Focus          string   `json:"focus"`
	Queries        []string `json:"queries"`
	Category       string   `json:"category,omitempty"`
	TargetContextID string  `json:"targetContextId,omitempty"`
	TargetClaimID   string  `json:"targetClaimId,omitempty"`
	SourcesFetched  int     `json:"sourcesFetched"`
	EvidenceAdded   int     `json:"evidenceAdded"`
}

// SearchQueryLog is one audit entry for an issued search query.
type SearchQueryLog struct {
	Query        string `json:"query"`
	ProvidersUsed []string `json:"providersUsed,omitempty"`
	ResultCount  int    `json:"resultCount"`
}

// AnalysisWarning is a structured, append-only telemetry entry (§4.10).
type AnalysisWarning struct {
	Type     string         `json:"type"`
	Severity string         `json:"severity"` // info | warning | error
	Details  map[string]any `json:"details,omitempty"`
}

// FallbackRecord documents one classification field normalized to a safe
// default because the LLM omitted it or returned an invalid enum value.
type FallbackRecord struct {
	Field        string `json:"field"`
	Location     string `json:"location"`
	Text         string `json:"text"`
	DefaultUsed  string `json:"defaultUsed"`
	Reason       string `json:"reason"` // missing | invalid
}

// ArticleAnalysis is the article-mode verdict supplement (§4.7).
type ArticleAnalysis struct {
	ThesisSupported             bool     `json:"thesisSupported"`
	LogicalFallacies            []string `json:"logicalFallacies,omitempty"`
	ArticleVerdict              int      `json:"articleVerdict"`
	VerdictDiffersFromClaimAverage bool  `json:"verdictDiffersFromClaimAverage"`
	VerdictDifferenceReason     string   `json:"verdictDifferenceReason,omitempty"`
	ArticleVerdictReliability   string   `json:"articleVerdictReliability,omitempty"`
}
