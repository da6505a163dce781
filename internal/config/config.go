// Package config loads the orchestrator's runtime configuration from flags
// and environment variables, the way internal/gateway/config did in the
// teacher repo: godotenv first, then os.Getenv with typed defaults. A
// malformed flag value or an out-of-range enum/threshold is a hard error; a
// malformed environment value (one that does not parse as the option's
// bool/int/float type) is ignored and the built-in default is used.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AnalysisMode string

const (
	ModeQuick AnalysisMode = "quick"
	ModeDeep  AnalysisMode = "deep"
)

type SearchMode string

const (
	SearchStandard SearchMode = "standard"
	SearchGrounded SearchMode = "grounded"
)

type ContextDetectionMethod string

const (
	ContextHeuristic ContextDetectionMethod = "heuristic"
	ContextHybrid    ContextDetectionMethod = "hybrid"
)

// Config mirrors spec.md §6 "Configuration" in full.
type Config struct {
	// Analysis
	AnalysisMode        AnalysisMode
	Deterministic       bool
	AllowModelKnowledge bool

	// LLM
	LLMProvider        string
	LLMTiering         bool
	UnderstandModel    string
	ExtractEvidenceModel string
	VerdictModel       string
	PerTaskTimeout     time.Duration
	UnderstandMaxChars int

	// Search
	SearchEnabled           bool
	SearchMode              SearchMode
	SearchProvider          string
	SearchMaxResults        int
	MaxSourcesPerIteration  int
	SearchDateRestrict      string
	DomainWhitelist         []string
	DomainBlacklist         []string
	SearchTimeout           time.Duration
	FetchTimeout            time.Duration
	PDFParseTimeout         time.Duration

	// Context
	ContextDetectionMethod        ContextDetectionMethod
	ContextDedupEnabled           bool
	ContextDedupThreshold         float64
	ContextNameAlignmentEnabled   bool
	ContextNameAlignmentThreshold float64
	ContextPromptMaxEvidenceItems int
	ContextPromptSelectionEnabled bool

	// Evidence
	ProbativeFilterEnabled     bool
	ProvenanceValidationEnabled bool
	ParallelExtractionLimit    int
	EvidenceSimilarityThreshold float64

	// Verdicts
	MaxOpinionFactors                  int
	OpinionAccumulationWarningThreshold float64
	MinEvidenceForTangential           int
	TangentialEvidenceQualityCheckEnabled bool
	ThesisRelevanceValidationEnabled   bool
	ThesisRelevanceLowConfidenceThreshold int
	ThesisRelevanceAutoDowngradeThreshold int
	MixedConfidenceThreshold           int

	// Budget
	MaxTotalIterations     int
	MaxIterationsPerContext int
	MaxTotalTokens          int
	GapResearchEnabled      bool
	GapResearchMaxIterations int
	GapResearchMaxQueries    int

	// Recency
	TemporalConfidenceThreshold float64
	RecencyWindowMonths         int
	RecencyConfidencePenalty    int

	// LLM feature flags (llmFeature.*)
	LLMFeatureContext bool
	LLMFeatureEvidence bool
	LLMFeatureVerdict  bool

	// Ambient
	DatabaseURL   string
	EventStreamAddr string
}

// MinEvidenceItemsRequired and MaxResearchIterations depend on AnalysisMode.
func (c Config) MinEvidenceItemsRequired() int {
	if c.AnalysisMode == ModeDeep {
		return 16
	}
	return 8
}

func (c Config) MaxResearchIterations() int {
	if c.AnalysisMode == ModeDeep {
		return 10
	}
	return 5
}

func (c Config) MinCategories() int {
	if c.AnalysisMode == ModeDeep {
		return 4
	}
	return 3
}

// Load reads configuration from flags/.env/environment. Unparseable flags
// and values rejected by validate are a hard error; environment values that
// fail to parse fall back to the default without an error.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("factharbor", flag.ContinueOnError)
	mode := fs.String("mode", envOr("ANALYSIS_MODE", "quick"), "analysis mode: quick|deep")
	deterministic := fs.Bool("deterministic", envBoolOr("DETERMINISTIC", true), "force temperature 0 and deterministic tiebreaks")
	allowModelKnowledge := fs.Bool("allow-model-knowledge", envBoolOr("ALLOW_MODEL_KNOWLEDGE", false), "allow the LLM to use parametric knowledge beyond retrieved evidence")
	provider := fs.String("llm-provider", envOr("LLM_PROVIDER", "gemini"), "gemini|groq|openai|fake")
	tiering := fs.Bool("llm-tiering", envBoolOr("LLM_TIERING", true), "enable per-task model tiering")
	understandModel := fs.String("understand-model", envOr("UNDERSTAND_MODEL", ""), "model override for the understand task")
	extractModel := fs.String("extract-evidence-model", envOr("EXTRACT_EVIDENCE_MODEL", ""), "model override for the extract_evidence task")
	verdictModel := fs.String("verdict-model", envOr("VERDICT_MODEL", ""), "model override for the verdict task")
	timeoutSec := fs.Int("llm-timeout-seconds", envIntOr("LLM_TIMEOUT_SECONDS", 300), "per-call LLM timeout in seconds")
	understandMaxChars := fs.Int("understand-max-chars", envIntOr("UNDERSTAND_MAX_CHARS", 20000), "cap on text sent to the Understand phase")

	searchEnabled := fs.Bool("search-enabled", envBoolOr("SEARCH_ENABLED", true), "enable web search")
	searchMode := fs.String("search-mode", envOr("SEARCH_MODE", "standard"), "standard|grounded")
	searchProvider := fs.String("search-provider", envOr("SEARCH_PROVIDER", "fake"), "search provider id")
	searchMaxResults := fs.Int("search-max-results", envIntOr("SEARCH_MAX_RESULTS", 8), "max results per query")
	maxSourcesPerIteration := fs.Int("max-sources-per-iteration", envIntOr("MAX_SOURCES_PER_ITERATION", 5), "max sources fetched per iteration")
	dateRestrict := fs.String("search-date-restrict", envOr("SEARCH_DATE_RESTRICT", ""), "w|m|y or empty")
	domainWhitelist := fs.String("domain-whitelist", envOr("DOMAIN_WHITELIST", ""), "comma separated domains")
	domainBlacklist := fs.String("domain-blacklist", envOr("DOMAIN_BLACKLIST", ""), "comma separated domains")
	searchTimeoutSec := fs.Int("search-timeout-seconds", envIntOr("SEARCH_TIMEOUT_SECONDS", 20), "per-search timeout in seconds")
	fetchTimeoutSec := fs.Int("fetch-timeout-seconds", envIntOr("FETCH_TIMEOUT_SECONDS", 20), "per-fetch timeout in seconds (§5)")
	pdfParseTimeoutSec := fs.Int("pdf-parse-timeout-seconds", envIntOr("PDF_PARSE_TIMEOUT_SECONDS", 15), "PDF extraction timeout in seconds")

	contextDetection := fs.String("context-detection-method", envOr("CONTEXT_DETECTION_METHOD", "hybrid"), "heuristic|hybrid")
	contextDedupEnabled := fs.Bool("context-dedup-enabled", envBoolOr("CONTEXT_DEDUP_ENABLED", true), "enable context dedup")
	contextDedupThreshold := fs.Float64("context-dedup-threshold", envFloatOr("CONTEXT_DEDUP_THRESHOLD", 0.85), "merge threshold")
	contextNameAlignEnabled := fs.Bool("context-name-alignment-enabled", envBoolOr("CONTEXT_NAME_ALIGNMENT_ENABLED", true), "enable name-alignment renaming")
	contextNameAlignThreshold := fs.Float64("context-name-alignment-threshold", envFloatOr("CONTEXT_NAME_ALIGNMENT_THRESHOLD", 0.3), "name-misalignment threshold")
	contextPromptMaxEvidence := fs.Int("context-prompt-max-evidence-items", envIntOr("CONTEXT_PROMPT_MAX_EVIDENCE_ITEMS", 40), "8..80")
	contextPromptSelection := fs.Bool("context-prompt-selection-enabled", envBoolOr("CONTEXT_PROMPT_SELECTION_ENABLED", true), "enable evidence selection for the refinement prompt")

	probativeFilter := fs.Bool("probative-filter-enabled", envBoolOr("PROBATIVE_FILTER_ENABLED", true), "enable deterministic probative filter")
	provenanceValidation := fs.Bool("provenance-validation-enabled", envBoolOr("PROVENANCE_VALIDATION_ENABLED", true), "enable provenance validation")
	parallelExtractionLimit := fs.Int("parallel-extraction-limit", envIntOr("PARALLEL_EXTRACTION_LIMIT", 3), "concurrent evidence-extraction workers")
	evidenceSimilarityThreshold := fs.Float64("evidence-similarity-threshold", envFloatOr("EVIDENCE_SIMILARITY_THRESHOLD", 0.4), "evidence relevance threshold")

	maxOpinionFactors := fs.Int("max-opinion-factors", envIntOr("MAX_OPINION_FACTORS", 3), "max retained opinion-only factors")
	opinionWarnThreshold := fs.Float64("opinion-accumulation-warning-threshold", envFloatOr("OPINION_ACCUMULATION_WARNING_THRESHOLD", 0.5), "fraction of opinion factors that triggers a warning")
	minEvidenceForTangential := fs.Int("min-evidence-for-tangential", envIntOr("MIN_EVIDENCE_FOR_TANGENTIAL", 1), "min quality evidence items to keep a tangential claim")
	tangentialQualityCheck := fs.Bool("tangential-evidence-quality-check-enabled", envBoolOr("TANGENTIAL_EVIDENCE_QUALITY_CHECK_ENABLED", true), "enable quality check before pruning tangential claims")
	thesisValidation := fs.Bool("thesis-relevance-validation-enabled", envBoolOr("THESIS_RELEVANCE_VALIDATION_ENABLED", true), "enable thesis-relevance validation")
	thesisLowConf := fs.Int("thesis-relevance-low-confidence-threshold", envIntOr("THESIS_RELEVANCE_LOW_CONFIDENCE_THRESHOLD", 70), "0..100")
	thesisAutoDowngrade := fs.Int("thesis-relevance-auto-downgrade-threshold", envIntOr("THESIS_RELEVANCE_AUTO_DOWNGRADE_THRESHOLD", 60), "0..100")
	mixedConfidenceThreshold := fs.Int("mixed-confidence-threshold", envIntOr("MIXED_CONFIDENCE_THRESHOLD", 60), "0..100")

	maxTotalIterations := fs.Int("max-total-iterations", envIntOr("MAX_TOTAL_ITERATIONS", 0), "0 = derive from analysis mode")
	maxIterationsPerContext := fs.Int("max-iterations-per-context", envIntOr("MAX_ITERATIONS_PER_CONTEXT", 4), "per-context iteration cap")
	maxTotalTokens := fs.Int("max-total-tokens", envIntOr("MAX_TOTAL_TOKENS", 2_000_000), "token budget")
	gapResearchEnabled := fs.Bool("gap-research-enabled", envBoolOr("GAP_RESEARCH_ENABLED", true), "enable the post-research gap-filling phase")
	gapResearchMaxIterations := fs.Int("gap-research-max-iterations", envIntOr("GAP_RESEARCH_MAX_ITERATIONS", 2), "")
	gapResearchMaxQueries := fs.Int("gap-research-max-queries", envIntOr("GAP_RESEARCH_MAX_QUERIES", 8), "")

	temporalConfidenceThreshold := fs.Float64("temporal-confidence-threshold", envFloatOr("TEMPORAL_CONFIDENCE_THRESHOLD", 0.6), "0..1")
	recencyWindowMonths := fs.Int("recency-window-months", envIntOr("RECENCY_WINDOW_MONTHS", 6), "")
	recencyConfidencePenalty := fs.Int("recency-confidence-penalty", envIntOr("RECENCY_CONFIDENCE_PENALTY", 20), "")

	llmFeatureContext := fs.Bool("llm-feature-context", envBoolOr("LLM_FEATURE_CONTEXT", false), "use LLM similarity in addition to heuristics for context work")
	llmFeatureEvidence := fs.Bool("llm-feature-evidence", envBoolOr("LLM_FEATURE_EVIDENCE", false), "use an LLM pre-filter pass for evidence quality")
	llmFeatureVerdict := fs.Bool("llm-feature-verdict", envBoolOr("LLM_FEATURE_VERDICT", false), "use LLM-based verdict validation in addition to heuristics")

	databaseURL := fs.String("database-url", envOr("DATABASE_URL", ""), "postgres DSN for config snapshots; empty falls back to a JSON file store")
	eventStreamAddr := fs.String("event-stream-addr", envOr("EVENT_STREAM_ADDR", ":8088"), "websocket event-stream listen address")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &Config{
		AnalysisMode:        AnalysisMode(strings.ToLower(strings.TrimSpace(*mode))),
		Deterministic:       *deterministic,
		AllowModelKnowledge: *allowModelKnowledge,

		LLMProvider:          strings.ToLower(strings.TrimSpace(*provider)),
		LLMTiering:           *tiering,
		UnderstandModel:      strings.TrimSpace(*understandModel),
		ExtractEvidenceModel: strings.TrimSpace(*extractModel),
		VerdictModel:         strings.TrimSpace(*verdictModel),
		PerTaskTimeout:       time.Duration(*timeoutSec) * time.Second,
		UnderstandMaxChars:   *understandMaxChars,

		SearchEnabled:          *searchEnabled,
		SearchMode:             SearchMode(strings.ToLower(strings.TrimSpace(*searchMode))),
		SearchProvider:         strings.TrimSpace(*searchProvider),
		SearchMaxResults:       *searchMaxResults,
		MaxSourcesPerIteration: *maxSourcesPerIteration,
		SearchDateRestrict:     strings.TrimSpace(*dateRestrict),
		DomainWhitelist:        splitCSV(*domainWhitelist),
		DomainBlacklist:        splitCSV(*domainBlacklist),
		SearchTimeout:          time.Duration(*searchTimeoutSec) * time.Second,
		FetchTimeout:           time.Duration(*fetchTimeoutSec) * time.Second,
		PDFParseTimeout:        time.Duration(*pdfParseTimeoutSec) * time.Second,

		ContextDetectionMethod:        ContextDetectionMethod(strings.ToLower(strings.TrimSpace(*contextDetection))),
		ContextDedupEnabled:           *contextDedupEnabled,
		ContextDedupThreshold:         *contextDedupThreshold,
		ContextNameAlignmentEnabled:   *contextNameAlignEnabled,
		ContextNameAlignmentThreshold: *contextNameAlignThreshold,
		ContextPromptMaxEvidenceItems: *contextPromptMaxEvidence,
		ContextPromptSelectionEnabled: *contextPromptSelection,

		ProbativeFilterEnabled:      *probativeFilter,
		ProvenanceValidationEnabled: *provenanceValidation,
		ParallelExtractionLimit:     *parallelExtractionLimit,
		EvidenceSimilarityThreshold: *evidenceSimilarityThreshold,

		MaxOpinionFactors:                      *maxOpinionFactors,
		OpinionAccumulationWarningThreshold:    *opinionWarnThreshold,
		MinEvidenceForTangential:               *minEvidenceForTangential,
		TangentialEvidenceQualityCheckEnabled:   *tangentialQualityCheck,
		ThesisRelevanceValidationEnabled:        *thesisValidation,
		ThesisRelevanceLowConfidenceThreshold:   *thesisLowConf,
		ThesisRelevanceAutoDowngradeThreshold:   *thesisAutoDowngrade,
		MixedConfidenceThreshold:                *mixedConfidenceThreshold,

		MaxTotalIterations:      *maxTotalIterations,
		MaxIterationsPerContext: *maxIterationsPerContext,
		MaxTotalTokens:          *maxTotalTokens,
		GapResearchEnabled:      *gapResearchEnabled,
		GapResearchMaxIterations: *gapResearchMaxIterations,
		GapResearchMaxQueries:    *gapResearchMaxQueries,

		TemporalConfidenceThreshold: *temporalConfidenceThreshold,
		RecencyWindowMonths:         *recencyWindowMonths,
		RecencyConfidencePenalty:    *recencyConfidencePenalty,

		LLMFeatureContext:  *llmFeatureContext,
		LLMFeatureEvidence: *llmFeatureEvidence,
		LLMFeatureVerdict:  *llmFeatureVerdict,

		DatabaseURL:     strings.TrimSpace(*databaseURL),
		EventStreamAddr: strings.TrimSpace(*eventStreamAddr),
	}

	if cfg.MaxTotalIterations <= 0 {
		cfg.MaxTotalIterations = cfg.MaxResearchIterations()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.AnalysisMode != ModeQuick && c.AnalysisMode != ModeDeep {
		return fmt.Errorf("config: invalid analysis mode %q", c.AnalysisMode)
	}
	if c.SearchMode != SearchStandard && c.SearchMode != SearchGrounded {
		return fmt.Errorf("config: invalid search mode %q", c.SearchMode)
	}
	if c.ContextDetectionMethod != ContextHeuristic && c.ContextDetectionMethod != ContextHybrid {
		return fmt.Errorf("config: invalid context detection method %q", c.ContextDetectionMethod)
	}
	if c.ContextDedupThreshold < 0 || c.ContextDedupThreshold > 1 {
		return fmt.Errorf("config: context dedup threshold must be in [0,1], got %v", c.ContextDedupThreshold)
	}
	if c.ParallelExtractionLimit < 1 {
		return fmt.Errorf("config: parallel extraction limit must be >= 1")
	}
	if c.MixedConfidenceThreshold < 0 || c.MixedConfidenceThreshold > 100 {
		return fmt.Errorf("config: mixed confidence threshold must be in [0,100]")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envIntOr(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatOr(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
