// Package report renders the analysis result as the markdown document
// described by §6 "Report Markdown": an Executive Summary, a Claims table,
// a Sources list, and a Technical Notes section. Grounded on the teacher's
// internal/utils.MarkDownClean text-hygiene helper and its small,
// single-purpose string-builder functions (internal/common/utils/tree.go).
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/utils"
)

// Render builds the full markdown report for one finished analysis run. It
// takes plain fields rather than an orchestrator type so this package never
// imports internal/orchestrator.
func Render(state *domain.ResearchState, verdicts []domain.ClaimVerdict, article *domain.ArticleAnalysis, weightedAverageTruth, dedupedWeightedAverageTruth float64) string {
	var b strings.Builder

	renderExecutiveSummary(&b, state, verdicts, article, weightedAverageTruth, dedupedWeightedAverageTruth)
	renderClaimsTable(&b, verdicts)
	renderSources(&b, state.Sources)
	renderTechnicalNotes(&b, state)

	return strings.TrimSpace(b.String()) + "\n"
}

func renderExecutiveSummary(b *strings.Builder, state *domain.ResearchState, verdicts []domain.ClaimVerdict, article *domain.ArticleAnalysis, weighted, deduped float64) {
	b.WriteString("# Executive Summary\n\n")

	impliedClaim := state.OriginalInput
	mainThesis := ""
	if state.Understanding != nil {
		if state.Understanding.ImpliedClaim != "" {
			impliedClaim = state.Understanding.ImpliedClaim
		}
		mainThesis = state.Understanding.MainThesis
	}
	fmt.Fprintf(b, "**Claim analyzed:** %s\n\n", clean(impliedClaim))
	if mainThesis != "" {
		fmt.Fprintf(b, "**Main thesis:** %s\n\n", clean(mainThesis))
	}

	if article != nil {
		verdict := "not supported"
		if article.ThesisSupported {
			verdict = "supported"
		}
		fmt.Fprintf(b, "**Article verdict:** the thesis is %s (%d%%).\n\n", verdict, article.ArticleVerdict)
		if article.VerdictDiffersFromClaimAverage && article.VerdictDifferenceReason != "" {
			fmt.Fprintf(b, "_%s_\n\n", clean(article.VerdictDifferenceReason))
		}
	} else {
		fmt.Fprintf(b, "**Weighted average truth:** %.0f%% (deduped: %.0f%%)\n\n", weighted, deduped)
	}

	if state.Understanding != nil && len(state.Understanding.KeyFactors) > 0 {
		b.WriteString("**Key factors:**\n\n")
		for _, f := range state.Understanding.KeyFactors {
			fmt.Fprintf(b, "- %s", clean(f.Name))
			if f.Description != "" {
				fmt.Fprintf(b, " — %s", clean(f.Description))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if state.Understanding != nil && len(state.Understanding.AnalysisContexts) > 1 {
		b.WriteString("**Analysis contexts:**\n\n")
		for _, c := range state.Understanding.AnalysisContexts {
			fmt.Fprintf(b, "- %s (%s)\n", clean(c.Name), c.Status)
		}
		b.WriteString("\n")
	}
}

func renderClaimsTable(b *strings.Builder, verdicts []domain.ClaimVerdict) {
	b.WriteString("# Claims\n\n")
	if len(verdicts) == 0 {
		b.WriteString("No claims were verified.\n\n")
		return
	}

	b.WriteString("| Claim | Truth % | Confidence | Tier | Publishable |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, v := range verdicts {
		tier := string(v.ConfidenceTier)
		if tier == "" {
			tier = "-"
		}
		fmt.Fprintf(b, "| %s | %d%% | %d%% | %s | %s |\n",
			clean(truncate(v.ClaimText, 120)), v.TruthPercentage, v.Confidence, tier, yesNo(v.Publishable))
	}
	b.WriteString("\n")

	for _, v := range verdicts {
		if strings.TrimSpace(v.Reasoning) == "" {
			continue
		}
		fmt.Fprintf(b, "**%s** — %s\n\n", clean(truncate(v.ClaimText, 80)), clean(v.Reasoning))
	}
}

func renderSources(b *strings.Builder, sources []domain.FetchedSource) {
	b.WriteString("# Sources\n\n")
	if len(sources) == 0 {
		b.WriteString("No sources were retrieved.\n\n")
		return
	}
	for i, s := range sources {
		status := "fetched"
		if !s.FetchSuccess {
			status = "fetch failed"
		}
		title := s.Title
		if title == "" {
			title = s.URL
		}
		fmt.Fprintf(b, "%d. [%s](%s) — %s\n", i+1, clean(title), s.URL, status)
	}
	b.WriteString("\n")
}

func renderTechnicalNotes(b *strings.Builder, state *domain.ResearchState) {
	b.WriteString("# Technical Notes\n\n")

	fmt.Fprintf(b, "- Research iterations: %d\n", state.Budget.TotalIterations)
	fmt.Fprintf(b, "- Gap-research iterations: %d\n", state.Budget.GapIterationsUsed)
	fmt.Fprintf(b, "- Sources fetched: %d\n", len(state.Sources))
	fmt.Fprintf(b, "- Evidence items: %d\n", len(state.EvidenceItems))
	fmt.Fprintf(b, "- LLM calls: %d (tokens used: %d)\n", state.Budget.LLMCalls, state.Budget.TokensUsed)
	if state.Budget.BudgetExceeded {
		fmt.Fprintf(b, "- Budget exceeded: %s\n", state.Budget.ExceedReason)
	}
	b.WriteString("\n")

	if len(state.SearchQueries) > 0 {
		b.WriteString("**Search queries:**\n\n")
		for _, q := range state.SearchQueries {
			fmt.Fprintf(b, "- %q (%d results, providers: %s)\n", q.Query, q.ResultCount, strings.Join(q.ProvidersUsed, ", "))
		}
		b.WriteString("\n")
	}

	if len(state.AnalysisWarnings) > 0 {
		b.WriteString("**Warnings:**\n\n")
		for _, w := range state.AnalysisWarnings {
			fmt.Fprintf(b, "- [%s] %s\n", w.Severity, w.Type)
		}
		b.WriteString("\n")
	}

	if len(state.FallbackRecords) > 0 {
		b.WriteString("**Classification fallbacks:**\n\n")
		counts := map[string]int{}
		for _, f := range state.FallbackRecords {
			counts[f.Field]++
		}
		fields := make([]string, 0, len(counts))
		for f := range counts {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(b, "- %s: %d fallback(s) applied\n", f, counts[f])
		}
		b.WriteString("\n")
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// clean strips the HTML/markdown noise an LLM occasionally echoes back
// into free-text fields before they land in the report.
func clean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return utils.MarkDownClean(s)
}
