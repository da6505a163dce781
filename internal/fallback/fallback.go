// Package fallback implements C11: classification-field normalization to
// safe defaults plus the analysis-warnings audit trail (§4.10). Grounded on
// the small pure-function validators in insightify/internal/common/utils.
package fallback

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

// validEnums lists the accepted values per classification field; any other
// (or empty) value triggers the documented safe default.
var validEnums = map[string]map[string]struct{}{
	"harmPotential":   setOf("high", "medium", "low"),
	"factualBasis":    setOf("fact", "opinion", "unknown"),
	"sourceAuthority": setOf("primary", "secondary", "opinion", "contested"),
	"evidenceBasis":   setOf("scientific", "documented", "anecdotal", "theoretical", "pseudoscientific"),
}

var safeDefaults = map[string]string{
	"harmPotential":   "medium",
	"factualBasis":    "unknown",
	"isContested":     "false",
	"sourceAuthority": "secondary",
	"evidenceBasis":   "anecdotal",
}

func setOf(vals ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

// NormalizeClassification validates one classification value, returning the
// safe value to use and, when a fallback fired, a FallbackRecord to append
// to state.FallbackRecords (§4.10).
func NormalizeClassification(field, value, location, text string) (safe string, record *domain.FallbackRecord) {
	def, hasDefault := safeDefaults[field]
	if !hasDefault {
		return value, nil
	}
	if value == "" {
		rec := domain.FallbackRecord{Field: field, Location: location, Reason: "missing", DefaultUsed: def}
		return def, truncate(&rec, text)
	}
	if allowed, ok := validEnums[field]; ok {
		if _, valid := allowed[value]; !valid {
			rec := domain.FallbackRecord{Field: field, Location: location, Reason: "invalid", DefaultUsed: def}
			return def, truncate(&rec, text)
		}
	}
	return value, nil
}

func truncate(rec *domain.FallbackRecord, text string) *domain.FallbackRecord {
	if len(text) > 100 {
		text = text[:100]
	}
	rec.Text = text
	return rec
}

// Sweep runs classification normalization over every evidence item's
// classification fields, every sub-claim's harmPotential and every key
// factor's factualBasis (§4.10). The orchestrator calls it after each main
// research iteration's extraction, at the end of the understand phase, at
// the end of the refine phase (before verdict generation and aggregation),
// and as the final sweep in finalize. Evidence added by gap research is
// first swept at the end of refine.
func Sweep(state *domain.ResearchState, location string) {
	for i := range state.EvidenceItems {
		e := &state.EvidenceItems[i]
		if safe, rec := NormalizeClassification("sourceAuthority", string(e.SourceAuthority), location, e.Statement); rec != nil {
			e.SourceAuthority = domain.SourceAuthority(safe)
			state.FallbackRecords = append(state.FallbackRecords, *rec)
		}
		if safe, rec := NormalizeClassification("evidenceBasis", string(e.EvidenceBasis), location, e.Statement); rec != nil {
			e.EvidenceBasis = domain.EvidenceBasis(safe)
			state.FallbackRecords = append(state.FallbackRecords, *rec)
		}
	}
	if state.Understanding != nil {
		for i := range state.Understanding.SubClaims {
			c := &state.Understanding.SubClaims[i]
			if safe, rec := NormalizeClassification("harmPotential", string(c.HarmPotential), location, c.Text); rec != nil {
				c.HarmPotential = domain.Level(safe)
				state.FallbackRecords = append(state.FallbackRecords, *rec)
			}
		}
		for i := range state.Understanding.KeyFactors {
			kf := &state.Understanding.KeyFactors[i]
			if safe, rec := NormalizeClassification("factualBasis", kf.FactualBasis, location, kf.Name); rec != nil {
				kf.FactualBasis = safe
				state.FallbackRecords = append(state.FallbackRecords, *rec)
			}
		}
	}
}
