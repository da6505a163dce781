package calibration

import (
	"sort"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

// CentralityMultipliers and DefaultUnknownSourceScore are reused across
// weighting and aggregation; §9 open question flags they must stay
// consistent if ever changed.
var CentralityMultipliers = map[domain.Level]float64{
	domain.LevelHigh:   3.0,
	domain.LevelMedium: 2.0,
	domain.LevelLow:    1.0,
}

const dependencyFailureThreshold = 43

// PropagateDependencyFailures marks any verdict whose claim depends on a
// claim with truthPercentage < 43 as dependencyFailed, prefixing its
// reasoning, per §3's ClaimVerdict invariant and §4.8 "Dependency
// propagation". Dependency-failed claims stay in the returned slice (they
// are still displayed) but are excluded from aggregation by the aggregation
// functions below.
func PropagateDependencyFailures(verdicts []domain.ClaimVerdict, claims []domain.SubClaim) []domain.ClaimVerdict {
	truthByID := map[string]int{}
	for _, v := range verdicts {
		truthByID[v.ClaimID] = v.TruthPercentage
	}
	dependsOn := map[string][]string{}
	for _, c := range claims {
		dependsOn[c.ID] = c.DependsOn
	}
	out := make([]domain.ClaimVerdict, len(verdicts))
	copy(out, verdicts)
	for i := range out {
		var failed []string
		for _, dep := range dependsOn[out[i].ClaimID] {
			if t, ok := truthByID[dep]; ok && t < dependencyFailureThreshold {
				failed = append(failed, dep)
			}
		}
		if len(failed) > 0 {
			out[i].DependencyFailed = true
			out[i].FailedDependencies = failed
			out[i].Reasoning = "[PREREQUISITE FAILED: " + joinComma(failed) + "] " + out[i].Reasoning
		}
	}
	return out
}

func joinComma(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	return out
}

// aggregationValue returns the truth percentage a verdict contributes to
// aggregation: inverted for counter-claims (§3 invariant 7, §4.8 step 4),
// but the verdict's displayed TruthPercentage is never mutated by this.
func aggregationValue(v domain.ClaimVerdict) int {
	if v.IsCounterClaim {
		return 100 - v.TruthPercentage
	}
	return v.TruthPercentage
}

func eligibleForAggregation(v domain.ClaimVerdict) bool {
	if v.DependencyFailed {
		return false
	}
	if v.ThesisRelevance == domain.RelevanceTangential || v.ThesisRelevance == domain.RelevanceIrrelevant {
		return false
	}
	return true
}

// CalculateWeightedVerdictAverage implements §4.8 "Weighted aggregation":
// per-claim weight = centralityMultiplier * (confidence/100); counter-claims
// contribute (100 - truthPct); tangential and dependency-failed claims are
// excluded. Returns 50 (neutral) when nothing is eligible.
func CalculateWeightedVerdictAverage(verdicts []domain.ClaimVerdict) float64 {
	var weightedSum, totalWeight float64
	for _, v := range verdicts {
		if !eligibleForAggregation(v) {
			continue
		}
		mult, ok := CentralityMultipliers[v.Centrality]
		if !ok {
			mult = CentralityMultipliers[domain.LevelLow]
		}
		weight := mult * (float64(v.Confidence) / 100)
		weightedSum += weight * float64(aggregationValue(v))
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 50
	}
	return weightedSum / totalWeight
}

// DedupeWeightedAverageTruth implements §4.8 "De-duplication average":
// clusters claim verdicts by token Jaccard >= 0.6 on claim text; each
// cluster contributes about one unit of weight (primary 1.0, duplicates
// split 0.5 equally among themselves), so duplicating a claim K times moves
// the average by no more than ~1 point (P6).
func DedupeWeightedAverageTruth(verdicts []domain.ClaimVerdict) float64 {
	eligible := make([]domain.ClaimVerdict, 0, len(verdicts))
	for _, v := range verdicts {
		if eligibleForAggregation(v) {
			eligible = append(eligible, v)
		}
	}
	if len(eligible) == 0 {
		return 50
	}
	clusters := clusterByJaccard(eligible, 0.6)
	var weightedSum, totalWeight float64
	for _, cluster := range clusters {
		weightedSum += 1.0 * float64(aggregationValue(eligible[cluster[0]]))
		totalWeight += 1.0
		if len(cluster) == 1 {
			continue
		}
		share := 0.5 / float64(len(cluster)-1)
		for _, idx := range cluster[1:] {
			weightedSum += share * float64(aggregationValue(eligible[idx]))
			totalWeight += share
		}
	}
	if totalWeight == 0 {
		return 50
	}
	return weightedSum / totalWeight
}

// clusterByJaccard groups indices into eligible whose claim texts are
// pairwise connected at >= threshold similarity (single-linkage).
func clusterByJaccard(eligible []domain.ClaimVerdict, threshold float64) [][]int {
	n := len(eligible)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if text.Jaccard(eligible[i].ClaimText, eligible[j].ClaimText) >= threshold {
				union(i, j)
			}
		}
	}
	groups := map[int][]int{}
	for i := 0; i < n; i++ {
		root := find(i)
		groups[root] = append(groups[root], i)
	}
	out := make([][]int, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	// deterministic ordering for test stability
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// ApplyDirectionValidation implements §4.8 step 8: for claims with >= 2
// directional evidence items, if >= 60% contradict but the verdict is >= 72
// (or the mirror case), auto-correct the verdict to the other half of the
// scale and record a verdict_direction_mismatch warning (P10-adjacent).
func ApplyDirectionValidation(state *domain.ResearchState, v *domain.ClaimVerdict) bool {
	items := directionalEvidenceFor(state, v.SupportingEvidenceIDs)
	if len(items) < 2 {
		return false
	}
	contradicts, supports := 0, 0
	for _, e := range items {
		switch e.ClaimDirection {
		case domain.DirectionContradicts:
			contradicts++
		case domain.DirectionSupports:
			supports++
		}
	}
	total := contradicts + supports
	if total == 0 {
		return false
	}
	contradictFrac := float64(contradicts) / float64(total)
	supportFrac := float64(supports) / float64(total)

	corrected := v.TruthPercentage
	fired := false
	if contradictFrac >= 0.6 && v.TruthPercentage >= 72 {
		corrected = minInt(corrected, 35)
		fired = true
	} else if supportFrac >= 0.6 && v.TruthPercentage <= 28 {
		corrected = maxInt(corrected, 65)
		fired = true
	}
	if !fired {
		return false
	}
	v.TruthPercentage = corrected
	v.Verdict = corrected
	state.AddWarning("verdict_direction_mismatch", "warning", map[string]any{
		"claimId":             v.ClaimID,
		"correctedVerdictPct": corrected,
	})
	return true
}

func directionalEvidenceFor(state *domain.ResearchState, ids []string) []domain.EvidenceItem {
	wanted := map[string]struct{}{}
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []domain.EvidenceItem
	for _, e := range state.EvidenceItems {
		if _, ok := wanted[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp implements §4.8 step 10 / §3 invariant 4: defensively clamps
// TruthPercentage (and the mirrored Verdict field) to [0,100] on every
// write path that reaches it.
func Clamp(v *domain.ClaimVerdict) {
	if v.TruthPercentage < 0 {
		v.TruthPercentage = 0
	}
	if v.TruthPercentage > 100 {
		v.TruthPercentage = 100
	}
	v.Verdict = v.TruthPercentage
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 100 {
		v.Confidence = 100
	}
}
