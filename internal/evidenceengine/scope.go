package evidenceengine

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

// CaptureScope returns true when an EvidenceScope has at least one
// dimension populated, the signal that two items carrying it should never
// be implicitly compared in verdict reasoning even within the same
// AnalysisContext (§4.5).
func CaptureScope(scope *domain.EvidenceScope) bool {
	if scope == nil {
		return false
	}
	return scope.Methodology != "" || scope.Boundaries != "" || scope.Geographic != "" || scope.Temporal != "" || scope.SourceType != ""
}

// DistinctScopes reports whether two evidence items carry EvidenceScopes
// that differ on methodology, boundaries, geographic or temporal scope,
// meaning they describe non-comparable analytical frames. SourceType is not
// compared.
func DistinctScopes(a, b *domain.EvidenceScope) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Methodology != "" && b.Methodology != "" && a.Methodology != b.Methodology {
		return true
	}
	if a.Boundaries != "" && b.Boundaries != "" && a.Boundaries != b.Boundaries {
		return true
	}
	if a.Geographic != "" && b.Geographic != "" && a.Geographic != b.Geographic {
		return true
	}
	if a.Temporal != "" && b.Temporal != "" && a.Temporal != b.Temporal {
		return true
	}
	return false
}
