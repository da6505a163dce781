// Package research implements C7: the research controller's
// DecideNextResearch state machine, URL dedup normalization, recency
// detection, evidence-gap analysis, and the pre-fetch relevance filter.
// Grounded on insightify/internal/llm's task-dispatch style for the
// bounded, ordered decision list, and on the teacher's own URL-handling
// helpers for normalization.
package research

import (
	"net/url"
	"sort"
	"strings"
)

var trackingParamPrefixes = []string{"utm_"}
var trackingParamExact = map[string]struct{}{
	"ref": {}, "source": {}, "fbclid": {}, "gclid": {},
}

// NormalizeURLForDedup lowercases the host (stripping a leading "www."),
// drops the fragment, and removes tracking query parameters, so the
// resulting string is stable across cosmetically different URLs pointing
// at the same page (§4.6).
func NormalizeURLForDedup(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	u.Fragment = ""
	u.Host = strings.ToLower(strings.TrimPrefix(strings.ToLower(u.Host), "www."))

	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			lower := strings.ToLower(key)
			if _, exact := trackingParamExact[lower]; exact {
				q.Del(key)
				continue
			}
			for _, prefix := range trackingParamPrefixes {
				if strings.HasPrefix(lower, prefix) {
					q.Del(key)
					break
				}
			}
		}
		u.RawQuery = encodeSortedQuery(q)
	}
	return u.String()
}

func encodeSortedQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		for j, v := range q[k] {
			if i > 0 || j > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
