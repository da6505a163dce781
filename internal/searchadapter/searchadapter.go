// Package searchadapter is the external search-provider contract (§6
// "Search adapter contract"): standard query search plus the optional
// integrated grounded-search mode the research controller (C7) falls back
// from when unavailable. Grounded on the teacher's narrow-interface-at-
// package-boundary style (internal/gateway/application/projectport).
package searchadapter

import "context"

// Request is one standard search call.
type Request struct {
	Query           string
	MaxResults      int
	DateRestrict    string // w|m|y or empty
	DomainWhitelist []string
	DomainBlacklist []string
}

// Result is one candidate hit.
type Result struct {
	Title   string
	Snippet string
	URL     string
}

// Response wraps the hits plus which providers actually served them
// (§6: "providersUsed").
type Response struct {
	Results       []Result
	ProvidersUsed []string
}

// GroundedRequest is the input to an LLM-integrated grounded search.
type GroundedRequest struct {
	Prompt  string
	Context string
}

// GroundedSource is one URL the grounded search surfaced.
type GroundedSource struct {
	URL   string
	Title string
}

// GroundedResponse reports whether grounding actually fired and what it found.
type GroundedResponse struct {
	GroundingUsed bool
	Sources       []GroundedSource
	SearchQueries []string
}

// Provider is the external web-search collaborator (§6).
type Provider interface {
	Search(ctx context.Context, req Request) (Response, error)
}

// GroundedProvider is implemented by providers whose LLM can do integrated
// grounded search (§4.6 "Grounded-search mode"). A Provider that does not
// implement this always falls back to standard search.
type GroundedProvider interface {
	Provider
	SearchWithGrounding(ctx context.Context, req GroundedRequest) (GroundedResponse, error)
}

// SearchWithFallback implements §4.6's grounded-mode fallback rule: use
// grounded search when the provider supports it and it returns URLs;
// otherwise (or on error) fall back to a standard query search.
func SearchWithFallback(ctx context.Context, p Provider, grounded GroundedRequest, standard Request) (Response, bool, error) {
	if gp, ok := p.(GroundedProvider); ok {
		gresp, err := gp.SearchWithGrounding(ctx, grounded)
		if err == nil && gresp.GroundingUsed && len(gresp.Sources) > 0 {
			results := make([]Result, 0, len(gresp.Sources))
			for _, s := range gresp.Sources {
				results = append(results, Result{Title: s.Title, URL: s.URL})
			}
			return Response{Results: results, ProvidersUsed: []string{"grounded"}}, true, nil
		}
	}
	resp, err := p.Search(ctx, standard)
	return resp, false, err
}
