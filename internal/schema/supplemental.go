package schema

import (
	"encoding/json"

	"github.com/robertschaub/FactHarbor-sub001/internal/util/jsonutil"
)

// SupplementalClaims is the bounded backfill-call output contract (§4.4
// "requestSupplementalSubClaims"): ONLY new claims, explicitly distinct
// from the existing list given in the prompt.
type SupplementalClaims struct {
	NewClaims []SubClaimOut `json:"newClaims" prompt_type:"[]SubClaim" prompt_desc:"Additional atomic claims not already covered by the existing list."`
}

type SupplementalClaimsSchema struct{}

func (SupplementalClaimsSchema) ParseStrict(data []byte) (any, error) {
	var s SupplementalClaims
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (SupplementalClaimsSchema) ParseLenient(data []byte) (any, error) {
	var s SupplementalClaims
	if err := jsonutil.UnmarshalFlex(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}
