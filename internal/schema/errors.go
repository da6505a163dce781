package schema

import "errors"

var errEmptyRequired = errors.New("schema: required field missing or empty")
