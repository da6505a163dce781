package llmgateway

import "strings"

// salvageJSONObject scans text for the first balanced top-level `{...}`
// object and returns its exact substring, or "" if none is found. This is
// the mechanical half of §4.2 step 2 ("salvage the first top-level JSON
// object"); schema-level leniency is left to the caller's lenient parser.
func salvageJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
