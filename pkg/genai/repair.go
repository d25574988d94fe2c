package genai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// truncationSuffixes close structures a size-truncated response left
// open: a dangling string literal, then the slot object, outline array,
// sections object and root, in increasing depth. Ordered shallow to
// deep; the first suffix that yields valid JSON wins.
var truncationSuffixes = []string{
	`"`,
	`"}`,
	`"}]`,
	`"}]}`,
	`"}]}}`,
	`"}]}}}`,
	`}`,
	`}]`,
	`}]}`,
	`}]}}`,
	`]`,
	`]}`,
	`]}}`,
	`]}}}`,
	`}}`,
	`}}}`,
}

// ExtractJSON recovers a structured object from raw model output and
// unmarshals it into v. The ladder: direct parse, code-fence strip,
// first-to-last brace extraction, and, only for responses the backend
// marked as size-truncated, a pass over plausible closing suffixes.
func ExtractJSON(raw string, truncated bool, v interface{}) error {
	cleaned := stripFences(raw)

	candidates := []string{strings.TrimSpace(raw), cleaned}
	if span, ok := braceSpan(cleaned); ok {
		candidates = append(candidates, span)
	}
	for _, c := range candidates {
		if c != "" && json.Valid([]byte(c)) {
			return json.Unmarshal([]byte(c), v)
		}
	}

	if truncated {
		base := cleaned
		if i := strings.Index(base, "{"); i > 0 {
			base = base[i:]
		}
		base = strings.TrimRight(base, " \t\r\n,")
		for _, suffix := range truncationSuffixes {
			repaired := base + suffix
			if json.Valid([]byte(repaired)) {
				return json.Unmarshal([]byte(repaired), v)
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrMalformedResponse, snippet(raw))
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func braceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1], true
	}
	return "", false
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > 160 {
		return string(r[:160]) + "..."
	}
	return s
}
