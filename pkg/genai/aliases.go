package genai

import "strings"

// modelAliases resolves user-facing shortcuts to ordered lists of
// concrete model identifiers. When a backend rejects an identifier as
// unknown, the client walks the rest of the list before giving up.
var modelAliases = map[string][]string{
	"claude":        {"claude-sonnet-4-5", "claude-haiku-4-5", "claude-3-5-haiku-latest"},
	"claude-sonnet": {"claude-sonnet-4-5", "claude-3-7-sonnet-latest"},
	"claude-haiku":  {"claude-haiku-4-5", "claude-3-5-haiku-latest"},
	"gpt":           {"gpt-4o-mini", "gpt-4.1-mini"},
	"gpt-mini":      {"gpt-4o-mini", "gpt-4.1-mini"},
}

// candidateModels returns the ordered identifiers to try for a
// configured model string: the exact alias expansion, or the identifier
// itself followed by its family's fallbacks.
func candidateModels(model string) []string {
	m := strings.ToLower(strings.TrimSpace(model))
	if list, ok := modelAliases[m]; ok {
		return list
	}

	out := []string{model}
	best := ""
	for alias := range modelAliases {
		if strings.HasPrefix(m, alias) && len(alias) > len(best) {
			best = alias
		}
	}
	for _, cand := range modelAliases[best] {
		if cand != m {
			out = append(out, cand)
		}
	}
	return out
}
