package recipe

import (
	"regexp"
	"strings"
)

// maxTokens caps how many ingredient tokens a single request may carry. The
// bound limits prompt-abuse surface; extra tokens are dropped silently.
const maxTokens = 8

// splitRE separates free-form ingredient text on commas, semicolons,
// newlines, and the standalone word "and".
var splitRE = regexp.MustCompile(`(?i)[,;\n]|\band\b`)

// ParseIngredients normalizes free-form user ingredient text into a bounded
// list of discrete tokens. Identical input always yields identical output.
func ParseIngredients(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := splitRE.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == maxTokens {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
