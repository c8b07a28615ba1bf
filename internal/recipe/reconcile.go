package recipe

import (
	"strings"
	"unicode"
)

// Synonym rewrites applied when a bare token has to be synthesized into the
// ingredient list because the provider produced no matching entry.
var synonymRewrites = map[string]string{
	"milk":   "Whole milk",
	"sugar":  "Brown sugar",
	"coffee": "Freshly ground espresso beans",
}

// Reconcile enforces the invariants the provider cannot be trusted to
// satisfy: every user token appears in the final ingredient list, ahead of
// any provider-invented entry, with no case-insensitive duplicates anywhere.
// It is total — any token list and any artifact (including one with an empty
// ingredient list) yields a valid result.
//
// Resolution per token, in original token order:
//  1. exact case-insensitive match against an unclaimed artifact entry;
//  2. else containment match (entry contains the token, case-insensitive);
//  3. else a synthesized normalized entry.
//
// A matched entry is consumed: later tokens cannot re-claim it. Tokens whose
// resolution duplicates an earlier resolved entry collapse into it.
// Unconsumed artifact entries follow the resolved block, deduplicated
// case-insensitively against it.
func Reconcile(tokens []string, a Artifact) Artifact {
	if len(tokens) == 0 {
		return a
	}

	existing := a.Ingredients
	claimed := make([]bool, len(existing))
	resolved := make([]string, 0, len(tokens)+len(existing))
	seen := make(map[string]struct{}, len(tokens)+len(existing))

	for _, tok := range tokens {
		lc := strings.ToLower(tok)
		exact, contains := -1, -1
		for i, ing := range existing {
			if claimed[i] {
				continue
			}
			ingLc := strings.ToLower(ing)
			if exact == -1 && ingLc == lc {
				exact = i
			}
			if contains == -1 && strings.Contains(ingLc, lc) {
				contains = i
			}
		}
		idx := exact
		if idx == -1 {
			idx = contains
		}
		var entry string
		if idx != -1 {
			entry = existing[idx]
			claimed[idx] = true
		} else {
			entry = NormalizeIngredient(tok)
		}
		if _, dup := seen[strings.ToLower(entry)]; dup {
			continue
		}
		seen[strings.ToLower(entry)] = struct{}{}
		resolved = append(resolved, entry)
	}

	final := resolved
	for i, ing := range existing {
		if claimed[i] {
			continue
		}
		if _, dup := seen[strings.ToLower(ing)]; dup {
			continue
		}
		seen[strings.ToLower(ing)] = struct{}{}
		final = append(final, ing)
	}

	out := a
	out.Ingredients = final
	if !strings.Contains(strings.ToLower(out.Instructions), strings.ToLower(tokens[0])) {
		out.Instructions = "Use the user ingredients first: " + strings.Join(tokens, ", ") + ".\n" + out.Instructions
	}
	return out
}

// NormalizeIngredient turns a bare user token into a presentable ingredient
// entry: known synonyms are rewritten, everything else gets its first rune
// capitalized.
func NormalizeIngredient(raw string) string {
	if rewritten, ok := synonymRewrites[strings.ToLower(raw)]; ok {
		return rewritten
	}
	r := []rune(raw)
	if len(r) == 0 {
		return raw
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
