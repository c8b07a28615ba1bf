package recipe

import (
	"regexp"
	"strings"
)

// Indicator vocabularies for mode detection. Matching is case-insensitive
// containment: a token "green tea" hits the "tea" indicator.
var (
	beverageIndicators = []string{
		"espresso", "coffee", "arabica", "robusta", "cold brew", "americano",
		"latte", "cappuccino", "mocha", "ristretto", "macchiato", "brew",
	}
	infusionIndicators = []string{
		"tea", "chai", "matcha", "earl grey", "oolong", "green tea",
		"black tea", "herbal", "mint", "chamomile", "hibiscus",
	}
	savoryIndicators = []string{
		"chicken", "beef", "pork", "egg", "eggs", "cheese", "onion", "garlic",
		"tomato", "spinach", "bread", "rice", "noodle", "noodles", "potato",
		"paneer", "tofu",
	}

	// botanicalRE catches generic infusable plants that carry no explicit
	// tea indicator ("ginger", "lemongrass", "hibiscus flower", …).
	botanicalRE = regexp.MustCompile(`leaf|herb|flower|ginger|lemongrass|mint`)
)

// Classify selects the generation mode for a token set.
//
// Savory presence is the strongest signal and overrides everything else: a
// beverage recipe built around chicken or cheese would break the
// real-ingredients constraint, so any savory hit forces ModeSnack even when
// beverage indicators are present too. Next, infusion indicators without any
// beverage indicator select ModeInfusion, as do purely botanical tokens that
// match no vocabulary at all. Everything else (including an empty token set)
// defaults to ModeBeverage.
func Classify(tokens []string) Mode {
	if len(tokens) == 0 {
		return ModeBeverage
	}

	var hasBeverage, hasInfusion, hasSavory, hasBotanical bool
	for _, t := range tokens {
		lc := strings.ToLower(t)
		if containsAny(lc, savoryIndicators) {
			hasSavory = true
		}
		if containsAny(lc, infusionIndicators) {
			hasInfusion = true
		}
		if containsAny(lc, beverageIndicators) {
			hasBeverage = true
		}
		if botanicalRE.MatchString(lc) {
			hasBotanical = true
		}
	}

	switch {
	case hasSavory:
		return ModeSnack
	case hasInfusion && !hasBeverage:
		return ModeInfusion
	case !hasBeverage && !hasInfusion && hasBotanical:
		return ModeInfusion
	default:
		return ModeBeverage
	}
}

// containsAny reports whether s contains any of the given needles.
func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
