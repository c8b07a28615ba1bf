// Package recipe implements the recipe-generation pipeline: parsing free-form
// ingredient text, classifying the generation mode, building the provider
// prompt, reconciling provider output against the user's ingredients, and
// producing deterministic fallback recipes when the provider is unavailable.
//
// Everything in this package is pure: no network access, no clocks, no global
// mutable state. The only randomness lives in Sampler, which is seeded
// explicitly by its caller.
package recipe

// Mode is the generation domain a request belongs to. It is derived once from
// the parsed ingredient tokens and controls prompt phrasing and fallback
// content.
type Mode int

const (
	// ModeBeverage covers coffee-style drinks. It is the default when tokens
	// are empty or carry no recognizable signal.
	ModeBeverage Mode = iota
	// ModeInfusion covers tea and herbal infusions.
	ModeInfusion
	// ModeSnack covers quick-prep savory café snacks.
	ModeSnack
)

// String returns the human-readable descriptor used in prompts and logs.
func (m Mode) String() string {
	switch m {
	case ModeInfusion:
		return "tea infusion"
	case ModeSnack:
		return "savory cafe snack"
	default:
		return "coffee beverage"
	}
}

// Artifact is the structured result of generation before it is persisted as a
// Recipe. Ingredient order is priority order: entries resolved from user
// tokens come first.
type Artifact struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Effects      []string `json:"effects"`
	Instructions string   `json:"instructions"`
}
