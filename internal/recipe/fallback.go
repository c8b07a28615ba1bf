package recipe

import (
	"strings"
)

// Fixed template artifacts, one per mode. Each satisfies the
// real-ingredients-only constraint by construction; template choice is purely
// a function of the mode, never of randomness.
func templateFor(mode Mode) Artifact {
	switch mode {
	case ModeInfusion:
		return Artifact{
			Name:        "Circuit Infusion Green Tea",
			Ingredients: []string{"Green tea leaves", "Hot water (175°F)", "Honey", "Fresh mint"},
			Effects:     []string{"Gentle sustained focus", "Calming aromatic lift"},
			Instructions: "1. Heat water to 175°F. 2. Steep green tea leaves 2 minutes. " +
				"3. Add honey and gently stir. 4. Bruise mint leaves lightly and add before serving.",
		}
	case ModeSnack:
		return Artifact{
			Name: "Neural Power Toast",
			Ingredients: []string{
				"Whole grain bread slice", "Avocado", "Cherry tomatoes",
				"Olive oil", "Sea salt", "Cracked black pepper",
			},
			Effects: []string{"Balanced energy", "Healthy fats for cognitive support"},
			Instructions: "1. Toast bread to medium. 2. Mash avocado onto toast. " +
				"3. Halve cherry tomatoes and arrange. 4. Drizzle olive oil. " +
				"5. Season with sea salt and pepper. Serve immediately.",
		}
	default:
		return Artifact{
			Name: "Neural Network Espresso",
			Ingredients: []string{
				"Double shot espresso", "Steamed whole milk",
				"Vanilla syrup", "Cinnamon powder",
			},
			Effects: []string{
				"Enhanced focus and alertness",
				"Improved cognitive function",
				"Sustained energy boost",
			},
			Instructions: "1. Pull a double shot of espresso into a 6oz cup. " +
				"2. Steam whole milk to 150°F with microfoam. 3. Add 0.5oz vanilla syrup to espresso. " +
				"4. Pour steamed milk creating latte art. 5. Dust with cinnamon powder and serve immediately.",
		}
	}
}

// Fallback produces a mode-appropriate artifact with zero external
// dependency. It is total and deterministic: two calls with the same inputs
// return identical artifacts.
//
// When the user supplied tokens, the template is reconciled against them so
// every token still appears in the ingredient list, and the instructions open
// with a preparation directive naming them.
func Fallback(mode Mode, tokens []string) Artifact {
	base := templateFor(mode)
	if len(tokens) == 0 {
		return base
	}
	out := Reconcile(tokens, base)
	out.Instructions = "Start by preparing user ingredients: " + strings.Join(tokens, ", ") + ".\n" + base.Instructions
	return out
}
