package recipe

import (
	"fmt"
	"strings"
)

// Mode-specific structural rules injected into the prompt.
const (
	beverageGuidelines = `Coffee Recipe Rules:
- 4-6 real coffee-related ingredients max
- Only real, purchasable coffee & cafe ingredients
- Professional barista style steps
- Include extraction details (shot volume, brew ratio, water temperature)`

	infusionGuidelines = `Tea Recipe Rules:
- 3-6 real tea / herbal infusion ingredients
- Use real tea bases or herbs (NO fictional tech ingredients)
- Include proper steeping temperature & time`

	snackGuidelines = `Snack Recipe Rules:
- 4-8 real, simple snack ingredients
- Must be a quick-prep cafe snack (sandwich, wrap, toast, salad bowl, energy bites, etc.)
- Provide concise assembly/prep steps (no baking unless absolutely necessary & <15 min)`
)

// BuildPrompt assembles the generation instruction for the provider. It is a
// pure function of (mode, tokens): same inputs, same prompt.
//
// The prompt carries the persona framing, the hard real-ingredients
// constraint, the mode's structural rules, the per-token inclusion mandate
// when the user supplied ingredients, and the required JSON output shape.
func BuildPrompt(mode Mode, tokens []string) string {
	var guidelines string
	switch mode {
	case ModeInfusion:
		guidelines = infusionGuidelines
	case ModeSnack:
		guidelines = snackGuidelines
	default:
		guidelines = beverageGuidelines
	}

	var ingredientsClause string
	if len(tokens) > 0 {
		ingredientsClause = fmt.Sprintf(
			"You must incorporate these user ingredients: %s. They must appear explicitly (normalized if needed) and be primary.",
			strings.Join(tokens, ", "))
	} else {
		switch mode {
		case ModeInfusion:
			ingredientsClause = "using real tea leaves or herbal ingredients"
		case ModeSnack:
			ingredientsClause = "using real, quick-preparation cafe snack ingredients"
		default:
			ingredientsClause = "using premium coffee ingredients and modern brewing techniques"
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional creator at \"Neural Brew\" - a modern tech-themed café. Create a sophisticated %s recipe %s.\n\n", mode, ingredientsClause)

	b.WriteString("IMPORTANT REQUIREMENTS:\n")
	if mode == ModeBeverage {
		b.WriteString("- Use ONLY real, purchasable coffee ingredients (coffee beans, milk, syrups, spices, etc.)\n")
	}
	b.WriteString(`- NO fictional or fake ingredients
- NO slang or unprofessional language
- Every ingredient must be a real item purchasable at a cafe or grocery store
- If user provided ingredients, they must be the primary focus of the recipe

Recipe Guidelines:
`)
	b.WriteString(guidelines)
	b.WriteString(`
- Modern presentation with subtle tech-themed naming only for the recipe title
- Include realistic preparation steps using standard cafe equipment
- Effects should be realistic benefits (flavor notes, mood, energy, focus, calming, satiation, etc.)

Examples of ACCEPTABLE real ingredients:
- Espresso beans, arabica coffee, cold brew concentrate
- Whole milk, oat milk, almond milk, heavy cream
- Vanilla syrup, caramel syrup, cinnamon, nutmeg
- Dark chocolate, cocoa powder, honey, brown sugar
- Steamed milk foam, ice cubes, hot water
- (Tea) green tea, black tea, oolong, chamomile, peppermint, ginger, lemongrass, hibiscus
- (Snack) bread, cheese, eggs, chicken, lettuce, spinach, tomato, herbs, olive oil, nuts, seeds

Examples of UNACCEPTABLE fake ingredients:
- "Neural foam", "quantum milk", "digital compounds", "matrix syrup"
- Any fictional or made-up ingredients

`)

	if len(tokens) > 0 {
		b.WriteString(`ADDITIONAL HARD REQUIREMENTS (USER INGREDIENTS PRESENT):
- Each of the user supplied ingredients MUST appear as its own item in the ingredients array (you may normalize wording e.g. 'milk' -> 'whole milk' but MUST still include it clearly)
- Do NOT add completely unrelated flavors that would overshadow the user ingredients
- Prefer 1:1 mapping of user ingredient tokens to array entries (split on commas or the word 'and')
`)
	} else {
		b.WriteString("ADDITIONAL HARD REQUIREMENTS:\n- Keep ingredients realistic and purchasable\n")
	}
	b.WriteString("- Never invent sci-fi ingredients.\n\n")

	b.WriteString(`Respond strictly in JSON format (no markdown, no commentary). If mode is snack, instructions must be concise assembly steps. If tea, include steep temperature & time. If coffee, include extraction details.
Respond JSON only:
{
  "name": "Professional recipe name with subtle tech theme",
  "ingredients": ["Real ingredient 1", "Real ingredient 2", "Real ingredient 3", ...],
  "effects": ["Realistic benefit 1", "Realistic benefit 2", ...],
  "instructions": "Step-by-step professional preparation using real cafe equipment and techniques"
}`)

	return b.String()
}
