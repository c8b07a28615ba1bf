package recipe

import (
	"strings"
)

// FormatMessage renders an artifact as terminal-styled chat text: the name on
// a "> " line, ingredients as a box-drawing tree, then effects and
// instructions. This rendering is display-only; the structured artifact is
// what gets persisted and transmitted.
func FormatMessage(a Artifact) string {
	var b strings.Builder
	b.WriteString("> ")
	b.WriteString(a.Name)
	b.WriteByte('\n')
	for i, ing := range a.Ingredients {
		if i == len(a.Ingredients)-1 {
			b.WriteString("└ ")
		} else {
			b.WriteString("├ ")
		}
		b.WriteString(ing)
		b.WriteByte('\n')
	}
	b.WriteString("\nEffects: ")
	b.WriteString(strings.Join(a.Effects, ", "))
	b.WriteString("\n\nInstructions: ")
	b.WriteString(a.Instructions)
	return b.String()
}
