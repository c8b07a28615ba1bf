package recipe

import (
	"strings"
	"testing"
)

func TestBuildPrompt_Pure(t *testing.T) {
	a := BuildPrompt(ModeBeverage, []string{"milk", "cinnamon"})
	b := BuildPrompt(ModeBeverage, []string{"milk", "cinnamon"})
	if a != b {
		t.Fatalf("BuildPrompt must be a pure function of its inputs")
	}
}

func TestBuildPrompt_ModeGuidelines(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeBeverage, "Coffee Recipe Rules:"},
		{ModeInfusion, "Tea Recipe Rules:"},
		{ModeSnack, "Snack Recipe Rules:"},
	}
	for _, tc := range cases {
		got := BuildPrompt(tc.mode, nil)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("BuildPrompt(%v) missing %q", tc.mode, tc.want)
		}
	}
}

func TestBuildPrompt_TokensMandateInclusion(t *testing.T) {
	got := BuildPrompt(ModeBeverage, []string{"milk", "cinnamon"})
	if !strings.Contains(got, "You must incorporate these user ingredients: milk, cinnamon.") {
		t.Fatalf("prompt missing the inclusion mandate:\n%s", got)
	}
	if !strings.Contains(got, "ADDITIONAL HARD REQUIREMENTS (USER INGREDIENTS PRESENT):") {
		t.Fatalf("prompt missing the per-token hard requirements block")
	}
}

func TestBuildPrompt_NoTokensUsesModeDefaultClause(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeBeverage, "using premium coffee ingredients and modern brewing techniques"},
		{ModeInfusion, "using real tea leaves or herbal ingredients"},
		{ModeSnack, "using real, quick-preparation cafe snack ingredients"},
	}
	for _, tc := range cases {
		got := BuildPrompt(tc.mode, nil)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("BuildPrompt(%v, nil) missing default clause %q", tc.mode, tc.want)
		}
		if strings.Contains(got, "USER INGREDIENTS PRESENT") {
			t.Fatalf("no-token prompt must not carry the user-ingredient block")
		}
	}
}

func TestBuildPrompt_DeclaresJSONShape(t *testing.T) {
	got := BuildPrompt(ModeInfusion, []string{"chamomile"})
	for _, frag := range []string{
		"Respond JSON only:",
		`"name"`,
		`"ingredients"`,
		`"effects"`,
		`"instructions"`,
	} {
		if !strings.Contains(got, frag) {
			t.Fatalf("prompt missing %q", frag)
		}
	}
}
