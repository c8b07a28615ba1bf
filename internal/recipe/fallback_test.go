package recipe

import (
	"reflect"
	"strings"
	"testing"
)

func TestFallback_NoTokensReturnsTemplate(t *testing.T) {
	cases := []struct {
		mode Mode
		name string
	}{
		{ModeBeverage, "Neural Network Espresso"},
		{ModeInfusion, "Circuit Infusion Green Tea"},
		{ModeSnack, "Neural Power Toast"},
	}
	for _, tc := range cases {
		out := Fallback(tc.mode, nil)
		if out.Name != tc.name {
			t.Fatalf("Fallback(%v) name = %q, want %q", tc.mode, out.Name, tc.name)
		}
		if len(out.Ingredients) == 0 || len(out.Effects) == 0 || out.Instructions == "" {
			t.Fatalf("Fallback(%v) returned incomplete artifact: %+v", tc.mode, out)
		}
	}
}

func TestFallback_Deterministic(t *testing.T) {
	a := Fallback(ModeBeverage, []string{"milk", "cinnamon"})
	b := Fallback(ModeBeverage, []string{"milk", "cinnamon"})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("fallback not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestFallback_ReconcilesTokensIntoTemplate(t *testing.T) {
	out := Fallback(ModeBeverage, []string{"milk", "cinnamon"})

	// Both tokens must appear (possibly normalized by containment match),
	// ahead of template leftovers.
	if !strings.Contains(strings.ToLower(out.Ingredients[0]), "milk") {
		t.Fatalf("first entry should resolve 'milk', got %v", out.Ingredients)
	}
	if !strings.Contains(strings.ToLower(out.Ingredients[1]), "cinnamon") {
		t.Fatalf("second entry should resolve 'cinnamon', got %v", out.Ingredients)
	}

	// The template's containment entry is claimed, not duplicated.
	seen := map[string]int{}
	for _, ing := range out.Ingredients {
		seen[strings.ToLower(ing)]++
	}
	for ing, n := range seen {
		if n > 1 {
			t.Fatalf("duplicate ingredient %q in %v", ing, out.Ingredients)
		}
	}
}

func TestFallback_InstructionsDirective(t *testing.T) {
	out := Fallback(ModeBeverage, []string{"milk", "cinnamon"})
	wantPrefix := "Start by preparing user ingredients: milk, cinnamon.\n"
	if !strings.HasPrefix(out.Instructions, wantPrefix) {
		t.Fatalf("expected preparation directive, got %q", out.Instructions)
	}
	// The template body follows the directive.
	if !strings.Contains(out.Instructions, "Pull a double shot of espresso") {
		t.Fatalf("template instructions missing: %q", out.Instructions)
	}
}

func TestFallback_TemplatesReturnFreshCopies(t *testing.T) {
	a := templateFor(ModeBeverage)
	a.Ingredients[0] = "mutated"
	b := templateFor(ModeBeverage)
	if b.Ingredients[0] == "mutated" {
		t.Fatalf("templateFor must return a fresh copy")
	}
}
