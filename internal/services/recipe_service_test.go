package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/neuralbrew/go-brew-backend/internal/gemini"
	"github.com/neuralbrew/go-brew-backend/internal/recipe"
	"github.com/neuralbrew/go-brew-backend/internal/store"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// stubGenerator returns a canned artifact or error without any network.
type stubGenerator struct {
	artifact recipe.Artifact
	err      error
	prompts  []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (recipe.Artifact, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return recipe.Artifact{}, g.err
	}
	return g.artifact, nil
}

// blockingGenerator waits for the context to expire, then reports its error.
type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, _ string) (recipe.Artifact, error) {
	<-ctx.Done()
	return recipe.Artifact{}, ctx.Err()
}

func newRecipeService(gen gemini.Generator) (*RecipeService, *store.MemoryStore) {
	st := store.NewMemory()
	return &RecipeService{Store: st, Generator: gen}, st
}

func TestRecipeService_Generate_PersistsRecipeAndAnnouncement(t *testing.T) {
	gen := &stubGenerator{artifact: recipe.Artifact{
		Name:         "Quantum Latte",
		Ingredients:  []string{"Double shot espresso", "Steamed whole milk"},
		Effects:      []string{"Focus"},
		Instructions: "Pull the shot with milk, steam, pour.",
	}}
	svc, st := newRecipeService(gen)
	ctx := context.Background()

	got, err := svc.Generate(ctx, "milk", CreatorBarista)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.Recipe == nil || got.Recipe.ID == "" {
		t.Fatalf("recipe not persisted: %+v", got)
	}
	if got.Recipe.CreatedBy != CreatorBarista {
		t.Fatalf("creator = %q, want %q", got.Recipe.CreatedBy, CreatorBarista)
	}
	if got.Recipe.MessageID == nil || *got.Recipe.MessageID != got.MessageID {
		t.Fatalf("recipe should back-link its announcement message")
	}

	// Reconciliation ran: "milk" matched the provider's steamed milk entry.
	if got.Artifact.Ingredients[0] != "Steamed whole milk" {
		t.Fatalf("expected the matched ingredient first, got %v", got.Artifact.Ingredients)
	}

	msgs, _ := st.RecentMessages(ctx, 10)
	if len(msgs) != 1 {
		t.Fatalf("expected one announcement message, got %d", len(msgs))
	}
	m := msgs[0]
	if m.Username != "[AI_BARISTA]" || m.Kind != "bot" {
		t.Fatalf("unexpected announcement author: %q kind=%q", m.Username, m.Kind)
	}
	if m.RecipeID == nil || *m.RecipeID != got.Recipe.ID {
		t.Fatalf("announcement should reference the recipe row")
	}
	if !strings.HasPrefix(m.Content, "> Quantum Latte\n") {
		t.Fatalf("announcement should render the artifact, got %q", m.Content)
	}
}

func TestRecipeService_Generate_ProviderErrorFallsBack(t *testing.T) {
	for _, perr := range []error{gemini.ErrEmpty, gemini.ErrUnparseable, gemini.ErrUnavailable} {
		svc, st := newRecipeService(&stubGenerator{err: perr})

		got, err := svc.Generate(context.Background(), "milk, cinnamon", CreatorBarista)
		if err != nil {
			t.Fatalf("provider error %v should fall back, got %v", perr, err)
		}
		if got.Artifact.Name != "Neural Network Espresso" {
			t.Fatalf("expected the beverage fallback, got %q", got.Artifact.Name)
		}
		if !strings.HasPrefix(got.Artifact.Instructions, "Start by preparing user ingredients: milk, cinnamon.\n") {
			t.Fatalf("fallback should lead with the user ingredients, got %q", got.Artifact.Instructions)
		}
		if msgs, _ := st.RecentMessages(context.Background(), 10); len(msgs) != 1 {
			t.Fatalf("fallback result must still be announced")
		}
	}
}

func TestRecipeService_Generate_NonProviderErrorSurfaces(t *testing.T) {
	boom := errors.New("wire snapped")
	svc, st := newRecipeService(&stubGenerator{err: boom})

	if _, err := svc.Generate(context.Background(), "milk", CreatorBarista); !errors.Is(err, boom) {
		t.Fatalf("expected the raw error, got %v", err)
	}
	if msgs, _ := st.RecentMessages(context.Background(), 10); len(msgs) != 0 {
		t.Fatalf("nothing should be persisted on a hard failure")
	}
}

func TestRecipeService_Generate_NilGenerator(t *testing.T) {
	svc, _ := newRecipeService(nil)
	if _, err := svc.Generate(context.Background(), "milk", CreatorBarista); !errors.Is(err, ErrProviderUnconfigured) {
		t.Fatalf("expected ErrProviderUnconfigured, got %v", err)
	}
}

func TestRecipeService_Generate_TimeoutFallsBack(t *testing.T) {
	st := store.NewMemory()
	svc := &RecipeService{Store: st, Generator: blockingGenerator{}, Timeout: 10 * time.Millisecond}

	got, err := svc.Generate(context.Background(), "green tea", CreatorBarista)
	if err != nil {
		t.Fatalf("deadline should recover through the fallback, got %v", err)
	}
	if got.Artifact.Name == "" {
		t.Fatalf("fallback artifact expected")
	}
}

func TestRecipeService_Generate_ClassifiesFromTokens(t *testing.T) {
	gen := &stubGenerator{artifact: recipe.Artifact{
		Name: "X", Ingredients: []string{"Y"}, Effects: []string{"Z"}, Instructions: "W.",
	}}
	svc, _ := newRecipeService(gen)

	if _, err := svc.Generate(context.Background(), "lemongrass, mint", CreatorBarista); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "Tea Recipe Rules:") {
		t.Fatalf("botanical tokens should produce an infusion prompt")
	}
}

func TestRecipeService_GenerateAuto(t *testing.T) {
	gen := &stubGenerator{artifact: recipe.Artifact{
		Name:         "Midnight Cold Brew",
		Ingredients:  []string{"Cold brew concentrate"},
		Effects:      []string{"Alertness"},
		Instructions: "Dilute and serve over ice.",
	}}
	st := store.NewMemory()
	svc := &RecipeService{Store: st, Generator: gen, Sampler: recipe.NewSampler(newTestRand())}

	got, err := svc.GenerateAuto(context.Background())
	if err != nil {
		t.Fatalf("GenerateAuto: %v", err)
	}
	if got.Recipe.CreatedBy != CreatorBrewBot {
		t.Fatalf("creator = %q, want %q", got.Recipe.CreatedBy, CreatorBrewBot)
	}

	msgs, _ := st.RecentMessages(context.Background(), 10)
	if len(msgs) != 1 {
		t.Fatalf("expected one announcement, got %d", len(msgs))
	}
	if msgs[0].Username != "[BREW_BOT]" {
		t.Fatalf("auto announcements come from the brew bot, got %q", msgs[0].Username)
	}
	if !strings.HasPrefix(msgs[0].Content, "🤖 NEW AUTO-GENERATED RECIPE:\n") {
		t.Fatalf("auto announcements carry the banner prefix, got %q", msgs[0].Content)
	}
}

func TestRecipeService_GenerateAuto_NilGenerator(t *testing.T) {
	svc := &RecipeService{Store: store.NewMemory(), Sampler: recipe.NewSampler(newTestRand())}
	if _, err := svc.GenerateAuto(context.Background()); !errors.Is(err, ErrProviderUnconfigured) {
		t.Fatalf("expected ErrProviderUnconfigured, got %v", err)
	}
}
