package recipe

import (
	"math/rand"
)

// Ingredient categories the auto-brew bot samples from. These feed the normal
// pipeline as if a user had typed them, so classification, prompting, and
// reconciliation all behave identically for unattended generation.
var sampleCategories = [][]string{
	{"espresso", "cold brew", "arabica coffee", "ristretto"},
	{"oat milk", "whole milk", "almond milk", "heavy cream"},
	{"vanilla syrup", "caramel syrup", "honey", "brown sugar"},
	{"cinnamon", "nutmeg", "cocoa powder", "dark chocolate"},
	{"green tea", "chamomile", "ginger", "lemongrass"},
}

// Sampler picks random ingredient tokens for unattended recipe generation.
// It carries its own rand source so the rest of the pipeline stays
// deterministic and the selection is reproducible under a fixed seed.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler constructs a Sampler around the given source. Pass
// rand.New(rand.NewSource(seed)) for reproducible sampling in tests.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Pick returns between 2 and 4 tokens drawn from distinct categories, in
// category order. The category count bounds the result, so the token cap of
// the parser can never be exceeded.
func (s *Sampler) Pick() []string {
	n := 2 + s.rng.Intn(3)

	chosen := s.rng.Perm(len(sampleCategories))[:n]
	// Keep category order stable so equal seeds yield equal token sequences.
	picked := make([]bool, len(sampleCategories))
	for _, c := range chosen {
		picked[c] = true
	}

	out := make([]string, 0, n)
	for i, cat := range sampleCategories {
		if picked[i] {
			out = append(out, cat[s.rng.Intn(len(cat))])
		}
	}
	return out
}
