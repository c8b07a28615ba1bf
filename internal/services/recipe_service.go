// Package services – RecipeService
//
// This file implements RecipeService, the application-level component that
// owns the recipe-generation pipeline: parse ingredient text, classify the
// generation mode, build the prompt, call the provider under a request
// timeout, then reconcile the output — or fall back to a deterministic
// template when the provider misbehaves. The resulting artifact is persisted
// as a recipe row plus a formatted bot chat message.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the generation mode and token count. Provider failures that fall back are
// logged but invisible to the end user, who always receives a valid artifact.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
	"github.com/neuralbrew/go-brew-backend/internal/gemini"
	"github.com/neuralbrew/go-brew-backend/internal/recipe"
	"github.com/neuralbrew/go-brew-backend/internal/store"
)

// Bot identities stamped on generated content.
const (
	// CreatorBarista tags recipes generated on behalf of a user request.
	CreatorBarista = "AI_BARISTA"
	// CreatorBrewBot tags recipes generated by the unattended auto-brew loop.
	CreatorBrewBot = "BREW_BOT"

	baristaUsername = "[AI_BARISTA]"
	brewBotUsername = "[BREW_BOT]"

	autoBrewPrefix = "🤖 NEW AUTO-GENERATED RECIPE:\n"
)

// GeneratedRecipe bundles everything a generation produces: the persisted
// recipe, the bot chat message announcing it, and the raw artifact.
type GeneratedRecipe struct {
	Recipe    *domain.Recipe
	MessageID string
	Artifact  recipe.Artifact
}

// RecipeService coordinates the generation pipeline and its persistence.
type RecipeService struct {
	// Store receives the generated recipe and its announcement message.
	Store store.Store
	// Generator is the external provider client; nil means credentials were
	// never configured and generation fails hard.
	Generator gemini.Generator
	// Timeout bounds a single provider call. Zero means no explicit bound.
	Timeout time.Duration
	// Sampler supplies random ingredient tokens for auto-generation.
	Sampler *recipe.Sampler
}

// Generate runs the full pipeline for free-form ingredient text and persists
// the result under the given creator tag.
//
// Provider errors (empty, unparseable, unavailable — including a timeout)
// recover locally through the fallback generator; only an unconfigured
// provider or a storage failure surfaces an error. Nothing is persisted until
// the pipeline has fully resolved, so an abandoned request never leaves a
// partial artifact behind.
func (s *RecipeService) Generate(ctx context.Context, rawIngredients, creator string) (*GeneratedRecipe, error) {
	tokens := recipe.ParseIngredients(rawIngredients)
	mode := recipe.Classify(tokens)

	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("recipe.mode", mode.String()),
			attribute.Int("recipe.tokens", len(tokens)),
			attribute.String("recipe.creator", creator),
		),
	)
	defer span.End()

	if s.Generator == nil {
		return nil, ErrProviderUnconfigured
	}

	artifact, err := s.generate(ctx, mode, tokens)
	if err != nil {
		if !gemini.IsProviderError(err) {
			return nil, err
		}
		log.Warn().Err(err).Stringer("mode", mode).Msg("provider failed, using fallback recipe")
		artifact = recipe.Fallback(mode, tokens)
	}

	return s.persist(ctx, artifact, creator, "")
}

// GenerateAuto runs the pipeline with a randomly sampled ingredient set and
// the BREW_BOT creator tag.
func (s *RecipeService) GenerateAuto(ctx context.Context) (*GeneratedRecipe, error) {
	tokens := s.Sampler.Pick()
	mode := recipe.Classify(tokens)

	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "GenerateAuto",
		trace.WithAttributes(
			attribute.String("recipe.mode", mode.String()),
			attribute.Int("recipe.tokens", len(tokens)),
		),
	)
	defer span.End()

	if s.Generator == nil {
		return nil, ErrProviderUnconfigured
	}

	artifact, err := s.generate(ctx, mode, tokens)
	if err != nil {
		if !gemini.IsProviderError(err) {
			return nil, err
		}
		log.Warn().Err(err).Stringer("mode", mode).Msg("provider failed, using fallback recipe")
		artifact = recipe.Fallback(mode, tokens)
	}

	return s.persist(ctx, artifact, CreatorBrewBot, autoBrewPrefix)
}

// generate calls the provider under the configured timeout and reconciles the
// result against the user tokens. A deadline hit is a provider-unavailable
// condition; there is no retry at this layer.
func (s *RecipeService) generate(ctx context.Context, mode recipe.Mode, tokens []string) (recipe.Artifact, error) {
	prompt := recipe.BuildPrompt(mode, tokens)

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	artifact, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil && !gemini.IsProviderError(err) {
			err = gemini.ErrUnavailable
		}
		return recipe.Artifact{}, err
	}
	return recipe.Reconcile(tokens, artifact), nil
}

// persist writes the recipe and its announcement message through the store.
func (s *RecipeService) persist(ctx context.Context, artifact recipe.Artifact, creator, prefix string) (*GeneratedRecipe, error) {
	rec := &domain.Recipe{
		Name:         artifact.Name,
		Ingredients:  artifact.Ingredients,
		Effects:      artifact.Effects,
		Instructions: artifact.Instructions,
		CreatedBy:    creator,
	}
	recipeID, err := s.Store.AddRecipe(ctx, rec)
	if err != nil {
		return nil, err
	}

	username := baristaUsername
	if creator == CreatorBrewBot {
		username = brewBotUsername
	}
	msg := &domain.Message{
		Username: username,
		Content:  prefix + recipe.FormatMessage(artifact),
		Kind:     domain.KindBot,
		RecipeID: &recipeID,
	}
	messageID, err := s.Store.AddMessage(ctx, msg)
	if err != nil {
		return nil, err
	}
	rec.MessageID = &messageID

	return &GeneratedRecipe{Recipe: rec, MessageID: messageID, Artifact: artifact}, nil
}
