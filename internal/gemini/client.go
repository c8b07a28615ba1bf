// Package gemini implements the Generation Client: it sends recipe prompts to
// the Gemini API and decodes the schema-constrained response into a
// recipe.Artifact.
//
// The client performs no retries and no fallback of its own — it reports one
// of three provider errors (ErrEmpty, ErrUnparseable, ErrUnavailable) and
// leaves recovery policy to the caller.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/neuralbrew/go-brew-backend/internal/recipe"
)

// Provider error taxonomy. Callers branch with errors.Is.
var (
	// ErrEmpty means the provider answered but returned no content.
	ErrEmpty = errors.New("provider returned empty response")
	// ErrUnparseable means the content could not be decoded into the
	// declared artifact shape.
	ErrUnparseable = errors.New("provider response not parseable")
	// ErrUnavailable means the provider could not be reached at all
	// (transport, auth, or deadline).
	ErrUnavailable = errors.New("provider unavailable")
)

// IsProviderError reports whether err belongs to the provider error taxonomy,
// i.e. whether deterministic fallback generation is an appropriate recovery.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrEmpty) || errors.Is(err, ErrUnparseable) || errors.Is(err, ErrUnavailable)
}

// Generator is the contract the pipeline depends on. The concrete Client
// talks to Gemini; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (recipe.Artifact, error)
}

// artifactSchema constrains the provider response to the artifact shape, all
// fields mandatory. Mirrors the JSON shape declared inside the prompt.
var artifactSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":         {Type: genai.TypeString},
		"ingredients":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"effects":      {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"instructions": {Type: genai.TypeString},
	},
	Required: []string{"name", "ingredients", "effects", "instructions"},
}

// Client calls the Gemini API with a JSON response schema.
type Client struct {
	client *genai.Client
	model  string
}

// New constructs a Client for the given API key and model. An empty model
// selects the default.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// Model returns the model name the client generates with.
func (c *Client) Model() string { return c.model }

// Generate sends the prompt and decodes the structured response.
//
// The provided context bounds the call; a deadline hit surfaces as
// ErrUnavailable like any other transport failure.
func (c *Client) Generate(ctx context.Context, prompt string) (recipe.Artifact, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   artifactSchema,
		},
	)
	if err != nil {
		return recipe.Artifact{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return decodeArtifact(resp.Text())
}

// decodeArtifact validates raw provider text against the declared shape.
func decodeArtifact(raw string) (recipe.Artifact, error) {
	if strings.TrimSpace(raw) == "" {
		return recipe.Artifact{}, ErrEmpty
	}
	var a recipe.Artifact
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return recipe.Artifact{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if a.Name == "" || a.Instructions == "" || len(a.Ingredients) == 0 || len(a.Effects) == 0 {
		return recipe.Artifact{}, fmt.Errorf("%w: missing required fields", ErrUnparseable)
	}
	return a, nil
}
