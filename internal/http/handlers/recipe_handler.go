// Recipe HTTP handlers.
//
// Exposes the direct generation endpoints:
//   - POST /recipes/generate       (user-supplied ingredients, creator AI_BARISTA)
//   - POST /recipes/auto-generate  (sampled ingredients, creator BREW_BOT)
//
// Both run the full pipeline and return the structured recipe with its
// identifiers, so clients never have to re-parse the rendered chat message.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
	"github.com/neuralbrew/go-brew-backend/internal/services"
)

// GenerateRecipeRequest is the JSON payload for direct generation. Both
// fields are optional: empty ingredients fall back to the mode default, and
// username is recorded only for log attribution.
type GenerateRecipeRequest struct {
	Ingredients string `json:"ingredients,omitempty" example:"milk, cinnamon"`
	Username    string `json:"username,omitempty" example:"neo"`
}

// GenerateRecipeResponse carries the persisted recipe plus the ID of the bot
// message announcing it.
type GenerateRecipeResponse struct {
	Recipe    *domain.Recipe `json:"recipe"`
	MessageID string         `json:"messageId"`
}

// GenerateRecipe runs the pipeline for user-supplied ingredient text.
func (h *Handlers) GenerateRecipe(c *gin.Context) {
	var req GenerateRecipeRequest
	// Body is optional: a bare POST generates with default ingredients.
	_ = c.ShouldBindJSON(&req)

	gen, err := h.recipeSvc.Generate(c.Request.Context(), req.Ingredients, services.CreatorBarista)
	if err != nil {
		h.failGenerate(c, err)
		return
	}
	ok(c, http.StatusOK, GenerateRecipeResponse{Recipe: gen.Recipe, MessageID: gen.MessageID})
}

// AutoGenerateRecipe runs the pipeline with a randomly sampled ingredient set.
func (h *Handlers) AutoGenerateRecipe(c *gin.Context) {
	gen, err := h.recipeSvc.GenerateAuto(c.Request.Context())
	if err != nil {
		h.failGenerate(c, err)
		return
	}
	ok(c, http.StatusOK, GenerateRecipeResponse{Recipe: gen.Recipe, MessageID: gen.MessageID})
}

func (h *Handlers) failGenerate(c *gin.Context, err error) {
	if errors.Is(err, services.ErrProviderUnconfigured) {
		fail(c, http.StatusInternalServerError, ErrCodeGenerateFailed, "generation provider not configured")
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeGenerateFailed, err.Error())
}
