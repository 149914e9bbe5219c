// Package extraction sends card images to the external vision model and
// normalizes the raw responses into a strict contact field set.
package extraction

import (
	"context"
	"time"

	"github.com/jonathan/cardpulse/internal/capture"
	"github.com/jonathan/cardpulse/internal/llm"
	"github.com/jonathan/cardpulse/internal/prompts"
	"github.com/jonathan/cardpulse/internal/types"
)

// DefaultTimeout bounds the external extraction call. The provider gives no
// guarantee of returning; without a bound a hung call would leave the scan
// state stuck at "scanning".
const DefaultTimeout = 60 * time.Second

// Gateway calls the external vision model for card images.
type Gateway struct {
	client  llm.Client
	timeout time.Duration
}

// NewGateway creates a gateway around an LLM client. A non-positive timeout
// falls back to DefaultTimeout.
func NewGateway(client llm.Client, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{client: client, timeout: timeout}
}

// Extract sends the image plus the fixed instruction prompt to the external
// service and returns the raw textual response. Shape correctness is the
// normalizer's job, not this method's.
func (g *Gateway) Extract(ctx context.Context, img capture.Image) (string, error) {
	if g.client == nil {
		return "", &NotSignedInError{}
	}

	prompt := buildCardPrompt()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.client.GenerateVisionJSON(ctx, prompt, img.Data, img.Format(), llm.TierStandard)
	if err != nil {
		return "", &APICallError{
			Message: "failed to generate content from vision model",
			Cause:   err,
		}
	}
	return raw, nil
}

// ExtractFields runs the full extraction-and-normalization cycle.
func (g *Gateway) ExtractFields(ctx context.Context, img capture.Image) (types.CardFields, error) {
	raw, err := g.Extract(ctx, img)
	if err != nil {
		return types.CardFields{}, err
	}
	return Normalize(raw)
}

// buildCardPrompt constructs the fixed card-extraction instruction from the
// embedded template plus the generated schema block.
func buildCardPrompt() string {
	template := prompts.MustGet("extraction.json", "extract-card-fields")
	return prompts.Format(template, map[string]string{
		"Schema": llm.SchemaBlock(llm.CardFieldsSchema()),
	})
}
