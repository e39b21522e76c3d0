package assist

import (
	"context"
	"fmt"
	"strings"

	loremgen "github.com/bozaro/golorem"

	domainassist "inkstone/internal/domain/services/assist"
)

// LoremProvider is a mock completion provider generating lorem ipsum text.
// Used for development and tests without real API keys.
type LoremProvider struct {
	generator *loremgen.Lorem
}

// NewLoremProvider creates a new lorem ipsum provider.
func NewLoremProvider() *LoremProvider {
	return &LoremProvider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *LoremProvider) Name() string {
	return "lorem"
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-test"
func (p *LoremProvider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// Complete generates lorem ipsum text sized to the token budget.
// Estimate: 1 token ≈ 4 characters.
func (p *LoremProvider) Complete(ctx context.Context, req *domainassist.CompletionRequest) (string, error) {
	if !p.SupportsModel(req.Model) {
		return "", fmt.Errorf("model '%s' is not supported by lorem provider", req.Model)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	targetChars := maxTokens * 4

	var sb strings.Builder
	for sb.Len() < targetChars {
		sb.WriteString(p.generator.Paragraph(3, 5))
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String()), nil
}
