package assist

import (
	"context"
)

// Provider is the opaque text-completion collaborator. It accepts a system
// instruction and a user instruction and returns a single completed text
// string; everything else about the provider is its own business.
type Provider interface {
	// Complete returns the completed text for the given instructions
	Complete(ctx context.Context, req *CompletionRequest) (string, error)

	// Name returns the provider name (e.g. "anthropic", "lorem")
	Name() string

	// SupportsModel returns true if the provider serves the given model
	SupportsModel(model string) bool
}

// CompletionRequest carries one completion call.
type CompletionRequest struct {
	System    string
	User      string
	Model     string
	MaxTokens int
}

// Service drafts chapter text with AI assistance.
type Service interface {
	// Draft builds the instruction pair from the manuscript's settings
	// context and the chapter's recent body, invokes the provider and
	// returns the completed text. Provider failures surface as a generic
	// retryable assistance error.
	Draft(ctx context.Context, req *DraftRequest) (string, error)
}

// DraftRequest represents an assistance invocation.
type DraftRequest struct {
	UserID       string `json:"-"`
	ManuscriptID string `json:"manuscript_id"`
	ChapterID    string `json:"chapter_id"`
	// Preset selects the prompt preset: "continue", "polish" or "summarize"
	Preset string `json:"preset"`
	// Instruction is the user's free-form request appended to the preset
	Instruction string `json:"instruction,omitempty"`
	Model       string `json:"model,omitempty"`
}
