package port

import "context"

// LLM is the raw model call boundary: prompts in, text out. Implementations
// own transport, authentication, and generation parameters.
type LLM interface {
	// Chat sends a system and user prompt and returns the response text.
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
