// Package llm defines the chat model port used by the analysis service.
package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Named is implemented by providers that can report their model id for logs.
type Named interface {
	Model() string
}
