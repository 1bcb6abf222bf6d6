package llm

import "context"

// CompletionRequest is a single-turn chat completion: one user prompt plus
// sampling settings. The model is bound to the client.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer turns a prompt into the model's raw text reply.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Model() string
}
