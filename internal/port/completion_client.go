package port

import "context"

// CompletionClient sends one instruction/prompt pair to a chat-completion
// endpoint and returns the model's raw textual reply.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
