// Package llm provides the chat-completion client used by the AI-assisted
// match strategy and the shopping assistant.
package llm

import "context"

// Client generates a completion for a prompt. Implementations must honor
// ctx cancellation; callers treat any error as "service unavailable" and
// fall back to local strategies.
type Client interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
