package driven

import (
	"context"
)

// CompletionService is the black-box text-generation collaborator consumed
// by the research orchestrator. The retrieval and compliance cores never
// call it directly.
type CompletionService interface {
	// Complete generates a response for the given system and user prompts
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the completion service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the completion service
	Close() error
}
