package mocks

import (
	"context"
)

// MockCompletionService is a mock implementation of CompletionService for testing
type MockCompletionService struct {
	response string
	failNext bool
	prompts  []string
}

// NewMockCompletionService creates a new MockCompletionService
func NewMockCompletionService() *MockCompletionService {
	return &MockCompletionService{
		response: "Under the cited provisions, the position is as follows.",
	}
}

func (m *MockCompletionService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if m.failNext {
		m.failNext = false
		return "", context.DeadlineExceeded
	}
	m.prompts = append(m.prompts, userPrompt)
	return m.response, nil
}

func (m *MockCompletionService) Model() string {
	return "mock-completion-model"
}

func (m *MockCompletionService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockCompletionService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockCompletionService) SetResponse(response string) {
	m.response = response
}

func (m *MockCompletionService) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockCompletionService) Prompts() []string {
	return m.prompts
}
