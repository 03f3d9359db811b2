package runtime

import (
	"context"
	"sync"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
	"github.com/auslex-labs/auslex-core/internal/index/lexical"
)

// Services holds references to swappable retrieval backends.
// The embedding and completion providers can be absent or replaced at
// runtime; the lexical index is rebuilt wholesale on re-ingestion and
// swapped in atomically. Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	// Dynamic providers (can be nil, updated at runtime)
	embeddingService  driven.EmbeddingService
	completionService driven.CompletionService
	vectorIndex       driven.VectorIndex

	// Rebuilt and swapped on ingestion
	lexicalIndex *lexical.Index
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// EmbeddingService returns the current embedding provider (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// CompletionService returns the current completion provider (may be nil)
func (s *Services) CompletionService() driven.CompletionService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completionService
}

// VectorIndex returns the current vector index (may be nil)
func (s *Services) VectorIndex() driven.VectorIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vectorIndex
}

// LexicalIndex returns the current lexical index (may be nil before the
// first build)
func (s *Services) LexicalIndex() *lexical.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lexicalIndex
}

// SetEmbeddingService updates the embedding provider.
// Closes the old provider if present. Updates config flags.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}

	s.embeddingService = svc
	s.config.SetEmbeddingAvailable(svc != nil)
}

// SetCompletionService updates the completion provider.
// Closes the old provider if present. Updates config flags.
func (s *Services) SetCompletionService(svc driven.CompletionService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completionService != nil {
		_ = s.completionService.Close()
	}

	s.completionService = svc
	s.config.SetLLMAvailable(svc != nil)
}

// SetVectorIndex updates the vector index backend
func (s *Services) SetVectorIndex(idx driven.VectorIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectorIndex = idx
	s.config.SetVectorAvailable(idx != nil)
}

// SwapLexicalIndex replaces the lexical index. Searches started before the
// swap keep ranking against the index they read; there is no partially
// built state visible to readers.
func (s *Services) SwapLexicalIndex(idx *lexical.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lexicalIndex = idx
	s.config.SetLexicalReady(idx.Ready())
}

// Close shuts down all providers
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.completionService != nil {
		_ = s.completionService.Close()
		s.completionService = nil
	}

	s.config.SetEmbeddingAvailable(false)
	s.config.SetLLMAvailable(false)

	return nil
}

// ValidateAndSetEmbedding validates connectivity before setting the
// embedding provider
func (s *Services) ValidateAndSetEmbedding(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		s.SetEmbeddingService(nil)
		return nil
	}

	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetEmbeddingService(svc)
	return nil
}

// ValidateAndSetCompletion validates connectivity before setting the
// completion provider
func (s *Services) ValidateAndSetCompletion(ctx context.Context, svc driven.CompletionService) error {
	if svc == nil {
		s.SetCompletionService(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetCompletionService(svc)
	return nil
}

// ValidateAndSetVectorIndex validates connectivity before setting the
// vector index
func (s *Services) ValidateAndSetVectorIndex(ctx context.Context, idx driven.VectorIndex) error {
	if idx == nil {
		s.SetVectorIndex(nil)
		return nil
	}

	if err := idx.HealthCheck(ctx); err != nil {
		return err
	}

	s.SetVectorIndex(idx)
	return nil
}
