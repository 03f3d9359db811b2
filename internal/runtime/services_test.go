package runtime

import (
	"context"
	"testing"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driven/mocks"
	"github.com/auslex-labs/auslex-core/internal/index/lexical"
)

func TestNewServices(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	if services.EmbeddingService() != nil {
		t.Error("expected nil embedding service initially")
	}
	if services.CompletionService() != nil {
		t.Error("expected nil completion service initially")
	}
	if services.VectorIndex() != nil {
		t.Error("expected nil vector index initially")
	}
	if services.LexicalIndex() != nil {
		t.Error("expected nil lexical index initially")
	}
	if services.Config() != config {
		t.Error("expected config to be returned")
	}
}

func TestSetEmbeddingServiceUpdatesFlags(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	if !config.EmbeddingAvailable() {
		t.Error("expected embedding available after setting")
	}

	services.SetEmbeddingService(nil)
	if config.EmbeddingAvailable() {
		t.Error("expected embedding unavailable after clearing")
	}
}

func TestSetVectorIndexUpdatesFlags(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	services.SetVectorIndex(mocks.NewMockVectorIndex())
	if !config.VectorAvailable() {
		t.Error("expected vector available after setting")
	}
}

func TestEffectiveSearchMethodDegrades(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	if got := config.EffectiveSearchMethod(); got != domain.SearchMethodBM25Fallback {
		t.Errorf("expected bm25_fallback with nothing set, got %s", got)
	}

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	services.SetVectorIndex(mocks.NewMockVectorIndex())
	if got := config.EffectiveSearchMethod(); got != domain.SearchMethodVectorOnly {
		t.Errorf("expected vector_only without lexical index, got %s", got)
	}

	idx := lexical.NewIndex()
	if err := idx.Build([]*domain.Document{{ID: "d1", Citation: "Test Act", Text: "some provision text"}}); err != nil {
		t.Fatalf("build: %v", err)
	}
	services.SwapLexicalIndex(idx)
	if got := config.EffectiveSearchMethod(); got != domain.SearchMethodHybrid {
		t.Errorf("expected hybrid with all tiers, got %s", got)
	}
}

func TestValidateAndSetEmbeddingRejectsUnhealthy(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	svc := mocks.NewMockEmbeddingService()
	svc.SetUnhealthy(true)
	if err := services.ValidateAndSetEmbedding(context.Background(), svc); err == nil {
		t.Error("expected error for unhealthy embedding service")
	}
	if config.EmbeddingAvailable() {
		t.Error("expected embedding unavailable after failed validation")
	}
}

func TestCloseClearsProviders(t *testing.T) {
	config := domain.NewRuntimeConfig("redis")
	services := NewServices(config)

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	services.SetCompletionService(mocks.NewMockCompletionService())

	if err := services.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if services.EmbeddingService() != nil || services.CompletionService() != nil {
		t.Error("expected providers cleared after close")
	}
	if config.EmbeddingAvailable() || config.LLMAvailable() {
		t.Error("expected capability flags cleared after close")
	}
}
