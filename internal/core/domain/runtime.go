package domain

import "sync"

// RuntimeConfig tracks which retrieval capabilities are available.
// Provider availability is probed at startup and can change at runtime,
// so the flags are mutable and thread-safe.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	SessionBackend string // "redis" or "postgres"

	// Dynamic capability flags (updated when providers change)
	embeddingAvailable bool
	vectorAvailable    bool
	llmAvailable       bool
	lexicalReady       bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(sessionBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		SessionBackend: sessionBackend,
	}
}

// EmbeddingAvailable returns whether the embedding provider is available
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// VectorAvailable returns whether the vector index is reachable
func (c *RuntimeConfig) VectorAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vectorAvailable
}

// LLMAvailable returns whether the completion provider is available
func (c *RuntimeConfig) LLMAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.llmAvailable
}

// LexicalReady returns whether the lexical index has been built
func (c *RuntimeConfig) LexicalReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lexicalReady
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetVectorAvailable updates the vector index availability flag
func (c *RuntimeConfig) SetVectorAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectorAvailable = available
}

// SetLLMAvailable updates the completion availability flag
func (c *RuntimeConfig) SetLLMAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.llmAvailable = available
}

// SetLexicalReady updates the lexical index flag
func (c *RuntimeConfig) SetLexicalReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lexicalReady = ready
}

// CanDoSemanticSearch returns true if embedding-based retrieval is possible
func (c *RuntimeConfig) CanDoSemanticSearch() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable && c.vectorAvailable
}

// CanDoHybridSearch returns true if both vector and lexical tiers are usable
func (c *RuntimeConfig) CanDoHybridSearch() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable && c.vectorAvailable && c.lexicalReady
}

// EffectiveSearchMethod returns the best retrieval tier the current
// capabilities support
func (c *RuntimeConfig) EffectiveSearchMethod() SearchMethod {
	if c.CanDoHybridSearch() {
		return SearchMethodHybrid
	}
	if c.CanDoSemanticSearch() {
		return SearchMethodVectorOnly
	}
	return SearchMethodBM25Fallback
}
