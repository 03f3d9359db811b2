package mocks

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
)

type vectorRecord struct {
	id       string
	vector   []float32
	metadata map[string]string
}

// MockVectorIndex is an in-memory cosine-similarity implementation of
// VectorIndex for testing
type MockVectorIndex struct {
	mu       sync.RWMutex
	records  map[string]vectorRecord
	failNext bool
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{
		records: make(map[string]vectorRecord),
	}
}

func (m *MockVectorIndex) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return context.DeadlineExceeded
	}
	m.records[id] = vectorRecord{id: id, vector: vector, metadata: metadata}
	return nil
}

func (m *MockVectorIndex) UpsertBatch(ctx context.Context, ids []string, vectors [][]float32, metadata []map[string]string) error {
	for i, id := range ids {
		var md map[string]string
		if i < len(metadata) {
			md = metadata[i]
		}
		if err := m.Upsert(ctx, id, vectors[i], md); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockVectorIndex) Query(ctx context.Context, vector []float32, topK int, filter driven.VectorFilter) ([]driven.VectorMatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failNext {
		m.failNext = false
		return nil, context.DeadlineExceeded
	}

	matches := make([]driven.VectorMatch, 0, len(m.records))
	for _, rec := range m.records {
		if !matchesFilter(rec.metadata, filter) {
			continue
		}
		matches = append(matches, driven.VectorMatch{
			ID:       rec.id,
			Score:    cosineSimilarity(vector, rec.vector),
			Metadata: rec.metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (m *MockVectorIndex) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func (m *MockVectorIndex) HealthCheck(ctx context.Context) error {
	return nil
}

func matchesFilter(metadata map[string]string, filter driven.VectorFilter) bool {
	for k, v := range filter {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Helper methods for testing

func (m *MockVectorIndex) SetFailNext(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = fail
}

func (m *MockVectorIndex) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]vectorRecord)
}
