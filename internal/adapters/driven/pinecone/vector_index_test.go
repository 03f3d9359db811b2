package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
)

func newTestIndex(t *testing.T, handler http.HandlerFunc) *VectorIndex {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	idx, err := NewVectorIndex(DefaultConfig(server.URL, "test-key"))
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	return idx
}

func TestUpsertBatchSendsRecords(t *testing.T) {
	var got upsertRequest
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vectors/upsert" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if key := r.Header.Get("Api-Key"); key != "test-key" {
			t.Errorf("unexpected api key %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.Write([]byte(`{"upsertedCount": 2}`))
	})

	err := idx.UpsertBatch(context.Background(),
		[]string{"doc-1", "doc-2"},
		[][]float32{{0.1, 0.2}, {0.3, 0.4}},
		[]map[string]string{{"jurisdiction": "nsw"}, nil},
	)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if len(got.Vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(got.Vectors))
	}
	if got.Vectors[0].ID != "doc-1" || got.Vectors[0].Metadata["jurisdiction"] != "nsw" {
		t.Errorf("unexpected first record %+v", got.Vectors[0])
	}
	if got.Namespace != "legal-corpus" {
		t.Errorf("unexpected namespace %q", got.Namespace)
	}
}

func TestUpsertBatchLengthMismatch(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	err := idx.UpsertBatch(context.Background(), []string{"a", "b"}, [][]float32{{0.1}}, nil)
	if err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestQueryMapsMatchesAndFilter(t *testing.T) {
	var got queryRequest
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{"id": "doc-1", "score": 0.93, "metadata": map[string]string{"jurisdiction": "cth"}},
				{"id": "doc-2", "score": 0.81},
			},
		})
	})

	matches, err := idx.Query(context.Background(), []float32{0.5, 0.5}, 5,
		driven.VectorFilter{"jurisdiction": "cth"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != "doc-1" || matches[0].Score != 0.93 {
		t.Errorf("unexpected first match %+v", matches[0])
	}
	if matches[0].Metadata["jurisdiction"] != "cth" {
		t.Errorf("metadata not carried through: %+v", matches[0].Metadata)
	}

	if got.TopK != 5 || !got.IncludeMetadata {
		t.Errorf("unexpected query request %+v", got)
	}
	eq, ok := got.Filter["jurisdiction"].(map[string]any)
	if !ok || eq["$eq"] != "cth" {
		t.Errorf("expected $eq filter, got %+v", got.Filter)
	}
}

func TestQueryEmptyVector(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	if _, err := idx.Query(context.Background(), nil, 5, nil); err == nil {
		t.Error("expected error for empty vector")
	}
}

func TestCountReadsNamespaceStats(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/describe_index_stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"namespaces": map[string]any{
				"legal-corpus": map[string]int{"vectorCount": 42},
				"other":        map[string]int{"vectorCount": 7},
			},
			"totalVectorCount": 49,
		})
	})

	count, err := idx.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 42 {
		t.Errorf("expected namespace count 42, got %d", count)
	}
}

func TestQueryAPIError(t *testing.T) {
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "vector dimension mismatch"}`))
	})

	if _, err := idx.Query(context.Background(), []float32{0.1}, 5, nil); err == nil {
		t.Error("expected error from API failure")
	}
}

func TestNewVectorIndexValidation(t *testing.T) {
	if _, err := NewVectorIndex(Config{APIKey: "key"}); err == nil {
		t.Error("expected error for missing host")
	}
	if _, err := NewVectorIndex(Config{Host: "http://localhost"}); err == nil {
		t.Error("expected error for missing API key")
	}
}
