package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newEmbeddingTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestEmbedReturnsVectorsInInputOrder(t *testing.T) {
	server := newEmbeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Input) != 2 {
			t.Errorf("expected 2 inputs, got %d", len(req.Input))
		}

		// Return out of order to exercise index-based reassembly
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0.4, 0.5}},
				{"index": 0, "embedding": []float32{0.1, 0.2}},
			},
			"model": "text-embedding-3-small",
		})
	})

	svc, err := NewOpenAIEmbedding("test-key", "", server.URL, 2)
	if err != nil {
		t.Fatalf("new embedding: %v", err)
	}

	vectors, err := svc.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 0.1 || vectors[1][0] != 0.4 {
		t.Errorf("vectors not reordered by index: %v", vectors)
	}
}

func TestEmbedAPIError(t *testing.T) {
	server := newEmbeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"message": "invalid key",
				"type":    "invalid_request_error",
				"code":    "invalid_api_key",
			},
		})
	})

	svc, err := NewOpenAIEmbedding("bad-key", "", server.URL, 0)
	if err != nil {
		t.Fatalf("new embedding: %v", err)
	}

	if _, err := svc.Embed(context.Background(), []string{"text"}); err == nil {
		t.Error("expected error from API failure")
	}
}

func TestEmbedQueryEmptyResponse(t *testing.T) {
	server := newEmbeddingTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	svc, err := NewOpenAIEmbedding("test-key", "", server.URL, 0)
	if err != nil {
		t.Fatalf("new embedding: %v", err)
	}

	if _, err := svc.EmbedQuery(context.Background(), "query"); err == nil {
		t.Error("expected error for missing embedding")
	}
}

func TestNewOpenAIEmbeddingValidation(t *testing.T) {
	if _, err := NewOpenAIEmbedding("", "model", "", 0); err == nil {
		t.Error("expected error for missing API key")
	}

	svc, err := NewOpenAIEmbedding("key", "text-embedding-3-large", "", 0)
	if err != nil {
		t.Fatalf("new embedding: %v", err)
	}
	if svc.Dimensions() != 3072 {
		t.Errorf("expected 3072 dims for 3-large, got %d", svc.Dimensions())
	}

	svc, err = NewOpenAIEmbedding("key", "text-embedding-3-small", "", 512)
	if err != nil {
		t.Fatalf("new embedding: %v", err)
	}
	if svc.Dimensions() != 512 {
		t.Errorf("expected explicit 512 dims, got %d", svc.Dimensions())
	}
}
