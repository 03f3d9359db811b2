package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex implements driven.VectorIndex against a Pinecone index.
// The host URL is index-specific and comes from the Pinecone console.
type VectorIndex struct {
	host       string
	apiKey     string
	namespace  string
	httpClient *http.Client
}

// Config holds Pinecone connection configuration
type Config struct {
	// Host is the index endpoint (e.g. https://my-index-abc123.svc.us-east-1.pinecone.io)
	Host string

	// APIKey authenticates every request
	APIKey string

	// Namespace partitions records within the index
	Namespace string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(host, apiKey string) Config {
	return Config{
		Host:      host,
		APIKey:    apiKey,
		Namespace: "legal-corpus",
		Timeout:   30 * time.Second,
	}
}

// NewVectorIndex creates a new Pinecone-backed VectorIndex
func NewVectorIndex(cfg Config) (*VectorIndex, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone host is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone API key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &VectorIndex{
		host:      strings.TrimSuffix(cfg.Host, "/"),
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// pineconeVector represents a record in Pinecone's upsert format
type pineconeVector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors   []pineconeVector `json:"vectors"`
	Namespace string           `json:"namespace,omitempty"`
}

type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	Namespace       string         `json:"namespace,omitempty"`
	Filter          map[string]any `json:"filter,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string            `json:"id"`
		Score    float64           `json:"score"`
		Metadata map[string]string `json:"metadata"`
	} `json:"matches"`
}

type statsResponse struct {
	Namespaces map[string]struct {
		VectorCount int `json:"vectorCount"`
	} `json:"namespaces"`
	TotalVectorCount int `json:"totalVectorCount"`
}

// Upsert stores one vector with its metadata
func (p *VectorIndex) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	return p.UpsertBatch(ctx, []string{id}, [][]float32{vector}, []map[string]string{metadata})
}

// UpsertBatch stores multiple vectors in one request
func (p *VectorIndex) UpsertBatch(ctx context.Context, ids []string, vectors [][]float32, metadata []map[string]string) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids and vectors length mismatch: %d vs %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		return nil
	}

	records := make([]pineconeVector, len(ids))
	for i, id := range ids {
		rec := pineconeVector{ID: id, Values: vectors[i]}
		if i < len(metadata) {
			rec.Metadata = metadata[i]
		}
		records[i] = rec
	}

	req := upsertRequest{
		Vectors:   records,
		Namespace: p.namespace,
	}
	if err := p.doJSON(ctx, "/vectors/upsert", req, nil); err != nil {
		return fmt.Errorf("pinecone upsert failed: %w", err)
	}
	return nil
}

// Query returns the topK most similar records, optionally restricted by an
// exact-match metadata filter
func (p *VectorIndex) Query(ctx context.Context, vector []float32, topK int, filter driven.VectorFilter) ([]driven.VectorMatch, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}
	if topK <= 0 {
		topK = 10
	}

	req := queryRequest{
		Vector:          vector,
		TopK:            topK,
		Namespace:       p.namespace,
		IncludeMetadata: true,
	}
	if len(filter) > 0 {
		req.Filter = buildFilter(filter)
	}

	var resp queryResponse
	if err := p.doJSON(ctx, "/query", req, &resp); err != nil {
		return nil, fmt.Errorf("pinecone query failed: %w", err)
	}

	matches := make([]driven.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, driven.VectorMatch{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: m.Metadata,
		})
	}
	return matches, nil
}

// buildFilter converts an exact-match filter into Pinecone's $eq syntax
func buildFilter(filter driven.VectorFilter) map[string]any {
	out := make(map[string]any, len(filter))
	for k, v := range filter {
		out[k] = map[string]any{"$eq": v}
	}
	return out
}

// Count returns the number of stored vectors in the configured namespace
func (p *VectorIndex) Count(ctx context.Context) (int, error) {
	var resp statsResponse
	if err := p.doJSON(ctx, "/describe_index_stats", map[string]any{}, &resp); err != nil {
		return 0, fmt.Errorf("pinecone stats failed: %w", err)
	}

	if p.namespace != "" {
		if ns, ok := resp.Namespaces[p.namespace]; ok {
			return ns.VectorCount, nil
		}
		return 0, nil
	}
	return resp.TotalVectorCount, nil
}

// HealthCheck verifies the index is reachable
func (p *VectorIndex) HealthCheck(ctx context.Context) error {
	if _, err := p.Count(ctx); err != nil {
		return fmt.Errorf("pinecone health check failed: %w", err)
	}
	return nil
}

func (p *VectorIndex) doJSON(ctx context.Context, path string, reqBody any, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s - %s", resp.Status, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}
