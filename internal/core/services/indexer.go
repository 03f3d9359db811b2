package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driving"
	"github.com/auslex-labs/auslex-core/internal/index/lexical"
	"github.com/auslex-labs/auslex-core/internal/postprocessors"
	"github.com/auslex-labs/auslex-core/internal/runtime"
)

// Ensure indexerService implements IndexingService
var _ driving.IndexingService = (*indexerService)(nil)

const (
	// embedBatchSize bounds how many documents go to the embedding
	// provider per request
	embedBatchSize = 100

	// maxEmbedChars truncates corpus text before embedding, roughly 8000
	// tokens at 4 chars per token. Queries are never truncated.
	maxEmbedChars = 32000
)

// indexerService manages corpus ingestion and index builds
type indexerService struct {
	documentStore driven.DocumentStore
	taskQueue     driven.TaskQueue
	services      *runtime.Services
	prep          *postprocessors.Pipeline
	logger        *slog.Logger
}

// NewIndexerService creates a new IndexingService
func NewIndexerService(
	documentStore driven.DocumentStore,
	taskQueue driven.TaskQueue,
	services *runtime.Services,
	logger *slog.Logger,
) driving.IndexingService {
	return &indexerService{
		documentStore: documentStore,
		taskQueue:     taskQueue,
		services:      services,
		prep:          postprocessors.DefaultPipeline(maxEmbedChars),
		logger:        logger,
	}
}

// Ingest loads documents into the corpus store. With replace set the
// existing corpus is dropped first; ingestion alone does not rebuild
// indexes, so searches keep working against the old snapshot until
// BuildIndexes runs.
func (s *indexerService) Ingest(ctx context.Context, docs []*domain.Document, replace bool) (int, error) {
	if len(docs) == 0 {
		return 0, fmt.Errorf("%w: no documents to ingest", domain.ErrInvalidInput)
	}
	for _, doc := range docs {
		if doc.ID == "" || doc.Text == "" {
			return 0, fmt.Errorf("%w: document missing id or text", domain.ErrInvalidInput)
		}
	}

	if replace {
		if err := s.documentStore.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("clear corpus: %w", err)
		}
	}
	if err := s.documentStore.SaveBatch(ctx, docs); err != nil {
		return 0, fmt.Errorf("save corpus: %w", err)
	}

	s.logger.Info("corpus ingested", "documents", len(docs), "replace", replace)
	return len(docs), nil
}

// BuildIndexes rebuilds the lexical index and repopulates the vector
// index from the stored corpus. The lexical index is always rebuilt; the
// vector population is skipped when the index already holds the corpus,
// unless force is set. Searches in flight keep using the old lexical
// index until the swap.
func (s *indexerService) BuildIndexes(ctx context.Context, force bool) (*domain.IndexReport, error) {
	start := time.Now()

	docs, err := s.documentStore.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrCorpusEmpty
	}

	report := &domain.IndexReport{Documents: len(docs)}

	// Lexical first: it has no external dependencies and restores the
	// fallback tier after a restart
	lexIndex := lexical.NewIndex()
	if err := lexIndex.Build(docs); err != nil {
		return nil, fmt.Errorf("build lexical index: %w", err)
	}
	s.services.SwapLexicalIndex(lexIndex)
	report.LexicalTerms = lexIndex.Terms()

	embedding := s.services.EmbeddingService()
	vectorIndex := s.services.VectorIndex()
	if embedding == nil || vectorIndex == nil {
		report.Skipped = true
		report.SkippedReason = "no embedding or vector backend configured"
		report.Took = time.Since(start)
		s.logger.Warn("vector population skipped", "reason", report.SkippedReason)
		return report, nil
	}

	if !force {
		count, err := vectorIndex.Count(ctx)
		if err == nil && count >= len(docs) {
			report.Skipped = true
			report.SkippedReason = fmt.Sprintf("vector index already holds %d vectors", count)
			report.Took = time.Since(start)
			s.logger.Info("vector population skipped", "reason", report.SkippedReason)
			return report, nil
		}
	}

	for offset := 0; offset < len(docs); offset += embedBatchSize {
		end := offset + embedBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[offset:end]

		ids := make([]string, len(batch))
		texts := make([]string, len(batch))
		metadata := make([]map[string]string, len(batch))
		for i, doc := range batch {
			ids[i] = doc.ID
			text, shortened := s.prep.Prepare(doc.SearchText())
			if shortened {
				report.Truncated++
			}
			texts[i] = text
			metadata[i] = doc.Metadata()
		}

		vectors, err := embedding.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch at %d: %w", offset, err)
		}
		if err := vectorIndex.UpsertBatch(ctx, ids, vectors, metadata); err != nil {
			return nil, fmt.Errorf("upsert batch at %d: %w", offset, err)
		}
		report.Embedded += len(batch)

		s.logger.Debug("vector batch upserted", "offset", offset, "size", len(batch))
	}

	report.Took = time.Since(start)
	s.logger.Info("index build complete",
		"documents", report.Documents,
		"embedded", report.Embedded,
		"truncated", report.Truncated,
		"lexical_terms", report.LexicalTerms,
		"took", report.Took)
	return report, nil
}

// EnqueueRebuild schedules an index rebuild on the worker queue
func (s *indexerService) EnqueueRebuild(ctx context.Context, force bool) (*domain.Task, error) {
	task := domain.NewIndexCorpusTask(force)
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		return nil, fmt.Errorf("enqueue rebuild: %w", err)
	}
	s.logger.Info("reindex task enqueued", "task_id", task.ID, "force", force)
	return task, nil
}
