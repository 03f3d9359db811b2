package postgres

import (
	"context"
	"database/sql"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, body, citation, jurisdiction, doc_type, doc_date, url, source`

// Save creates a document
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, body, citation, jurisdiction, doc_type, doc_date, url, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			body = EXCLUDED.body,
			citation = EXCLUDED.citation,
			jurisdiction = EXCLUDED.jurisdiction,
			doc_type = EXCLUDED.doc_type,
			doc_date = EXCLUDED.doc_date,
			url = EXCLUDED.url,
			source = EXCLUDED.source
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Text,
		doc.Citation,
		string(doc.Jurisdiction),
		string(doc.Type),
		NullTime(doc.Date),
		doc.URL,
		doc.Source,
	)
	return err
}

// SaveBatch saves multiple documents in one transaction
func (s *DocumentStore) SaveBatch(ctx context.Context, docs []*domain.Document) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO documents (id, body, citation, jurisdiction, doc_type, doc_date, url, source)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				body = EXCLUDED.body,
				citation = EXCLUDED.citation,
				jurisdiction = EXCLUDED.jurisdiction,
				doc_type = EXCLUDED.doc_type,
				doc_date = EXCLUDED.doc_date,
				url = EXCLUDED.url,
				source = EXCLUDED.source
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, doc := range docs {
			_, err := stmt.ExecContext(ctx,
				doc.ID,
				doc.Text,
				doc.Citation,
				string(doc.Jurisdiction),
				string(doc.Type),
				NullTime(doc.Date),
				doc.URL,
				doc.Source,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves documents ordered by ID with pagination
func (s *DocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// All returns the entire corpus ordered by ID
func (s *DocumentStore) All(ctx context.Context) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// Count returns total document count
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// DeleteAll removes the corpus ahead of re-ingestion
func (s *DocumentStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var docDate sql.NullTime

	err := row.Scan(
		&doc.ID,
		&doc.Text,
		&doc.Citation,
		&doc.Jurisdiction,
		&doc.Type,
		&docDate,
		&doc.URL,
		&doc.Source,
	)
	if err != nil {
		return nil, err
	}

	doc.Date = TimePtr(docDate)
	return &doc, nil
}

func collectDocuments(rows *sql.Rows) ([]*domain.Document, error) {
	var docs []*domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
