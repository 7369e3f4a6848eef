package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrDocumentNotFound is returned when a document id has no row.
var ErrDocumentNotFound = errors.New("document not found")

// Document is a stored, already-extracted document.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Extension  string    `json:"extension"`
	SizeBytes  int64     `json:"size_bytes"`
	Content    string    `json:"-"`
	Tokens     []string  `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// SaveDocument upserts a document; re-uploading the same name replaces the
// previous content. On a name conflict the existing row keeps its id so
// pair_scores references stay valid; d.ID is rewritten to the surviving id.
func (s *Store) SaveDocument(ctx context.Context, d *Document) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO documents (id, name, extension, size_bytes, content, tokens, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			extension = EXCLUDED.extension,
			size_bytes = EXCLUDED.size_bytes,
			content = EXCLUDED.content,
			tokens = EXCLUDED.tokens,
			uploaded_at = EXCLUDED.uploaded_at
		RETURNING id`,
		d.ID, d.Name, d.Extension, d.SizeBytes, d.Content, d.Tokens, d.UploadedAt,
	)
	if err := row.Scan(&d.ID); err != nil {
		return fmt.Errorf("save document %s: %w", d.Name, err)
	}
	return nil
}

// GetDocument retrieves a single document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, extension, size_bytes, content, tokens, uploaded_at
		FROM documents WHERE id = $1`, id)

	var d Document
	err := row.Scan(&d.ID, &d.Name, &d.Extension, &d.SizeBytes, &d.Content, &d.Tokens, &d.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return &d, nil
}

// ListDocuments returns all documents ordered by name, matching the
// sorted directory listing the upload API exposes.
func (s *Store) ListDocuments(ctx context.Context) ([]*Document, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, extension, size_bytes, content, tokens, uploaded_at
		FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Name, &d.Extension, &d.SizeBytes, &d.Content, &d.Tokens, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and its scores.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
