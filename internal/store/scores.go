package store

import (
	"context"
	"fmt"
	"time"
)

// PairScore is the persisted result of comparing two documents. Sequence
// and overlap are percentages in [0, 100]; jaccard is in [0, 1].
type PairScore struct {
	DocA       string    `json:"doc_a"`
	DocB       string    `json:"doc_b"`
	Sequence   float64   `json:"sequence"`
	Overlap    float64   `json:"overlap"`
	Jaccard    float64   `json:"jaccard"`
	ComparedAt time.Time `json:"compared_at"`
}

// SavePairScore upserts the score row for an ordered document pair.
// Overlap is direction-dependent, so (a, b) and (b, a) are distinct rows.
func (s *Store) SavePairScore(ctx context.Context, p *PairScore) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO pair_scores (doc_a, doc_b, sequence_score, overlap_score, jaccard_score, compared_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (doc_a, doc_b) DO UPDATE SET
			sequence_score = EXCLUDED.sequence_score,
			overlap_score = EXCLUDED.overlap_score,
			jaccard_score = EXCLUDED.jaccard_score,
			compared_at = EXCLUDED.compared_at`,
		p.DocA, p.DocB, p.Sequence, p.Overlap, p.Jaccard, p.ComparedAt,
	)
	if err != nil {
		return fmt.Errorf("save score %s/%s: %w", p.DocA, p.DocB, err)
	}
	return nil
}

// ListPairScores returns all persisted scores, most recent first.
func (s *Store) ListPairScores(ctx context.Context) ([]*PairScore, error) {
	rows, err := s.db.Query(ctx, `
		SELECT doc_a, doc_b, sequence_score, overlap_score, jaccard_score, compared_at
		FROM pair_scores ORDER BY compared_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var scores []*PairScore
	for rows.Next() {
		var p PairScore
		if err := rows.Scan(&p.DocA, &p.DocB, &p.Sequence, &p.Overlap, &p.Jaccard, &p.ComparedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, &p)
	}
	return scores, rows.Err()
}
