// Package comparison runs pairwise similarity scoring across the stored
// document corpus and renders the results as HTML reports.
package comparison

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Robinak47/plagiarism-checker-api/internal/cache"
	"github.com/Robinak47/plagiarism-checker-api/internal/report"
	"github.com/Robinak47/plagiarism-checker-api/internal/similarity"
	"github.com/Robinak47/plagiarism-checker-api/internal/store"
	"go.uber.org/zap"
)

// ErrTooFewDocuments is returned when the corpus has fewer than two
// documents to compare.
var ErrTooFewDocuments = errors.New("at least two documents are required for comparison")

// DocumentStore is the persistence surface the engine needs.
type DocumentStore interface {
	ListDocuments(ctx context.Context) ([]*store.Document, error)
	GetDocument(ctx context.Context, id string) (*store.Document, error)
	SavePairScore(ctx context.Context, p *store.PairScore) error
}

// ScoreCache caches pair scores between runs. Implementations may be nil;
// the engine treats a missing cache as always-miss.
type ScoreCache interface {
	Get(ctx context.Context, docA, docB string) (*cache.PairScores, error)
	Set(ctx context.Context, docA, docB string, scores *cache.PairScores) error
}

// Engine coordinates scoring, caching, persistence, and report output.
type Engine struct {
	docs    DocumentStore
	cache   ScoreCache
	reports *report.Writer
	logger  *zap.Logger
}

// New creates a comparison engine. cache may be nil.
func New(docs DocumentStore, c ScoreCache, reports *report.Writer, logger *zap.Logger) *Engine {
	return &Engine{docs: docs, cache: c, reports: reports, logger: logger}
}

// Result is the outcome of a comparison run. Matrix holds the sequence
// ratio per pair, with -1 on self-comparison cells; Links holds the pair
// page file name for each scored cell.
type Result struct {
	RowNames   []string    `json:"row_names"`
	Names      []string    `json:"names"`
	Matrix     [][]float64 `json:"matrix"`
	Links      [][]string  `json:"links"`
	ReportPath string      `json:"report_path"`
}

// CompareAll scores every ordered pair of stored documents and writes the
// full report. Requires at least two documents.
func (e *Engine) CompareAll(ctx context.Context) (*Result, error) {
	docs, err := e.docs.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) < 2 {
		return nil, ErrTooFewDocuments
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}

	matrix := make([][]float64, len(docs))
	links := make([][]string, len(docs))
	fileInd := 0
	for i, a := range docs {
		matrix[i] = make([]float64, len(docs))
		links[i] = make([]string, len(docs))
		for j, b := range docs {
			if i == j {
				matrix[i][j] = -1
				continue
			}
			scores, err := e.scorePair(ctx, a, b)
			if err != nil {
				return nil, err
			}
			page, err := e.reports.WritePair(report.PairPage{
				Index:    fileInd,
				NameA:    a.Name,
				NameB:    b.Name,
				TokensA:  a.Tokens,
				TokensB:  b.Tokens,
				Sequence: scores.Sequence,
				Overlap:  scores.Overlap,
				Jaccard:  scores.Jaccard,
			})
			if err != nil {
				return nil, err
			}
			matrix[i][j] = scores.Sequence
			links[i][j] = page
			fileInd++
		}
	}

	path, err := e.reports.WriteResults(names, matrix, links)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Comparison complete",
		zap.Int("documents", len(docs)),
		zap.Int("pairs", fileInd))
	return &Result{RowNames: names, Names: names, Matrix: matrix, Links: links, ReportPath: path}, nil
}

// CompareOne scores a single document against the rest of the corpus.
func (e *Engine) CompareOne(ctx context.Context, id string) (*Result, error) {
	target, err := e.docs.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	docs, err := e.docs.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	var others []*store.Document
	for _, d := range docs {
		if d.ID != target.ID {
			others = append(others, d)
		}
	}
	if len(others) == 0 {
		return nil, ErrTooFewDocuments
	}

	names := make([]string, len(others))
	matrix := [][]float64{make([]float64, len(others))}
	links := [][]string{make([]string, len(others))}
	for j, b := range others {
		names[j] = b.Name
		scores, err := e.scorePair(ctx, target, b)
		if err != nil {
			return nil, err
		}
		page, err := e.reports.WritePair(report.PairPage{
			Index:    j,
			NameA:    target.Name,
			NameB:    b.Name,
			TokensA:  target.Tokens,
			TokensB:  b.Tokens,
			Sequence: scores.Sequence,
			Overlap:  scores.Overlap,
			Jaccard:  scores.Jaccard,
		})
		if err != nil {
			return nil, err
		}
		matrix[0][j] = scores.Sequence
		links[0][j] = page
	}

	path, err := e.reports.WriteResults(names, matrix, links)
	if err != nil {
		return nil, err
	}
	return &Result{
		RowNames:   []string{target.Name},
		Names:      names,
		Matrix:     matrix,
		Links:      links,
		ReportPath: path,
	}, nil
}

// scorePair computes (or retrieves) the three scores for an ordered pair
// and persists them.
func (e *Engine) scorePair(ctx context.Context, a, b *store.Document) (*cache.PairScores, error) {
	if e.cache != nil {
		cached, err := e.cache.Get(ctx, a.ID, b.ID)
		if err != nil {
			e.logger.Warn("score cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	scores := &cache.PairScores{
		Sequence: similarity.SimilarityRatio(a.Content, b.Content),
		Overlap:  similarity.OverlapScore(a.Tokens, b.Tokens),
		Jaccard:  similarity.JaccardScore(a.Tokens, b.Tokens),
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, a.ID, b.ID, scores); err != nil {
			e.logger.Warn("score cache write failed", zap.Error(err))
		}
	}
	if err := e.docs.SavePairScore(ctx, &store.PairScore{
		DocA:       a.ID,
		DocB:       b.ID,
		Sequence:   scores.Sequence,
		Overlap:    scores.Overlap,
		Jaccard:    scores.Jaccard,
		ComparedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("persist scores: %w", err)
	}
	return scores, nil
}
