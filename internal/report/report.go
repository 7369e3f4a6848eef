// Package report renders comparison results as static HTML: a score
// matrix page linking to one page per compared pair, with shared token
// blocks highlighted.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Writer renders result pages into an output directory.
type Writer struct {
	dir       string
	blockSize int
	logger    *zap.Logger
}

// NewWriter creates a report writer. blockSize is the number of
// consecutive shared tokens required before a run is highlighted.
func NewWriter(dir string, blockSize int, logger *zap.Logger) *Writer {
	if blockSize < 1 {
		blockSize = 1
	}
	return &Writer{dir: dir, blockSize: blockSize, logger: logger}
}

// ResultsFile is the name of the summary matrix page.
const ResultsFile = "_results.html"

var resultsTmpl = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Comparison results</title>
<style>
table { border-collapse: collapse; }
td, th { border: 1px solid #999; padding: 6px 10px; text-align: center; }
td.self { background: #eee; }
td.high { background: #f8d0d0; }
</style></head>
<body>
<h1>Similarity scores (%)</h1>
<table>
<tr><th></th>{{range .Names}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $row := .Matrix}}<tr><th>{{index $.Names $i}}</th>{{range $j, $v := $row}}{{if lt $v 0.0}}<td class="self">&mdash;</td>{{else}}<td{{if ge $v 50.0}} class="high"{{end}}><a href="{{index $.Links $i $j}}">{{printf "%.2f" $v}}</a></td>{{end}}{{end}}</tr>
{{end}}</table>
</body></html>
`))

var pairTmpl = template.Must(template.New("pair").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.NameA}} vs {{.NameB}}</title>
<style>
.doc { width: 46%; display: inline-block; vertical-align: top; margin: 1%; }
mark { background: #ffd54d; }
</style></head>
<body>
<h1>{{.NameA}} vs {{.NameB}}</h1>
<p>Sequence: {{printf "%.2f" .Sequence}}% &middot; Overlap: {{printf "%.2f" .Overlap}}% &middot; Jaccard: {{printf "%.2f" .Jaccard}}</p>
<div class="doc"><h2>{{.NameA}}</h2><p>{{.BodyA}}</p></div>
<div class="doc"><h2>{{.NameB}}</h2><p>{{.BodyB}}</p></div>
</body></html>
`))

// PairPage holds everything needed to render one pair comparison page.
type PairPage struct {
	Index        int
	NameA, NameB string
	TokensA      []string
	TokensB      []string
	Sequence     float64
	Overlap      float64
	Jaccard      float64
}

// pairFileName returns the file name for the i-th pair page.
func pairFileName(i int) string {
	return fmt.Sprintf("comparison_%d.html", i)
}

// WritePair renders a single pair page and returns its file name.
func (w *Writer) WritePair(p PairPage) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	markedA := markShared(p.TokensA, p.TokensB, w.blockSize)
	markedB := markShared(p.TokensB, p.TokensA, w.blockSize)

	data := struct {
		NameA, NameB               string
		Sequence, Overlap, Jaccard float64
		BodyA, BodyB               template.HTML
	}{
		NameA: p.NameA, NameB: p.NameB,
		Sequence: p.Sequence, Overlap: p.Overlap, Jaccard: p.Jaccard,
		BodyA: renderTokens(p.TokensA, markedA),
		BodyB: renderTokens(p.TokensB, markedB),
	}

	name := pairFileName(p.Index)
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return "", fmt.Errorf("create pair page: %w", err)
	}
	defer f.Close()
	if err := pairTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("render pair page: %w", err)
	}
	return name, nil
}

// WriteResults renders the score matrix page and returns its full path.
// matrix[i][j] < 0 marks the self-comparison diagonal. links[i][j] names
// the pair page for that cell.
func (w *Writer) WriteResults(names []string, matrix [][]float64, links [][]string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(w.dir, ResultsFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create results page: %w", err)
	}
	defer f.Close()

	data := struct {
		Names  []string
		Matrix [][]float64
		Links  [][]string
	}{names, matrix, links}
	if err := resultsTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("render results page: %w", err)
	}
	w.logger.Info("Results written", zap.String("path", path))
	return path, nil
}

// markShared flags every token of a that sits inside a run of blockSize
// or more consecutive tokens also appearing consecutively in b.
func markShared(a, b []string, blockSize int) []bool {
	marked := make([]bool, len(a))
	if len(a) == 0 || len(b) == 0 {
		return marked
	}

	// Positions of each token in b, for run extension checks.
	positions := make(map[string][]int, len(b))
	for j, t := range b {
		positions[t] = append(positions[t], j)
	}

	for i := 0; i < len(a); i++ {
		for _, j := range positions[a[i]] {
			run := 0
			for i+run < len(a) && j+run < len(b) && a[i+run] == b[j+run] {
				run++
			}
			if run >= blockSize {
				for k := i; k < i+run; k++ {
					marked[k] = true
				}
			}
		}
	}
	return marked
}

// renderTokens joins tokens with spaces, wrapping marked runs in <mark>.
func renderTokens(tokens []string, marked []bool) template.HTML {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteString(" ")
		}
		esc := template.HTMLEscapeString(t)
		if marked[i] {
			b.WriteString("<mark>" + esc + "</mark>")
		} else {
			b.WriteString(esc)
		}
	}
	return template.HTML(b.String())
}
