package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestMarkShared(t *testing.T) {
	a := []string{"the", "quick", "brown", "fox", "jumps"}
	b := []string{"quick", "brown", "wolf"}

	marked := markShared(a, b, 2)
	want := []bool{false, true, true, false, false}
	for i := range want {
		if marked[i] != want[i] {
			t.Errorf("marked[%d] = %v, want %v (full: %v)", i, marked[i], want[i], marked)
		}
	}
}

func TestMarkSharedRespectsBlockSize(t *testing.T) {
	a := []string{"one", "shared", "two"}
	b := []string{"shared"}

	// A single shared token is below the block size of 2.
	marked := markShared(a, b, 2)
	for i, m := range marked {
		if m {
			t.Errorf("marked[%d] = true, want all false", i)
		}
	}

	marked = markShared(a, b, 1)
	if !marked[1] {
		t.Error("expected shared token marked at block size 1")
	}
}

func TestMarkSharedEmpty(t *testing.T) {
	if marked := markShared(nil, []string{"a"}, 2); len(marked) != 0 {
		t.Errorf("expected empty mask, got %v", marked)
	}
}

func TestWritePairAndResults(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 2, zap.NewNop())

	name, err := w.WritePair(PairPage{
		Index:   0,
		NameA:   "essay_a",
		NameB:   "essay_b",
		TokensA: []string{"copied", "passage", "here"},
		TokensB: []string{"copied", "passage", "elsewhere"},
		Sequence: 73.5, Overlap: 66.67, Jaccard: 0.5,
	})
	if err != nil {
		t.Fatalf("WritePair: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	if !strings.Contains(html, "<mark>copied</mark>") {
		t.Errorf("pair page missing highlighted block: %s", html)
	}
	if !strings.Contains(html, "66.67") {
		t.Errorf("pair page missing overlap score: %s", html)
	}

	path, err := w.WriteResults(
		[]string{"essay_a", "essay_b"},
		[][]float64{{-1, 73.5}, {73.5, -1}},
		[][]string{{"", name}, {name, ""}},
	)
	if err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html = string(data)
	if !strings.Contains(html, "73.50") {
		t.Errorf("results page missing score: %s", html)
	}
	if !strings.Contains(html, name) {
		t.Errorf("results page missing pair link: %s", html)
	}
	if !strings.Contains(html, "&mdash;") {
		t.Errorf("results page missing diagonal marker: %s", html)
	}
}

func TestRenderTokensEscapes(t *testing.T) {
	got := string(renderTokens([]string{"<script>"}, []bool{false}))
	if strings.Contains(got, "<script>") {
		t.Errorf("token not escaped: %q", got)
	}
}
