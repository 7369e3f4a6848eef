package textproc

import (
	"reflect"
	"testing"
)

func TestTokenizeLowercasesAndSplits(t *testing.T) {
	got := Tokenize("Plagiarism Detection")
	want := []string{"plagiarism", "detection"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeDropsStopWords(t *testing.T) {
	got := Tokenize("the cat and the dog")
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeStripsNumbers(t *testing.T) {
	got := Tokenize("chapter 12 covers 3rd paragraph")
	want := []string{"chapter", "cover", "paragraph"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeStripsPunctuation(t *testing.T) {
	got := Tokenize("results, finally! (checked)")
	want := []string{"result", "finally", "check"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizePreservesDuplicatesAndOrder(t *testing.T) {
	got := Tokenize("copy copy original copy")
	want := []string{"copy", "copy", "original", "copy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty", got)
	}
	// All stop words collapses to nothing.
	if got := Tokenize("the of and"); len(got) != 0 {
		t.Errorf("Tokenize(stop words) = %v, want empty", got)
	}
}

func TestLemmatize(t *testing.T) {
	cases := map[string]string{
		"studies":   "study",
		"classes":   "class",
		"running":   "runn",
		"walked":    "walk",
		"documents": "document",
		"class":     "class",
		"bus":       "bus",
		"cat":       "cat",
		"is":        "is",
	}
	for in, want := range cases {
		if got := Lemmatize(in); got != want {
			t.Errorf("Lemmatize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsStopWord(t *testing.T) {
	if !IsStopWord("the") {
		t.Error("expected 'the' to be a stop word")
	}
	if IsStopWord("plagiarism") {
		t.Error("did not expect 'plagiarism' to be a stop word")
	}
}
