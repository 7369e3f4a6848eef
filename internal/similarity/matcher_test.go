package similarity

import "testing"

func TestLongestMatch(t *testing.T) {
	m := newSequenceMatcher([]rune("abxcd"), []rune("abcd"))
	blk := m.longestMatch(0, 5, 0, 4)
	if blk.A != 0 || blk.B != 0 || blk.Size != 2 {
		t.Errorf("longestMatch = %+v, want {A:0 B:0 Size:2}", blk)
	}
}

func TestLongestMatchEarliestTieBreak(t *testing.T) {
	// Two size-1 matches ("a" at 0 and 2); earliest in a wins.
	m := newSequenceMatcher([]rune("axa"), []rune("a"))
	blk := m.longestMatch(0, 3, 0, 1)
	if blk.A != 0 || blk.Size != 1 {
		t.Errorf("longestMatch = %+v, want match at A:0 Size:1", blk)
	}
}

func TestMatchingBlocksOrdered(t *testing.T) {
	m := newSequenceMatcher([]rune("abxcd"), []rune("abcd"))
	blocks := m.matchingBlocks()
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}
	// "ab" then "cd".
	if blocks[0].A != 0 || blocks[0].Size != 2 {
		t.Errorf("first block = %+v, want {A:0 B:0 Size:2}", blocks[0])
	}
	if blocks[1].A != 3 || blocks[1].B != 2 || blocks[1].Size != 2 {
		t.Errorf("second block = %+v, want {A:3 B:2 Size:2}", blocks[1])
	}
}

func TestMatchingBlocksEmpty(t *testing.T) {
	m := newSequenceMatcher(nil, []rune("abc"))
	if blocks := m.matchingBlocks(); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %+v", blocks)
	}
}

func TestMatchedCount(t *testing.T) {
	m := newSequenceMatcher([]rune("private function"), []rune("private method"))
	// "private " (8) plus the shared suffix letters inside the recursion.
	if got := m.matchedCount(); got < 8 {
		t.Errorf("matchedCount = %d, want >= 8", got)
	}
}

func TestMatchedCountIdentical(t *testing.T) {
	s := []rune("identical input")
	m := newSequenceMatcher(s, s)
	if got := m.matchedCount(); got != len(s) {
		t.Errorf("matchedCount = %d, want %d", got, len(s))
	}
}
