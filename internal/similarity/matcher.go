package similarity

// matchBlock is a maximal run of characters common to both sequences:
// a[A:A+Size] == b[B:B+Size].
type matchBlock struct {
	A, B, Size int
}

// sequenceMatcher finds the matching blocks shared by two rune sequences
// using Ratcliff/Obershelp style matching: locate the longest contiguous
// match, then recurse on the pieces to its left and right.
type sequenceMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newSequenceMatcher(a, b []rune) *sequenceMatcher {
	m := &sequenceMatcher{a: a, b: b, b2j: make(map[rune][]int, len(b))}
	for j, r := range b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	return m
}

// longestMatch returns the longest matching block within a[alo:ahi] and
// b[blo:bhi]. Of all maximal blocks it returns the one starting earliest
// in a, and of those the one starting earliest in b.
func (m *sequenceMatcher) longestMatch(alo, ahi, blo, bhi int) matchBlock {
	besti, bestj, bestsize := alo, blo, 0
	// j2len[j] holds the length of the match ending at a[i-1], b[j-1].
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return matchBlock{A: besti, B: bestj, Size: bestsize}
}

// matchingBlocks returns all matching blocks, ordered by position in a.
func (m *sequenceMatcher) matchingBlocks() []matchBlock {
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var blocks []matchBlock

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		blk := m.longestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if blk.Size == 0 {
			continue
		}
		blocks = append(blocks, blk)
		if s.alo < blk.A && s.blo < blk.B {
			queue = append(queue, span{s.alo, blk.A, s.blo, blk.B})
		}
		if blk.A+blk.Size < s.ahi && blk.B+blk.Size < s.bhi {
			queue = append(queue, span{blk.A + blk.Size, s.ahi, blk.B + blk.Size, s.bhi})
		}
	}

	// Order by position in a; the recursion emits them unordered.
	sortBlocks(blocks)
	return blocks
}

func sortBlocks(blocks []matchBlock) {
	for i := 1; i < len(blocks); i++ {
		for j := i; j > 0 && blocks[j].A < blocks[j-1].A; j-- {
			blocks[j], blocks[j-1] = blocks[j-1], blocks[j]
		}
	}
}

// matchedCount sums the lengths of all matching blocks.
func (m *sequenceMatcher) matchedCount() int {
	total := 0
	for _, blk := range m.matchingBlocks() {
		total += blk.Size
	}
	return total
}
