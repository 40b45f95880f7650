package compact

import "slices"

// PageSet is a set of 1-based page positions.
type PageSet map[int]struct{}

func (s PageSet) Add(position int) {
	s[position] = struct{}{}
}

func (s PageSet) Contains(position int) bool {
	_, ok := s[position]
	return ok
}

// Sorted returns the positions in ascending order.
func (s PageSet) Sorted() []int {
	positions := make([]int, 0, len(s))
	for p := range s {
		positions = append(positions, p)
	}
	slices.Sort(positions)
	return positions
}

// Within restricts the set to positions in [1, pageCount]. Positions are
// only meaningful inside their originating document, so a retention set
// merged across documents must be cut down to each document's own page
// range before compaction.
func (s PageSet) Within(pageCount int) PageSet {
	out := make(PageSet)
	for p := range s {
		if p >= 1 && p <= pageCount {
			out.Add(p)
		}
	}
	return out
}
