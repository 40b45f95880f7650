package compact

import (
	"slices"
	"testing"

	"slidecompact/types"
)

func group(title string, pages ...Page) Group {
	return Group{Title: title, Pages: pages}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		group Group
		want  []int
	}{
		{
			name:  "singleton",
			group: group("Summary", Page{5, 42}),
			want:  []int{5},
		},
		{
			name:  "strictly increasing keeps only last",
			group: group("Agenda", Page{1, 5}, Page{2, 8}, Page{3, 13}),
			want:  []int{3},
		},
		{
			name:  "drop marks previous page as peak",
			group: group("Intro", Page{1, 10}, Page{2, 20}, Page{3, 15}, Page{4, 30}),
			want:  []int{2, 4},
		},
		{
			name:  "drop then rise",
			group: group("C", Page{4, 12}, Page{5, 6}, Page{6, 20}),
			want:  []int{4, 6},
		},
		{
			name:  "ties do not retain",
			group: group("Flat", Page{1, 7}, Page{2, 7}, Page{3, 7}),
			want:  []int{3},
		},
		{
			name:  "every step down retains",
			group: group("Shrinking", Page{1, 30}, Page{2, 20}, Page{3, 10}),
			want:  []int{1, 2, 3},
		},
		{
			name:  "last page kept even when it ends a drop",
			group: group("Outro", Page{1, 10}, Page{2, 4}),
			want:  []int{1, 2},
		},
		{
			name:  "unsorted input is scanned in position order",
			group: group("Mixed", Page{3, 15}, Page{1, 10}, Page{4, 30}, Page{2, 20}),
			want:  []int{2, 4},
		},
		{
			name:  "empty group",
			group: group("Empty"),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.group)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Select() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	snapshots := []types.Snapshot{
		{Position: 1, Title: "A", ContentLength: 5},
		{Position: 2, Title: "A", ContentLength: 8},
		{Position: 3, Title: "B", ContentLength: 9},
		{Position: 4, Title: "A", ContentLength: 2},
	}

	groups := Index(snapshots)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Title != "A" || groups[1].Title != "B" {
		t.Errorf("group order = %q, %q; want first-seen order A, B", groups[0].Title, groups[1].Title)
	}
	wantA := []Page{{1, 5}, {2, 8}, {4, 2}}
	if !slices.Equal(groups[0].Pages, wantA) {
		t.Errorf("group A pages = %v, want %v", groups[0].Pages, wantA)
	}
	if !slices.Equal(groups[1].Pages, []Page{{3, 9}}) {
		t.Errorf("group B pages = %v, want [{3 9}]", groups[1].Pages)
	}
}

func TestIndexTitleIsCaseSensitive(t *testing.T) {
	groups := Index([]types.Snapshot{
		{Position: 1, Title: "intro", ContentLength: 3},
		{Position: 2, Title: "Intro", ContentLength: 4},
	})
	if len(groups) != 2 {
		t.Fatalf("expected distinct groups for distinct casing, got %d", len(groups))
	}
}

func TestIndexOverwritesCollidingPosition(t *testing.T) {
	// Positions collide only when several documents are indexed into one
	// namespace; the later length wins.
	groups := Index([]types.Snapshot{
		{Position: 1, Title: "A", ContentLength: 5},
		{Position: 1, Title: "A", ContentLength: 9},
	})
	if len(groups) != 1 || len(groups[0].Pages) != 1 {
		t.Fatalf("unexpected groups: %v", groups)
	}
	if groups[0].Pages[0].Length != 9 {
		t.Errorf("length = %d, want 9", groups[0].Pages[0].Length)
	}
}

func TestBuildRetention(t *testing.T) {
	// Scenario: "A" monotonic, "B" singleton, "C" drop then rise.
	groups := Groups{
		group("A", Page{1, 5}, Page{2, 8}),
		group("B", Page{3, 9}),
		group("C", Page{4, 12}, Page{5, 6}, Page{6, 20}),
	}

	keep := BuildRetention(groups)

	want := []int{2, 3, 4, 6}
	if got := keep.Sorted(); !slices.Equal(got, want) {
		t.Errorf("retention set = %v, want %v", got, want)
	}
}

func TestBuildRetentionSubsetAndNonEmpty(t *testing.T) {
	snapshots := []types.Snapshot{
		{Position: 1, Title: "X", ContentLength: 4},
		{Position: 2, Title: "Y", ContentLength: 0},
		{Position: 3, Title: "X", ContentLength: 4},
		{Position: 4, Title: "X", ContentLength: 1},
		{Position: 5, Title: "Z", ContentLength: 11},
	}

	keep := BuildRetention(Index(snapshots))

	if len(keep) == 0 {
		t.Fatal("retention set empty for non-empty snapshot sequence")
	}
	all := make(PageSet)
	for _, s := range snapshots {
		all.Add(s.Position)
	}
	for _, p := range keep.Sorted() {
		if !all.Contains(p) {
			t.Errorf("retained position %d does not exist in input", p)
		}
	}
	// Last page of every group survives.
	for _, last := range []int{2, 4, 5} {
		if !keep.Contains(last) {
			t.Errorf("last position %d of its group not retained", last)
		}
	}
}

// Re-running the pipeline over an already compacted document must keep
// everything: compaction is idempotent.
func TestBuildRetentionIdempotent(t *testing.T) {
	original := []types.Snapshot{
		{Position: 1, Title: "Intro", ContentLength: 10},
		{Position: 2, Title: "Intro", ContentLength: 30},
		{Position: 3, Title: "Intro", ContentLength: 15},
		{Position: 4, Title: "Intro", ContentLength: 20},
		{Position: 5, Title: "Wrap", ContentLength: 8},
	}

	keep := BuildRetention(Index(original))

	// Rebuild the compacted document: kept pages renumbered from 1.
	var compacted []types.Snapshot
	next := 1
	for _, s := range original {
		if keep.Contains(s.Position) {
			s.Position = next
			compacted = append(compacted, s)
			next++
		}
	}

	again := BuildRetention(Index(compacted))
	if len(again) != len(compacted) {
		t.Errorf("second pass retained %d of %d pages, want all", len(again), len(compacted))
	}
}

func TestPageSetWithin(t *testing.T) {
	s := make(PageSet)
	for _, p := range []int{1, 3, 7, 12} {
		s.Add(p)
	}
	got := s.Within(7).Sorted()
	if !slices.Equal(got, []int{1, 3, 7}) {
		t.Errorf("Within(7) = %v, want [1 3 7]", got)
	}
}
