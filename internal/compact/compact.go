// Package compact decides which pages of a slide deck survive
// deduplication of progressive-reveal builds. Pages sharing a title are
// grouped in document order; within a group, a drop in content length
// marks the page before the drop as the completed build of one reveal
// cycle. Everything here is pure and in-memory.
package compact

import (
	"slices"

	"slidecompact/types"
)

// Page is one group member: a page position and its content length.
type Page struct {
	Position int
	Length   int
}

// Group holds every page sharing one title, in first-seen order.
type Group struct {
	Title string
	Pages []Page
}

// Groups preserves first-seen title order.
type Groups []Group

// Index partitions snapshots into title groups with a single fold.
// Every snapshot lands in exactly one group. A position already present
// in its group has its length overwritten; that only happens when
// snapshots of several documents are indexed together.
func Index(snapshots []types.Snapshot) Groups {
	var groups Groups
	byTitle := make(map[string]int, len(snapshots))

	for _, s := range snapshots {
		gi, ok := byTitle[s.Title]
		if !ok {
			gi = len(groups)
			byTitle[s.Title] = gi
			groups = append(groups, Group{Title: s.Title})
		}

		g := &groups[gi]
		if pi := slices.IndexFunc(g.Pages, func(p Page) bool { return p.Position == s.Position }); pi >= 0 {
			g.Pages[pi].Length = s.ContentLength
			continue
		}
		g.Pages = append(g.Pages, Page{Position: s.Position, Length: s.ContentLength})
	}

	return groups
}

// Select returns the positions of g that survive compaction.
//
// A single-member group is kept as is. Otherwise pages are scanned in
// ascending position order: a strictly smaller length than the previous
// page's marks the previous page as a retained local peak, and the last
// page is always retained. Equal lengths do not retain anything on
// their own.
func Select(g Group) []int {
	if len(g.Pages) == 0 {
		return nil
	}

	pages := slices.Clone(g.Pages)
	slices.SortFunc(pages, func(a, b Page) int { return a.Position - b.Position })

	if len(pages) == 1 {
		return []int{pages[0].Position}
	}

	var keep []int
	for i := 1; i < len(pages); i++ {
		if pages[i].Length < pages[i-1].Length {
			keep = append(keep, pages[i-1].Position)
		}
	}
	keep = append(keep, pages[len(pages)-1].Position)

	return keep
}

// BuildRetention unions Select over all groups into one retention set.
func BuildRetention(groups Groups) PageSet {
	keep := make(PageSet)
	for _, g := range groups {
		for _, p := range Select(g) {
			keep.Add(p)
		}
	}
	return keep
}
