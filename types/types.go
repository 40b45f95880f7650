package types

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

// Snapshot is the extracted text state of one page within a source
// document. Position is the 1-based page number in document order.
// Snapshots are immutable once extracted and never shared across
// documents.
type Snapshot struct {
	Position      int
	Title         string
	Content       string
	ContentLength int
}

// NewSnapshot derives ContentLength from the content. Length is a plain
// character count, no whitespace or width normalization.
func NewSnapshot(position int, title, content string) Snapshot {
	return Snapshot{
		Position:      position,
		Title:         title,
		Content:       content,
		ContentLength: utf8.RuneCountInString(content),
	}
}

// CompactionResult describes one finished document compaction.
// Written once, after the filtered document has been renamed into place.
type CompactionResult struct {
	DocumentID   uuid.UUID
	SourcePath   string
	OutputPath   string
	KeptCount    int
	RemovedCount int
}

// DocumentID derives a stable identifier from a document's source path.
func DocumentID(sourcePath string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourcePath))
}
