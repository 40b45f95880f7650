// Package batch fans document compactions across a bounded worker pool
// and reports one tagged outcome per document.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"slidecompact/internal/compact"
	"slidecompact/internal/logging"
	"slidecompact/types"
)

var (
	ErrExtraction = errors.New("extraction failed")
	ErrCompaction = errors.New("compaction failed")
)

const outputSuffix = "_filtered"

// Extractor produces the ordered text snapshots of one document.
type Extractor interface {
	Snapshots(ctx context.Context, path string) ([]types.Snapshot, error)
}

// Compactor copies the kept pages of one document to a new file.
type Compactor interface {
	Compact(ctx context.Context, srcPath, outPath string, keep compact.PageSet) (kept, removed int, err error)
}

// Outcome is the discriminated per-document result: exactly one of
// Result or Err is set.
type Outcome struct {
	SourcePath string
	Result     *types.CompactionResult
	Err        error
}

func (o Outcome) Failed() bool { return o.Err != nil }

type Options struct {
	// Workers bounds concurrent document processing.
	Workers int
	// GlobalGroups merges title groups across every document of a batch.
	GlobalGroups bool
	// OutDir receives the outputs; empty means beside the source.
	OutDir string
}

type Coordinator struct {
	extractor Extractor
	compactor Compactor
	opts      Options
	log       *slog.Logger
}

func NewCoordinator(extractor Extractor, compactor Compactor, opts Options) *Coordinator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Coordinator{
		extractor: extractor,
		compactor: compactor,
		opts:      opts,
		log:       logging.WithComponent("batch"),
	}
}

// Run processes every document and returns one outcome per path, sorted
// by source path. A document's failure never aborts its siblings.
func (c *Coordinator) Run(ctx context.Context, paths []string) []Outcome {
	if c.opts.GlobalGroups {
		return c.runGlobal(ctx, paths)
	}

	outcomes := make([]Outcome, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(c.opts.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = c.processDocument(ctx, path)
			return nil
		})
	}
	g.Wait()

	sortOutcomes(outcomes)
	return outcomes
}

// runGlobal is the legacy directory behavior behind the opt-in: one title
// namespace across the whole batch. Extraction for every document must
// finish before the shared retention set is built; compaction then fans
// out again with the merged set cut down to each document's page range.
func (c *Coordinator) runGlobal(ctx context.Context, paths []string) []Outcome {
	outcomes := make([]Outcome, len(paths))
	snapshots := make([][]types.Snapshot, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(c.opts.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			snaps, err := c.extract(ctx, path)
			if err != nil {
				outcomes[i] = Outcome{SourcePath: path, Err: err}
				return nil
			}
			snapshots[i] = snaps
			return nil
		})
	}
	g.Wait()

	var all []types.Snapshot
	for _, snaps := range snapshots {
		all = append(all, snaps...)
	}
	merged := compact.BuildRetention(compact.Index(all))
	c.log.Debug("shared retention set built", "documents", len(paths), "positions", len(merged))

	g = new(errgroup.Group)
	g.SetLimit(c.opts.Workers)
	for i, path := range paths {
		i, path := i, path
		if outcomes[i].Failed() {
			continue
		}
		g.Go(func() error {
			keep := merged.Within(len(snapshots[i]))
			outcomes[i] = c.compactDocument(ctx, path, keep)
			return nil
		})
	}
	g.Wait()

	sortOutcomes(outcomes)
	return outcomes
}

func (c *Coordinator) processDocument(ctx context.Context, path string) Outcome {
	snaps, err := c.extract(ctx, path)
	if err != nil {
		return Outcome{SourcePath: path, Err: err}
	}
	keep := compact.BuildRetention(compact.Index(snaps))
	return c.compactDocument(ctx, path, keep)
}

func (c *Coordinator) extract(ctx context.Context, path string) ([]types.Snapshot, error) {
	snaps, err := c.extractor.Snapshots(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("%w: %s: no extractable pages", ErrExtraction, path)
	}
	return snaps, nil
}

func (c *Coordinator) compactDocument(ctx context.Context, path string, keep compact.PageSet) Outcome {
	outPath := c.OutputPath(path)
	kept, removed, err := c.compactor.Compact(ctx, path, outPath, keep)
	if err != nil {
		return Outcome{SourcePath: path, Err: fmt.Errorf("%w: %s: %v", ErrCompaction, path, err)}
	}
	return Outcome{
		SourcePath: path,
		Result: &types.CompactionResult{
			DocumentID:   types.DocumentID(path),
			SourcePath:   path,
			OutputPath:   outPath,
			KeptCount:    kept,
			RemovedCount: removed,
		},
	}
}

// OutputPath maps a source path to its filtered counterpart,
// deck.pdf -> deck_filtered.pdf.
func (c *Coordinator) OutputPath(srcPath string) string {
	dir := c.opts.OutDir
	if dir == "" {
		dir = filepath.Dir(srcPath)
	}
	ext := filepath.Ext(srcPath)
	base := strings.TrimSuffix(filepath.Base(srcPath), ext)
	return filepath.Join(dir, base+outputSuffix+ext)
}

func sortOutcomes(outcomes []Outcome) {
	// completion order is nondeterministic, reported order must not be
	slices.SortFunc(outcomes, func(a, b Outcome) int {
		return strings.Compare(a.SourcePath, b.SourcePath)
	})
}
