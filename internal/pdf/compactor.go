package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"slidecompact/internal/compact"
	"slidecompact/internal/logging"
)

// Compactor copies a chosen subset of a document's pages into a new
// document, in original order. Output is written to a temp file in the
// destination directory and renamed into place only on full success, so
// an interrupted run never leaves a partial file behind at the output
// path.
type Compactor struct {
	conf *model.Configuration
	log  *slog.Logger
}

func NewCompactor(conf *model.Configuration) *Compactor {
	return &Compactor{conf: conf, log: logging.WithComponent("compactor")}
}

// Compact writes a copy of srcPath to outPath containing exactly the
// pages in keep that exist in the source, ascending. Returns the number
// of pages kept and removed.
func (c *Compactor) Compact(ctx context.Context, srcPath, outPath string, keep compact.PageSet) (kept, removed int, err error) {
	total, err := api.PageCountFile(srcPath)
	if err != nil {
		return 0, 0, fmt.Errorf("reading %s: %w", srcPath, err)
	}

	pages := keep.Within(total).Sorted()
	if len(pages) == 0 {
		return 0, 0, fmt.Errorf("no pages selected from %s", srcPath)
	}
	selected := make([]string, 0, len(pages))
	for _, p := range pages {
		selected = append(selected, strconv.Itoa(p))
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".compact-*.pdf")
	if err != nil {
		return 0, 0, fmt.Errorf("creating temp file for %s: %w", outPath, err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, 0, err
	}

	if err := api.TrimFile(srcPath, tmpPath, selected, c.conf); err != nil {
		os.Remove(tmpPath)
		return 0, 0, fmt.Errorf("trimming %s: %w", srcPath, err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmpPath)
		return 0, 0, err
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return 0, 0, fmt.Errorf("writing %s: %w", outPath, err)
	}

	c.log.Debug("document compacted", "source", srcPath, "output", outPath, "kept", len(pages))
	return len(pages), total - len(pages), nil
}
