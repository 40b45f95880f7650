// Package pdf implements the document collaborators on top of pdfcpu:
// text snapshot extraction and page-subset copying.
package pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"slidecompact/internal/logging"
	"slidecompact/types"
)

// Sentinels for pages without extractable text, kept verbatim so that
// all such pages group together.
const (
	noTitle   = "No Title"
	noContent = "No Content"
)

// Extractor turns a PDF into one text snapshot per page. The pdfcpu
// configuration is created once by the caller and shared, never held in
// package state.
type Extractor struct {
	conf *model.Configuration
	log  *slog.Logger
}

func NewExtractor(conf *model.Configuration) *Extractor {
	return &Extractor{conf: conf, log: logging.WithComponent("extractor")}
}

// Snapshots reads every page of the document at path, in order, starting
// at position 1. Any page failing to extract fails the whole document:
// the caller gets an error and zero snapshots, never a partial list.
func (e *Extractor) Snapshots(ctx context.Context, path string) ([]types.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	mctx, err := api.ReadValidateAndOptimize(f, e.conf)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	snapshots := make([]types.Snapshot, 0, mctx.PageCount)
	for page := 1; page <= mctx.PageCount; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, err := pdfcpu.ExtractPageContent(mctx, page)
		if err != nil {
			return nil, fmt.Errorf("extracting page %d of %s: %w", page, path, err)
		}
		var raw []byte
		if r != nil {
			if raw, err = io.ReadAll(r); err != nil {
				return nil, fmt.Errorf("reading page %d of %s: %w", page, path, err)
			}
		}

		title, content := splitPage(pageText(raw))
		snapshots = append(snapshots, types.NewSnapshot(page, title, content))
	}

	e.log.Debug("document extracted", "source", path, "pages", len(snapshots))
	return snapshots, nil
}

// splitPage separates a page's text into its title, the first non-empty
// line, and the remaining content. Pages without text get the sentinel
// values.
func splitPage(text string) (title, content string) {
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) {
		return noTitle, noContent
	}

	title = strings.TrimSpace(lines[i])
	content = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
	if content == "" {
		content = noContent
	}
	return title, content
}
