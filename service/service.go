// Package service wires document discovery, the compaction batch and
// result reporting together.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"slidecompact/internal/batch"
	"slidecompact/internal/config"
	"slidecompact/internal/logging"
)

// ErrInvalidInput marks a top-level input path that is neither a file
// nor a directory. Unlike per-document failures this aborts the whole
// invocation before any work starts.
var ErrInvalidInput = errors.New("input path is neither a file nor a directory")

// Runner runs a batch of document compactions.
type Runner interface {
	Run(ctx context.Context, paths []string) []batch.Outcome
}

type Service struct {
	cfg    *config.Config
	runner Runner
	logger *slog.Logger
}

func New(cfg *config.Config, runner Runner) *Service {
	return &Service{
		cfg:    cfg,
		runner: runner,
		logger: logging.WithComponent("service"),
	}
}

func (s *Service) Run(ctx context.Context) error {
	paths, err := discoverDocuments(s.cfg.InputPath)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		s.logger.Info("no PDF documents found", "path", s.cfg.InputPath)
		return nil
	}

	if s.cfg.OutDir != "" {
		if err := os.MkdirAll(s.cfg.OutDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	s.logger.Info("starting batch",
		"documents", len(paths),
		"workers", s.cfg.Workers,
		"global_groups", s.cfg.GlobalGroups,
	)

	outcomes := s.runner.Run(ctx, paths)

	var succeeded, failed int
	for _, o := range outcomes {
		if o.Failed() {
			failed++
			s.logger.Error("document failed", "source", o.SourcePath, "error", o.Err)
			continue
		}
		succeeded++
		s.logger.Info("filtered document saved",
			"source", o.SourcePath,
			"output", o.Result.OutputPath,
			"removed", o.Result.RemovedCount,
			"kept", o.Result.KeptCount,
		)
	}
	s.logger.Info("batch finished", "succeeded", succeeded, "failed", failed)

	return ctx.Err()
}

// discoverDocuments resolves the input path to the list of documents to
// process: the file itself, or every .pdf directly inside the directory.
func discoverDocuments(inputPath string) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, inputPath)
	}
	if !info.IsDir() {
		return []string{inputPath}, nil
	}

	entries, err := os.ReadDir(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", inputPath, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(inputPath, entry.Name()))
		}
	}
	return paths, nil
}
