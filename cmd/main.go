package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"slidecompact/internal/batch"
	"slidecompact/internal/config"
	"slidecompact/internal/logging"
	"slidecompact/internal/pdf"
	"slidecompact/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	registerFlags(flag.CommandLine, cfg)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	cfg.InputPath = flag.Arg(0)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// one pdfcpu configuration, created here and passed down
	conf := api.LoadConfiguration()
	coordinator := batch.NewCoordinator(
		pdf.NewExtractor(conf),
		pdf.NewCompactor(conf),
		batch.Options{
			Workers:      cfg.Workers,
			GlobalGroups: cfg.GlobalGroups,
			OutDir:       cfg.OutDir,
		},
	)

	if err := service.New(cfg, coordinator).Run(ctx); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// registerFlags layers command line flags over the env-derived config.
func registerFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "directory for filtered documents (default: beside the source)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of documents processed concurrently")
	fs.BoolVar(&cfg.GlobalGroups, "global-groups", cfg.GlobalGroups, "merge slide titles across all documents of the batch")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: slidecompact [flags] <pdf-file-or-directory>

Removes redundant intermediate build pages from presentation PDFs,
keeping only the fullest page of each progressive reveal. Filtered
copies are written as <name>_filtered.pdf.

Flags:
`)
	flag.PrintDefaults()
}
