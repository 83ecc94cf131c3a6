package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	appcfg "github.com/YangKyeongHoon/tool-ocr-2/internal/config"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/ocr"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/ocr/mock"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/ocr/ollama"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/report"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/results"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/runlog"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/runner"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/samples"
)

func main() {
	// Optional config path as the only argument
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	// Bootstrap logger; replaced once config is known
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := appcfg.Load(cfgPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Run.LogLevel)}))
	slog.SetDefault(logger)

	// Run history (SQLite)
	history, err := runlog.NewSQLiteStore(cfg.Run.DatabasePath)
	if err != nil {
		logger.Error("sqlite open", "err", err)
		os.Exit(1)
	}
	defer func() { _ = history.Close() }()

	// Result store
	store := results.NewStore(cfg.Run.OutputDir)

	// OCR client
	var client ocr.Client
	switch cfg.OCR.Provider {
	case "ollama":
		client = ollama.New(cfg.OCR.Ollama)
	case "mock":
		client = mock.New(cfg.OCR.Mock)
	default:
		logger.Error("unsupported ocr provider", "provider", cfg.OCR.Provider)
		os.Exit(1)
	}

	rootCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The sample list is computed once and shared by the runner and the report
	// generator, so both phases always agree on what was sampled.
	list, err := samples.List(cfg.Run.ImageDir, cfg.Run.SampleCount)
	if err != nil {
		logger.Error("list samples", "dir", cfg.Run.ImageDir, "err", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	logger.Info("starting comparison run", "run_id", runID, "models", len(cfg.Models), "samples", len(list))

	r := runner.New(logger, client, store, history)
	allOK := r.Run(rootCtx, runID, cfg.Models, list)

	gen := report.New(logger, store)
	if err := gen.Generate(cfg.Models, list, cfg.Report.Path, cfg.Report.HTMLPath); err != nil {
		logger.Error("generate report", "err", err)
		os.Exit(1)
	}

	if !allOK {
		logger.Warn("some extractions failed; see report for missing entries")
	}
	logger.Info("comparison run finished", "run_id", runID)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
