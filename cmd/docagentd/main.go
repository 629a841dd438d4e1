package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joseph-ayodele/document-agent/internal/common"
	"github.com/joseph-ayodele/document-agent/internal/extract"
	"github.com/joseph-ayodele/document-agent/internal/llm"
	"github.com/joseph-ayodele/document-agent/internal/llm/gemini"
	"github.com/joseph-ayodele/document-agent/internal/llm/openai"
	"github.com/joseph-ayodele/document-agent/internal/ocr"
	"github.com/joseph-ayodele/document-agent/internal/pipeline"
	"github.com/joseph-ayodele/document-agent/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing credential must not crash startup: the caller captures the
	// construction error and fails fast on the first model call instead.
	gen, genErr := newGenerator(cfg.LLM, logger)
	if genErr != nil {
		logger.Warn("llm client not initialized; model calls will fail until credentials are set",
			"provider", cfg.LLM.Provider, "error", genErr)
	}
	caller := llm.NewCaller(gen, genErr, llm.CallerConfig{
		MaxAttempts: cfg.LLM.MaxAttempts,
		BaseDelay:   cfg.LLM.RetryBaseDelay,
	}, logger)
	validator := llm.NewValidator(caller, logger)
	summarizer := llm.NewSummarizer(caller, logger)

	readers := ocr.NewCache(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	adapter := extract.NewOCRAdapter(readers, cfg.OCR.Languages, logger)

	pipe := pipeline.New(adapter, validator, summarizer, logger)

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		RequestTimeout:  cfg.Server.RequestTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, pipe, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()
	logger.Info("docagentd serving",
		"addr", cfg.Server.Addr,
		"provider", cfg.LLM.Provider,
		"ocr_languages", cfg.OCR.Languages,
	)

	<-ctx.Done()
	logger.Info("shutting down...")

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}

func newGenerator(cfg common.LLMConfig, logger *slog.Logger) (llm.Generator, error) {
	switch cfg.Provider {
	case "", "gemini":
		c, err := gemini.NewClient(gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openai":
		c, err := openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
