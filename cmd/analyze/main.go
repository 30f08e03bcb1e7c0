// Command analyze runs the analysis pipeline once over a transcript
// file and prints the resulting document. The document is persisted the
// same way the HTTP API persists it, so the server can serve it
// afterwards.
//
// Usage:
//
//	analyze -file transcript.txt [-out analysis.json]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/talklens-backend/internal/adapter/postgres"
	analysisrepo "github.com/heartmarshall/talklens-backend/internal/adapter/postgres/analysis"
	"github.com/heartmarshall/talklens-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/talklens-backend/internal/adapter/provider/deepgram"
	"github.com/heartmarshall/talklens-backend/internal/adapter/provider/groq"
	"github.com/heartmarshall/talklens-backend/internal/config"
	analysissvc "github.com/heartmarshall/talklens-backend/internal/service/analysis"
)

func main() {
	filePath := flag.String("file", "", "path to transcript text file (required)")
	outPath := flag.String("out", "", "write the analysis JSON here instead of stdout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" {
		logger.Error("missing -file flag")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*filePath, *outPath, logger); err != nil {
		logger.Error("analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(filePath, outPath string, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	text, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(pool); err != nil {
			return err
		}
	}

	var llm interface {
		Infer(ctx context.Context, system, user string) ([]byte, string, error)
	}
	switch cfg.Inference.Backend {
	case "groq":
		llm = groq.NewClient(cfg.Inference, logger)
	case "anthropic":
		llm = anthropic.NewClient(cfg.Inference, logger)
	default:
		return fmt.Errorf("unknown inference backend %q", cfg.Inference.Backend)
	}

	stt := deepgram.NewClient(cfg.Deepgram, logger)
	repo := analysisrepo.New(pool)
	svc := analysissvc.NewService(logger, stt, llm, repo, cfg.Upload.MaxAudioBytes)

	doc, err := svc.AnalyzeText(ctx, analysissvc.TextInput{Text: string(text)})
	if err != nil {
		return err
	}

	logger.Info("analysis stored",
		slog.String("document_id", doc.ID.String()),
		slog.String("model", doc.Model),
	)

	out, err := analysissvc.Export(doc)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	fmt.Println(string(out))
	return nil
}
