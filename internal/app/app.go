// Package app wires configuration, adapters, services, and the HTTP
// server into a running application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/talklens-backend/internal/adapter/postgres"
	analysisrepo "github.com/heartmarshall/talklens-backend/internal/adapter/postgres/analysis"
	"github.com/heartmarshall/talklens-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/talklens-backend/internal/adapter/provider/deepgram"
	"github.com/heartmarshall/talklens-backend/internal/adapter/provider/groq"
	"github.com/heartmarshall/talklens-backend/internal/adapter/sqlite/prefs"
	"github.com/heartmarshall/talklens-backend/internal/config"
	analysissvc "github.com/heartmarshall/talklens-backend/internal/service/analysis"
	"github.com/heartmarshall/talklens-backend/internal/transport/middleware"
	"github.com/heartmarshall/talklens-backend/internal/transport/rest"
)

// inferrer matches the reasoning port of the analysis service; both
// provider adapters implement it.
type inferrer interface {
	Infer(ctx context.Context, system, user string) ([]byte, string, error)
}

// Run is the application entry point. It loads configuration, connects
// the stores and providers, builds the service, and serves HTTP until
// ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("inference_backend", cfg.Inference.Backend),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(pool); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	prefsStore, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		return err
	}
	defer prefsStore.Close()

	llm, err := newInferrer(cfg.Inference, logger)
	if err != nil {
		return err
	}

	stt := deepgram.NewClient(cfg.Deepgram, logger)
	repo := analysisrepo.New(pool)
	svc := analysissvc.NewService(logger, stt, llm, repo, cfg.Upload.MaxAudioBytes)

	analysisHandler := rest.NewAnalysisHandler(svc, cfg.Upload.MaxAudioBytes, logger)
	sectionsHandler := rest.NewSectionsHandler(prefsStore, logger)
	healthHandler := rest.NewHealthHandler(pool, prefsStore, BuildVersion())

	mux := rest.NewRouter(analysisHandler, sectionsHandler, healthHandler)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

func newInferrer(cfg config.InferenceConfig, logger *slog.Logger) (inferrer, error) {
	switch cfg.Backend {
	case "groq":
		return groq.NewClient(cfg, logger), nil
	case "anthropic":
		return anthropic.NewClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown inference backend %q", cfg.Backend)
	}
}
