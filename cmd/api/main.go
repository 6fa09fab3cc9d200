package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sunbeekim/MainProject/internal/config"
	"github.com/sunbeekim/MainProject/internal/handler"
	"github.com/sunbeekim/MainProject/internal/model/persona"
	"github.com/sunbeekim/MainProject/internal/service/ai"
	"github.com/sunbeekim/MainProject/internal/service/chat"
	"github.com/sunbeekim/MainProject/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()

	log := logger.L()

	if err := godotenv.Load(); err != nil {
		log.Warn("failed to load .env file, continuing with system environment", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	deployPersona, ok := personaStore.FindByID(cfg.Chat.PersonaID)
	if !ok {
		log.Fatal("unknown persona id", zap.String("personaId", cfg.Chat.PersonaID))
	}
	log.Info("persona selected",
		zap.String("personaId", deployPersona.ID),
		zap.String("name", deployPersona.Name),
	)

	chatService := chat.NewService(cfg.Chat.MaxSessions, cfg.Chat.MaxTurnsPerSession)

	if !cfg.AI.Enabled() {
		log.Fatal("ark credentials not configured; set ARK_API_KEY (or AK/SK) and AI_MODEL")
	}
	provider, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatal("failed to initialize completion provider", zap.Error(err))
	}
	log.Info("completion provider initialized",
		zap.String("model", cfg.AI.Model),
		zap.Int("maxConcurrent", cfg.AI.MaxConcurrent),
	)

	router := handler.NewRouter(provider, chatService, deployPersona, cfg.CORS)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	log := logger.L()

	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("assistant chat service listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
