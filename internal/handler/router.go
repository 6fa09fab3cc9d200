package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sunbeekim/MainProject/internal/config"
	"github.com/sunbeekim/MainProject/internal/handler/chat"
	"github.com/sunbeekim/MainProject/internal/model/persona"
	aiService "github.com/sunbeekim/MainProject/internal/service/ai"
	chatService "github.com/sunbeekim/MainProject/internal/service/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(provider aiService.Provider, chatSvc *chatService.Service, p persona.Persona, corsCfg config.CORSConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	chatHandler := chat.New(provider, chatSvc, p)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/fastapi", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
	})

	return r
}
