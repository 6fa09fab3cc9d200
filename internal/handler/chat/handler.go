package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	chatModel "github.com/sunbeekim/MainProject/internal/model/chat"
	"github.com/sunbeekim/MainProject/internal/model/persona"
	"github.com/sunbeekim/MainProject/internal/service/ai"
	chatService "github.com/sunbeekim/MainProject/internal/service/chat"
	"github.com/sunbeekim/MainProject/pkg/logger"
	"github.com/sunbeekim/MainProject/pkg/utils"
)

// Handler serves the assistant chat endpoint.
type Handler struct {
	provider ai.Provider
	chatSvc  *chatService.Service
	persona  persona.Persona
}

// New creates the chat handler for one deployment persona.
func New(provider ai.Provider, chatSvc *chatService.Service, p persona.Persona) *Handler {
	return &Handler{
		provider: provider,
		chatSvc:  chatSvc,
		persona:  p,
	}
}

// RegisterRoutes mounts the chat routes on the supplied router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/sessions/{sessionID}/history", h.handleTranscript)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatModel.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	log := logger.With(zap.String("sessionId", req.SessionID))
	log.Info("chat request received",
		zap.String("message", req.Message),
		zap.Int("historyLength", len(req.History)),
	)

	if _, _, err := h.chatSvc.EnsureSession(r.Context(), req.SessionID); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The prompt is built from the caller's own history; the store is
	// bookkeeping only.
	prompt, err := ai.BuildPrompt(h.persona.SystemPrompt, req.History, req.Message)
	if err != nil {
		if errors.Is(err, ai.ErrInvalidTurn) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("prompt assembly failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	raw, err := h.provider.Generate(r.Context(), prompt)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError,
			fmt.Sprintf("generation failed for session %s: %v", req.SessionID, err))
		return
	}

	reply := ai.CleanResponse(raw)
	if reply == "" {
		log.Warn("completion produced no assistant content")
	}

	turn := chatModel.Turn{User: req.Message, Assistant: reply}
	if err := h.chatSvc.AppendTurn(r.Context(), req.SessionID, turn); err != nil {
		// Best-effort bookkeeping; the reply is already in hand.
		log.Warn("failed to record turn", zap.Error(err))
	}

	log.Info("chat request completed", zap.Int("responseLength", len(reply)))
	utils.RespondJSON(w, http.StatusOK, chatModel.Response{Response: reply})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.LoadTranscript(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"messages":  messages,
	})
}
