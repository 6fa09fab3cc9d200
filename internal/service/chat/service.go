package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sunbeekim/MainProject/internal/model/chat"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrSessionNotFound = errors.New("session not found")
)

// Senders recorded in the transcript.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Service encapsulates conversation bookkeeping. Sessions are keyed by
// the caller-supplied identifier; prompts are never built from this
// state, it exists for transcript retrieval and audit.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message
	// order holds session IDs oldest-first for capacity eviction.
	order []string

	maxSessions int
	maxMessages int
}

// NewService bootstraps the in-memory store. maxSessions bounds the
// session map, maxTurnsPerSession bounds each transcript in turns.
func NewService(maxSessions, maxTurnsPerSession int) *Service {
	if maxSessions < 1 {
		maxSessions = 1
	}
	if maxTurnsPerSession < 1 {
		maxTurnsPerSession = 1
	}
	return &Service{
		sessions:    make(map[string]chat.Session),
		messages:    make(map[string][]chat.Message),
		maxSessions: maxSessions,
		maxMessages: maxTurnsPerSession * 2,
	}
}

// EnsureSession returns the session for the supplied ID, creating an
// empty one on first sight. The get-or-create is atomic: concurrent
// first-touch of the same ID yields exactly one entry. The bool reports
// whether this call created the session.
func (s *Service) EnsureSession(_ context.Context, sessionID string) (chat.Session, bool, error) {
	if sessionID == "" {
		return chat.Session{}, false, ErrSessionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[sessionID]; ok {
		return existing, false, nil
	}

	if len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}

	session := chat.Session{
		ID:        sessionID,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[sessionID] = session
	s.messages[sessionID] = make([]chat.Message, 0, 16)
	s.order = append(s.order, sessionID)

	return session, true, nil
}

// AppendTurn records a completed exchange in the session transcript.
func (s *Service) AppendTurn(_ context.Context, sessionID string, turn chat.Turn) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}

	now := time.Now().UTC()
	s.messages[sessionID] = append(s.messages[sessionID], chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    SenderUser,
		Content:   turn.User,
		CreatedAt: now,
	})
	if turn.Answered() {
		s.messages[sessionID] = append(s.messages[sessionID], chat.Message{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Sender:    SenderAssistant,
			Content:   turn.Assistant,
			CreatedAt: now,
		})
	}

	if over := len(s.messages[sessionID]) - s.maxMessages; over > 0 {
		s.messages[sessionID] = s.messages[sessionID][over:]
	}
	return nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// SessionCount reports how many sessions are currently stored.
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) evictOldestLocked() {
	for len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		if _, ok := s.sessions[oldest]; ok {
			delete(s.sessions, oldest)
			delete(s.messages, oldest)
			return
		}
	}
}
