package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/sunbeekim/MainProject/internal/config"
)

// Provider turns an assembled prompt into raw completion text. The
// handler depends on this interface so the backend can be stubbed.
type Provider interface {
	Generate(ctx context.Context, promptText string) (string, error)
}

// Service is the ark-backed Provider. Generation parameters are fixed
// at model construction; every request runs the same compiled chain.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
	// slots bounds concurrent generate calls against the shared model.
	slots chan struct{}
}

// NewService creates the completion provider from configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	// The assembled prompt is already a complete tagged blob, so the
	// template is a single pass-through user message.
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.UserMessage("{prompt}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile completion chain: %w", err)
	}

	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Service{
		chain: runnable,
		slots: make(chan struct{}, maxConcurrent),
	}, nil
}

// Generate runs the model on the supplied prompt. Callers block while
// all generation slots are busy; cancellation is honored both while
// waiting and during inference.
func (s *Service) Generate(ctx context.Context, promptText string) (string, error) {
	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	response, err := s.chain.Invoke(ctx, map[string]any{"prompt": promptText})
	if err != nil {
		return "", fmt.Errorf("failed to run completion chain: %w", err)
	}

	return response.Content, nil
}
