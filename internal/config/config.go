package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service reads.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Chat   ChatConfig
	CORS   CORSConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Chat:   chat,
		CORS:   loadCORSConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8001"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8001" or "0.0.0.0:8001" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// GenerationConfig fixes the sampling parameters for every request.
// Callers cannot override these per request.
type GenerationConfig struct {
	// MaxLength bounds prompt plus completion in model tokens.
	MaxLength   int
	Temperature float32
	TopP        float32
	// RepetitionPenalty (>1 discourages repeats) is carried for providers
	// that expose the knob; the ark adapter has none.
	RepetitionPenalty float32
	// DoSample false means greedy decoding; mapped to temperature 0.
	DoSample bool
}

// AIConfig describes the completion backend.
type AIConfig struct {
	APIKey     string
	AccessKey  string
	SecretKey  string
	Model      string
	BaseURL    string
	Region     string
	Generation GenerationConfig
	// MaxConcurrent bounds simultaneous generate calls against the
	// single shared model.
	MaxConcurrent int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds the ark-backed chat model with the fixed
// generation parameters baked in.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: provide ARK_API_KEY + AI_MODEL or AK/SK pair")
	}

	temperature := c.Generation.Temperature
	if !c.Generation.DoSample {
		temperature = 0
	}
	topP := c.Generation.TopP
	maxTokens := c.Generation.MaxLength

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
		TopP:        &topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	gen := GenerationConfig{
		MaxLength:         2048,
		Temperature:       0.7,
		TopP:              0.95,
		RepetitionPenalty: 1.15,
		DoSample:          true,
	}

	if v, err := parseOptionalIntEnv("AI_MAX_LENGTH"); err != nil {
		return AIConfig{}, err
	} else if v != nil {
		gen.MaxLength = *v
	}

	if v, err := parseOptionalFloat32Env("AI_TEMPERATURE"); err != nil {
		return AIConfig{}, err
	} else if v != nil {
		gen.Temperature = *v
	}

	if v, err := parseOptionalFloat32Env("AI_TOP_P"); err != nil {
		return AIConfig{}, err
	} else if v != nil {
		gen.TopP = *v
	}

	if v, err := parseOptionalFloat32Env("AI_REPETITION_PENALTY"); err != nil {
		return AIConfig{}, err
	} else if v != nil {
		gen.RepetitionPenalty = *v
	}

	doSample, err := parseBoolEnv("AI_DO_SAMPLE", true)
	if err != nil {
		return AIConfig{}, err
	}
	gen.DoSample = doSample

	maxConcurrent := 2
	if v, err := parseOptionalIntEnv("AI_MAX_CONCURRENT"); err != nil {
		return AIConfig{}, err
	} else if v != nil {
		if *v < 1 {
			maxConcurrent = 1
		} else {
			maxConcurrent = *v
		}
	}

	return AIConfig{
		APIKey:        strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:     strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:     strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:         strings.TrimSpace(os.Getenv("AI_MODEL")),
		BaseURL:       getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:        getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Generation:    gen,
		MaxConcurrent: maxConcurrent,
	}, nil
}

// ChatConfig describes session bookkeeping and persona selection.
type ChatConfig struct {
	PersonaID string
	// MaxSessions bounds the in-memory session map; the oldest session
	// is evicted once the bound is hit.
	MaxSessions int
	// MaxTurnsPerSession bounds each stored transcript.
	MaxTurnsPerSession int
}

func loadChatConfig() (ChatConfig, error) {
	maxSessions := 1024
	if v, err := parseOptionalIntEnv("CHAT_MAX_SESSIONS"); err != nil {
		return ChatConfig{}, err
	} else if v != nil && *v > 0 {
		maxSessions = *v
	}

	maxTurns := 256
	if v, err := parseOptionalIntEnv("CHAT_MAX_TURNS_PER_SESSION"); err != nil {
		return ChatConfig{}, err
	} else if v != nil && *v > 0 {
		maxTurns = *v
	}

	return ChatConfig{
		PersonaID:          getEnvOrDefault("PERSONA_ID", "haru-support"),
		MaxSessions:        maxSessions,
		MaxTurnsPerSession: maxTurns,
	}, nil
}

// CORSConfig carries the browser origin allow-list. The default matches
// the deployments this service sits behind; set "*" to allow any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

func loadCORSConfig() CORSConfig {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if raw == "" {
		return CORSConfig{AllowedOrigins: []string{
			"http://localhost:3000",
			"https://sunbee.world",
			"https://www.sunbee.world",
			"http://localhost:8081",
			"http://localhost:8082",
		}}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return CORSConfig{AllowedOrigins: origins}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
