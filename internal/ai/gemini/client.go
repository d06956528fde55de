package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultTemperature = 0.3

	// Self-hosted endpoints ignore the api key but the client requires a
	// non-empty one.
	localAPIKeyPlaceholder = "local"
	localModel             = "local"
)

// Config carries the remote model settings resolved once at process start.
type Config struct {
	// APIKey authenticates against the hosted endpoint. Optional when
	// BaseURL points at a self-hosted server.
	APIKey string
	// BaseURL overrides the default endpoint with a self-hosted one.
	BaseURL string
	// Model overrides the default model name.
	Model string
	// Temperature for all calls. Zero means the 0.3 default.
	Temperature float32
}

// Generator wraps the GenAI client to provide simple prompt-based interactions.
type Generator struct {
	client      *genai.Client
	model       string
	temperature float32
	// plainOnly disables the structured-output request mode; self-hosted
	// servers have inconsistent support for it.
	plainOnly bool
	logger    *zap.Logger
}

// NewGenerator creates a Generator for the hosted endpoint, or for a
// self-hosted one when cfg.BaseURL is set.
func NewGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	baseURL := strings.TrimSpace(cfg.BaseURL)

	if apiKey == "" {
		if baseURL == "" {
			return nil, errors.New("llm api key is required for the hosted endpoint")
		}
		apiKey = localAPIKeyPlaceholder
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
		if baseURL != "" {
			model = localModel
		}
	}

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	return &Generator{
		client:      client,
		model:       model,
		temperature: temperature,
		plainOnly:   baseURL != "",
		logger:      logger,
	}, nil
}

// GenerateContent sends the prompts to the model and returns the textual response.
func (g *Generator) GenerateContent(ctx context.Context, system, user string) (string, error) {
	return g.generate(ctx, system, user, false)
}

// GenerateJSON requests a structured JSON response. When the endpoint rejects
// the structured mode the call degrades to a single plain retry.
func (g *Generator) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	if g != nil && g.plainOnly {
		return g.generate(ctx, system, user, false)
	}

	output, err := g.generate(ctx, system, user, true)
	if err != nil {
		g.logger.Warn("structured output mode failed, retrying without it", zap.Error(err))
		return g.generate(ctx, system, user, false)
	}

	return output, nil
}

func (g *Generator) generate(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	user = strings.TrimSpace(user)
	if user == "" {
		return "", errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}
	if system = strings.TrimSpace(system); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if jsonMode {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("model returned empty response")
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
