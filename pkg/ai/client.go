package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/techstoreperu/storefront-backend/pkg/config"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
)

var errAPIKeyRequired = errors.New("ai api key is required")

// completionAPI is the slice of the OpenAI client the service depends on.
// Tests swap in a stub.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps the OpenAI chat completion API with a default model and a
// bounded per-request timeout.
type Client struct {
	api     completionAPI
	model   string
	timeout time.Duration
}

// Turn roles accepted in CompletionRequest history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one prior conversation message carried into a completion.
type Turn struct {
	Role    string
	Content string
}

// CompletionRequest describes one chat completion call. History turns are
// inserted between the system instruction and the final user prompt.
type CompletionRequest struct {
	SystemInstruction string
	History           []Turn
	UserPrompt        string
	Temperature       float32
	MaxTokens         int
}

// NewClient initializes the completion client from config.
func NewClient(ctx context.Context, cfg config.AIConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = base
	}

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("ai client initialized (model=%s)", cfg.Model))
	}

	return &Client{
		api:     openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.RequestTimeout,
	}, nil
}

// Complete runs one chat completion and returns the first choice's content.
// The call is bounded by the configured request timeout regardless of the
// caller's context.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c == nil || c.api == nil {
		return "", errors.New("ai client is not configured")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		})
	}
	for _, turn := range req.History {
		if turn.Content == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if turn.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
