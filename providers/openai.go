package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rohanthewiz/logger"
	openai "github.com/sashabaranov/go-openai"
	"sam/config"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemPrompt creates a system message
func SystemPrompt(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage creates a user message
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Client talks to an OpenAI-compatible chat completions endpoint.
// Failures are reported as "Error: ..." strings rather than Go errors so that
// callers treat the reply uniformly as text -- the planner recognizes the
// prefix and fails the step.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a client from the application configuration
func NewClient() *Client {
	cfg := config.Get()
	clientConfig := openai.DefaultConfig(cfg.LLMAPIKey)
	clientConfig.BaseURL = cfg.LLMBaseURL

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		model:   cfg.LLMModel,
		timeout: 60 * time.Second,
	}
}

// IsErrorReply reports whether a generated string is an error sentinel
// rather than model output
func IsErrorReply(reply string) bool {
	return strings.HasPrefix(reply, "Error:")
}

// Generate sends the messages and returns the assistant reply text
func (c *Client) Generate(messages []Message, maxTokens int, temperature float32) string {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	apiMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		apiMessages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    apiMessages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		logger.LogErr(err, "LLM request failed", "model", c.model)
		return fmt.Sprintf("Error: language model request failed - %s", err.Error())
	}

	if len(resp.Choices) == 0 {
		return "Error: invalid response format from language model"
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	logger.Debug("LLM response received",
		"model", c.model,
		"elapsed_ms", fmt.Sprintf("%d", time.Since(start).Milliseconds()),
		"chars", fmt.Sprintf("%d", len(content)))

	return content
}
