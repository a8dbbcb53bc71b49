package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mesabot/app/config"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

const (
	maxCompletionTokens = 500
	defaultTemperature  = 1.0
)

// Turn is one role/content pair of the running conversation.
type Turn struct {
	Role    string
	Content string
}

// Client calls an OpenAI-compatible completion API. It holds no conversation
// state; callers pass the full turn history on every call.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	clientConfig := openai.DefaultConfig(cfg.OpenAI.Token)
	clientConfig.BaseURL = cfg.OpenAI.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.OpenAI.Model,
	}, nil
}

// Complete returns the whole completion at once.
func (c *Client) Complete(ctx context.Context, turns []Turn) (string, error) {
	response, err := c.client.CreateChatCompletion(ctx, c.buildRequest(turns))
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// Stream feeds completion fragments to onFragment as they arrive and returns
// the assembled text, which matches what Complete would have returned.
func (c *Client) Stream(ctx context.Context, turns []Turn, onFragment func(string)) (string, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.buildRequest(turns))
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion stream: %w", err)
	}
	defer stream.Close()

	var builder strings.Builder

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to receive completion fragment: %w", err)
		}

		if len(response.Choices) == 0 {
			continue
		}

		fragment := response.Choices[0].Delta.Content
		if fragment == "" {
			continue
		}

		builder.WriteString(fragment)

		if onFragment != nil {
			onFragment(fragment)
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func (c *Client) buildRequest(turns []Turn) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:               c.model,
		Messages:            messages,
		MaxCompletionTokens: maxCompletionTokens,
		Temperature:         defaultTemperature,
	}
}
