package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/metrics"

	"github.com/revrost/go-openrouter"
)

// OpenRouterClient is the slice of the SDK the generator needs.
type OpenRouterClient interface {
	CreateChatCompletion(ctx context.Context, request openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouter struct {
	client       OpenRouterClient
	model        string
	systemPrompt string
	policy       RetryPolicy
	metrics      *metrics.Metrics
}

func NewOpenRouter(apiKey, model, systemPrompt string, timeout time.Duration, m *metrics.Metrics) *OpenRouter {
	policy := DefaultRetryPolicy()
	if timeout > 0 {
		policy.Timeout = timeout
	}

	return &OpenRouter{
		model:        model,
		systemPrompt: systemPrompt,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("sotorbot"),
		),
		policy:  policy,
		metrics: m,
	}
}

func (c *OpenRouter) GenerateFromPrompt(ctx context.Context, prompts []domain.Prompt) (string, error) {
	if len(prompts) == 0 {
		return "", domain.ErrEmptyPrompt
	}

	ccr := openrouter.ChatCompletionRequest{
		Messages: buildMessages(c.systemPrompt, prompts),
		Model:    c.model,
	}

	text, err := generateWithRetry(ctx, c.policy, retryableOpenRouterError, func(ctx context.Context) (string, error) {
		resp, completionErr := c.client.CreateChatCompletion(ctx, ccr)
		if completionErr != nil {
			return "", fmt.Errorf("openrouter API error: %w", completionErr)
		}

		if len(resp.Choices) == 0 {
			return "", errors.New("no choices in openrouter response")
		}

		return resp.Choices[0].Message.Content.Text, nil
	})
	if err != nil {
		c.metrics.AIRequestsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	c.metrics.AIRequestsTotal.WithLabelValues("ok").Inc()

	return text, nil
}

func buildMessages(systemPrompt string, prompts []domain.Prompt) []openrouter.ChatCompletionMessage {
	messages := make([]openrouter.ChatCompletionMessage, len(prompts)+1)

	messages[0] = openrouter.ChatCompletionMessage{
		Role: openrouter.ChatMessageRoleSystem,
		Content: openrouter.Content{
			Text: systemPrompt,
		},
	}

	for i, prompt := range prompts {
		role := openrouter.ChatMessageRoleUser
		if prompt.Author == domain.System {
			role = openrouter.ChatMessageRoleAssistant
		}
		messages[i+1] = openrouter.ChatCompletionMessage{
			Role: role,
			Content: openrouter.Content{
				Text: prompt.Prompt,
			},
		}
	}

	return messages
}

func retryableOpenRouterError(err error) bool {
	var apiErr *openrouter.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr *url.Error
	return errors.As(err, &netErr)
}
