package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/metrics"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	geminiTemperature     = 0.7
	geminiMaxOutputTokens = 1024
)

// Gemini provides a wrapper for the Gemini generateContent API.
type Gemini struct {
	baseURL      string
	apiKey       string
	model        string
	systemPrompt string
	client       *http.Client
	policy       RetryPolicy
	metrics      *metrics.Metrics
}

func NewGemini(baseURL, apiKey, model, systemPrompt string, timeout time.Duration, m *metrics.Metrics) *Gemini {
	policy := DefaultRetryPolicy()
	if timeout > 0 {
		policy.Timeout = timeout
	}

	return &Gemini{
		baseURL:      baseURL,
		apiKey:       apiKey,
		model:        model,
		systemPrompt: systemPrompt,
		client:       &http.Client{},
		policy:       policy,
		metrics:      m,
	}
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) GenerateFromPrompt(ctx context.Context, prompts []domain.Prompt) (string, error) {
	if len(prompts) == 0 {
		return "", domain.ErrEmptyPrompt
	}

	request := geminiRequest{
		Contents: make([]geminiContent, 0, len(prompts)),
		GenerationConfig: geminiGenerationConfig{
			Temperature:     geminiTemperature,
			MaxOutputTokens: geminiMaxOutputTokens,
		},
	}

	if g.systemPrompt != "" {
		request.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: g.systemPrompt}}}
	}

	for _, prompt := range prompts {
		role := "user"
		if prompt.Author == domain.System {
			role = "model"
		}
		request.Contents = append(request.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: prompt.Prompt}},
		})
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("error encoding generation request: %w", err)
	}

	text, err := generateWithRetry(ctx, g.policy, retryableGeminiError, func(ctx context.Context) (string, error) {
		return g.generate(ctx, payload)
	})
	if err != nil {
		g.metrics.AIRequestsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	g.metrics.AIRequestsTotal.WithLabelValues("ok").Inc()

	return text, nil
}

func (g *Gemini) generate(ctx context.Context, payload []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating generation request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("x-goog-api-key", g.apiKey)

	res, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error executing generation request: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("error reading generation response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", &statusError{code: res.StatusCode}
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error unmarshalling generation response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no candidates in generation response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.code)
}

// retryableGeminiError treats rate limits, server errors, timeouts and
// transport failures as transient. Everything else, auth failures and
// malformed responses included, fails fast.
func retryableGeminiError(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr *url.Error
	return errors.As(err, &netErr)
}
