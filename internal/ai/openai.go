package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pocketwise/internal/advisor"
	"pocketwise/internal/models"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	chatMaxTokens         = 500
	analysisMaxTokens     = 300
	completionTemperature = 0.7
)

// chatCompletionRequest is the request body for the chat-completions API.
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// chatCompletionResponse is the subset of the API response we consume.
type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// LiveCompletionProvider calls an OpenAI-compatible chat-completions API.
type LiveCompletionProvider struct {
	apiKey     string
	model      string
	baseURL    string // overridable for tests
	httpClient *http.Client
}

// NewLiveCompletionProvider creates a provider for the given API key and
// model. Passing a nil httpClient installs a client with a 30s timeout.
func NewLiveCompletionProvider(apiKey, model string, httpClient *http.Client) *LiveCompletionProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &LiveCompletionProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// Chat sends the persona system prompt plus the most recent history turns
// and returns the completion text. An empty completion is returned as an
// empty string with no error; the caller substitutes its placeholder.
func (p *LiveCompletionProvider) Chat(ctx context.Context, profile *models.Profile, rows []models.Transaction, history []Message) (string, error) {
	messages := make([]Message, 0, historyLimit+1)
	messages = append(messages, Message{Role: "system", Content: advisor.BuildChatSystemPrompt(profile, rows)})
	messages = append(messages, lastTurns(history, historyLimit)...)

	return p.complete(ctx, messages, chatMaxTokens)
}

// Analyze sends the one-shot analysis prompt and returns the completion text.
func (p *LiveCompletionProvider) Analyze(ctx context.Context, profile *models.Profile, rows []models.Transaction) (string, error) {
	messages := []Message{{Role: "user", Content: advisor.BuildAnalysisPrompt(profile, rows)}}
	return p.complete(ctx, messages, analysisMaxTokens)
}

func (p *LiveCompletionProvider) complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API: unexpected status %d", resp.StatusCode)
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}
