package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/logging"
)

const (
	anthropicAPI = "https://api.anthropic.com/v1/messages"
	defaultModel = "claude-sonnet-4-20250514"
)

// Classifier picks a category for a task title. Without an API key it only
// uses the keyword rules.
type Classifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	l        logging.Logger
}

type Option func(*Classifier)

// WithEndpoint overrides the Messages API URL
func WithEndpoint(endpoint string) Option {
	return func(c *Classifier) {
		c.endpoint = endpoint
	}
}

func WithModel(model string) Option {
	return func(c *Classifier) {
		c.model = model
	}
}

// New creates a Classifier. apiKey may be empty.
func New(apiKey string, l logging.Logger, opts ...Option) *Classifier {
	c := &Classifier{
		apiKey:   apiKey,
		model:    defaultModel,
		endpoint: anthropicAPI,
		client:   &http.Client{Timeout: 20 * time.Second},
		l:        l,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify asks the API first when a key is configured and falls back to
// the keyword rules on any failure.
func (c *Classifier) Classify(ctx context.Context, title string) domain.Category {
	if c.apiKey != "" {
		cat, err := c.classifyRemote(ctx, title)
		if err == nil {
			return cat
		}
		c.l.Warn("remote classification failed, using rules", "err", err)
	}
	return ByKeywords(title)
}

func (c *Classifier) classifyRemote(ctx context.Context, title string) (domain.Category, error) {
	resp, err := c.callAPI(ctx, buildPrompt(title))
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	return parseResponse(resp)
}

func buildPrompt(title string) string {
	var sb strings.Builder
	sb.WriteString("Pick the category of this calendar task. Return JSON only.\n\n")
	sb.WriteString("Task:\n")
	sb.WriteString(title)
	sb.WriteString("\n\nCategories:\n")
	for _, c := range domain.Categories {
		sb.WriteString("- ")
		sb.WriteString(string(c))
		sb.WriteString("\n")
	}
	sb.WriteString(`
Return a JSON object with this structure:
{"category": "work"}

Return ONLY the JSON, no other text.`)
	return sb.String()
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Classifier) callAPI(ctx context.Context, prompt string) (string, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: 64,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("api error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return apiResp.Content[0].Text, nil
}

func parseResponse(resp string) (domain.Category, error) {
	// Models sometimes wrap the JSON in a markdown fence
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	resp = strings.TrimSpace(resp)

	var result struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(resp), &result); err != nil {
		return "", fmt.Errorf("parse json: %w (response: %s)", err, resp)
	}
	if strings.TrimSpace(result.Category) == "" {
		return "", fmt.Errorf("%w: empty label", domain.ErrUnknownCategory)
	}
	return domain.ParseCategory(result.Category)
}
