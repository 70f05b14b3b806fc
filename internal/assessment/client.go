package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mmynk/healthcoach/internal/models"
)

// MaxItems caps each list of an assessment.
const MaxItems = 4

var (
	// ErrUnavailable is returned when the provider cannot be reached or
	// answers with an error status.
	ErrUnavailable = errors.New("assessment provider unavailable")

	// ErrBadResponse is returned when the answer is not the expected JSON.
	ErrBadResponse = errors.New("assessment provider returned an invalid response")
)

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient creates a client for baseURL (e.g. "https://api.openai.com").
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

// Evaluate sends prompt once and parses the assessment. There is no retry.
func (c *Client) Evaluate(ctx context.Context, prompt Prompt) (*models.Assessment, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		reason := gjson.GetBytes(payload, "error.message").String()
		return nil, fmt.Errorf("%w: status %d %s", ErrUnavailable, resp.StatusCode, reason)
	}

	content := gjson.GetBytes(payload, "choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("%w: missing message content", ErrBadResponse)
	}
	return Parse(content.String())
}

// Parse reads the four assessment lists from a model answer. Code fences
// around the JSON are tolerated; missing lists are empty.
func Parse(content string) (*models.Assessment, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if !gjson.Valid(content) || !gjson.Parse(content).IsObject() {
		return nil, fmt.Errorf("%w: content is not a JSON object", ErrBadResponse)
	}
	doc := gjson.Parse(content)

	return &models.Assessment{
		Positives:   list(doc.Get("positivos")),
		Negatives:   list(doc.Get("negativos")),
		Cautions:    list(doc.Get("atencao")),
		Suggestions: list(doc.Get("sugestoes")),
	}, nil
}

func list(v gjson.Result) []string {
	out := []string{}
	for _, item := range v.Array() {
		s := strings.TrimSpace(item.String())
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == MaxItems {
			break
		}
	}
	return out
}
