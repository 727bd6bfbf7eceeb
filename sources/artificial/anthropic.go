package artificial

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"chokwadi/sources/configuration"
	"chokwadi/sources/tracing"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicProvider talks to the Anthropic messages API directly. The API
// differs from OpenAI's: auth goes through the x-api-key header, the system
// prompt is a top level field, and images travel as base64 content blocks.
type AnthropicProvider struct {
	client  *http.Client
	config  *configuration.Config
	baseURL string
}

func NewAnthropicProvider(client *http.Client, config *configuration.Config) *AnthropicProvider {
	return &AnthropicProvider{client: client, config: config, baseURL: anthropicBaseURL}
}

func (x *AnthropicProvider) SupportsVision() bool { return true }

type anthropicContent struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Model   string             `json:"model"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (x *AnthropicProvider) Complete(ctx context.Context, logger *tracing.Logger, inv *Invocation) (*Completion, error) {
	defer tracing.ProfilePoint(logger, "Anthropic completion finished", "artificial.anthropic.complete")()

	model := x.config.AI.AnthropicModel
	logger = logger.With(tracing.AiKind, "anthropic/messages", tracing.AiModel, model)

	content := []anthropicContent{{Type: "text", Text: inv.User}}
	if inv.Image != nil {
		content = []anthropicContent{
			{
				Type: "image",
				Source: &anthropicSource{
					Type:      "base64",
					MediaType: inv.Image.MimeType,
					Data:      base64.StdEncoding.EncodeToString(inv.Image.Data),
				},
			},
			{Type: "text", Text: inv.User},
		}
	}

	request := anthropicRequest{
		Model:     model,
		System:    inv.System,
		Messages:  []anthropicMessage{{Role: "user", Content: content}},
		MaxTokens: inv.MaxTokens,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/messages", strings.TrimRight(x.baseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", x.config.AI.AnthropicToken)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := x.client.Do(httpReq)
	if err != nil {
		logger.E("Anthropic request failed", tracing.InnerError, err)
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr anthropicError
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Error.Message != "" {
			logger.E("Anthropic returned error", "status", resp.StatusCode, "type", apiErr.Error.Type, tracing.InnerError, apiErr.Error.Message)
			return nil, fmt.Errorf("anthropic: %s (%s)", apiErr.Error.Message, apiErr.Error.Type)
		}
		logger.E("Anthropic returned error", "status", resp.StatusCode)
		return nil, fmt.Errorf("anthropic: unexpected status %d", resp.StatusCode)
	}

	var response anthropicResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		logger.E("Anthropic returned no text blocks")
		return nil, fmt.Errorf("anthropic: empty response for model %s", model)
	}

	completion := &Completion{
		Text:         text.String(),
		Model:        model,
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}

	logger.I("Anthropic completion succeeded", tracing.AiTokens, completion.TotalTokens())
	return completion, nil
}
