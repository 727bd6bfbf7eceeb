package artificial

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"chokwadi/sources/configuration"
	"chokwadi/sources/tracing"

	"github.com/sashabaranov/go-openai"
)

func NewOpenAIClient(client *http.Client, config *configuration.Config) *openai.Client {
	openaiConfig := openai.DefaultConfig(config.AI.OpenAIToken)
	openaiConfig.HTTPClient = client
	return openai.NewClientWithConfig(openaiConfig)
}

type OpenAIProvider struct {
	ai     *openai.Client
	config *configuration.Config
}

func NewOpenAIProvider(ai *openai.Client, config *configuration.Config) *OpenAIProvider {
	return &OpenAIProvider{ai: ai, config: config}
}

func (x *OpenAIProvider) SupportsVision() bool { return true }

func (x *OpenAIProvider) Complete(ctx context.Context, logger *tracing.Logger, inv *Invocation) (*Completion, error) {
	defer tracing.ProfilePoint(logger, "OpenAI completion finished", "artificial.openai.complete")()

	model := x.config.AI.OpenAIChatModel
	logger = logger.With(tracing.AiKind, "openai/chat", tracing.AiModel, model)

	userMessage := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: inv.User,
	}

	if inv.Image != nil {
		encoded := base64.StdEncoding.EncodeToString(inv.Image.Data)
		userMessage = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: inv.User},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    fmt.Sprintf("data:%s;base64,%s", inv.Image.MimeType, encoded),
						Detail: openai.ImageURLDetailHigh,
					},
				},
			},
		}
	}

	request := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: inv.System},
			userMessage,
		},
		MaxTokens: inv.MaxTokens,
	}

	response, err := x.ai.CreateChatCompletion(ctx, request)
	if err != nil {
		logger.E("OpenAI completion failed", tracing.InnerError, err)
		return nil, err
	}

	if len(response.Choices) == 0 {
		logger.E("OpenAI returned no choices")
		return nil, fmt.Errorf("openai: empty response for model %s", model)
	}

	completion := &Completion{
		Text:         response.Choices[0].Message.Content,
		Model:        model,
		InputTokens:  response.Usage.PromptTokens,
		OutputTokens: response.Usage.CompletionTokens,
	}

	logger.I("OpenAI completion succeeded", tracing.AiTokens, completion.TotalTokens())
	return completion, nil
}
